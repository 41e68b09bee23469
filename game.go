package main

import (
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/game"
	"github.com/milk9111/skyraid/hud"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// pixels per world unit; the field's height fills the window
	unit = baseHeight / (2 * common.FieldHalfHeight)
)

var spriteColors = map[game.SpriteKind]color.RGBA{
	game.SpritePlayer:       {R: 0x4c, G: 0xc9, B: 0xf0, A: 0xff},
	game.SpriteEnemy:        {R: 0xf0, G: 0x5a, B: 0x4c, A: 0xff},
	game.SpriteBoss:         {R: 0xb0, G: 0x3a, B: 0xe0, A: 0xff},
	game.SpritePlayerBullet: {R: 0xff, G: 0xf0, B: 0x80, A: 0xff},
	game.SpriteEnemyBullet:  {R: 0xff, G: 0x90, B: 0x40, A: 0xff},
	game.SpritePickup:       {R: 0x60, G: 0xf0, B: 0x80, A: 0xff},
	game.SpritePortal:       {R: 0x80, G: 0xa0, B: 0xff, A: 0xff},
}

type Game struct {
	frames int

	session *game.Session
	hud     *hud.State
	face    ebtext.Face

	paused      bool
	quit        bool
	pauseUI     *ebitenui.UI
	pauseStatus *widget.Text
}

func NewGame(session *game.Session, state *hud.State) *Game {
	g := &Game{
		session: session,
		hud:     state,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if g.paused {
			g.refreshPauseStatus()
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.frames++
	g.session.SetInput(readInput())
	g.session.Tick(1 / float64(ebiten.TPS()))
	return nil
}

func readInput() component.Input {
	const stickDeadzone = 0.2

	var move common.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y--
	}
	fire := ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyJ)
	special := ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move = common.V(lx, -ly)
		}
		fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		special = special || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
	}
	return component.Input{Move: move, Fire: fire, Special: special}
}

func toScreen(p common.Vec2) (float32, float32) {
	return float32(baseWidth/2 + p.X*unit), float32(baseHeight/2 - p.Y*unit)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x08, G: 0x0a, B: 0x18, A: 0xff})

	left, top := toScreen(common.V(-common.FieldHalfWidth, common.FieldHalfHeight))
	vector.StrokeRect(screen, left, top, float32(2*common.FieldHalfWidth*unit), float32(2*common.FieldHalfHeight*unit), 1, color.RGBA{R: 0x30, G: 0x30, B: 0x50, A: 0xff}, false)

	if beam, ok := g.session.Beam(); ok {
		x, y := toScreen(beam.Origin.Add(common.V(-beam.HalfWidth, 0)))
		vector.FillRect(screen, x, 0, float32(2*beam.HalfWidth*unit), y, color.RGBA{R: 0x90, G: 0xe0, B: 0xff, A: 0x90}, false)
	}

	for _, sp := range g.session.Sprites() {
		if sp.Flash && g.frames/6%2 == 0 {
			continue
		}
		x, y := toScreen(sp.Pos)
		clr := spriteColors[sp.Kind]
		if sp.White {
			clr = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
		vector.FillCircle(screen, x, y, float32(sp.Radius*unit), clr, true)
	}

	g.drawHUD(screen)

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
