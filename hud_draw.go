package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skyraid/hud"
)

var (
	hudText   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	hudBack   = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	hudHealth = color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	hudEnergy = color.RGBA{R: 0x40, G: 0xa0, B: 0xf0, A: 0xff}
	hudBoss   = color.RGBA{R: 0xb0, G: 0x3a, B: 0xe0, A: 0xff}
)

func (g *Game) text(screen *ebiten.Image, s string, x, y float64) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(hudText)
	ebtext.Draw(screen, s, g.face, op)
}

func bar(screen *ebiten.Image, x, y, w, h, fraction float32, fill color.Color) {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	vector.FillRect(screen, x, y, w, h, hudBack, false)
	vector.FillRect(screen, x, y, w*fraction, h, fill, false)
}

func ratio(current, max float64) float32 {
	if max <= 0 {
		return 0
	}
	return float32(current / max)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.hud.Snapshot()

	g.text(screen, fmt.Sprintf("HP %d/%d", s.Health, s.MaxHealth), 16, 16)
	bar(screen, 110, 16, 200, 12, ratio(float64(s.Health), float64(s.MaxHealth)), hudHealth)
	g.text(screen, fmt.Sprintf("EN %.0f/%.0f", s.Energy, s.MaxEnergy), 16, 36)
	bar(screen, 110, 36, 200, 12, ratio(s.Energy, s.MaxEnergy), hudEnergy)
	g.text(screen, fmt.Sprintf("Lives %d", s.Lives), 16, 56)

	g.text(screen, fmt.Sprintf("Score %d", s.Score), baseWidth-200, 16)
	g.text(screen, fmt.Sprintf("Best  %d", s.HighScore), baseWidth-200, 36)
	g.text(screen, fmt.Sprintf("Stage %d  Wave %d: %s", s.Stage+1, s.Wave+1, s.WaveName), baseWidth/2-120, 16)

	if s.BossActive {
		bar(screen, baseWidth/2-300, 40, 600, 10, float32(s.BossHealth), hudBoss)
	}
	if s.Message != "" {
		g.text(screen, s.Message, baseWidth/2-120, baseHeight-40)
	}

	switch s.Phase {
	case hud.PhaseVictory:
		g.text(screen, fmt.Sprintf("VICTORY  score %d", s.Score), baseWidth/2-80, baseHeight/2)
	case hud.PhaseGameOver:
		g.text(screen, fmt.Sprintf("GAME OVER  score %d", s.Score), baseWidth/2-80, baseHeight/2)
	}
}
