package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/game"
	"github.com/milk9111/skyraid/hud"
	"github.com/milk9111/skyraid/persist"
	"github.com/milk9111/skyraid/prefabs"
)

const (
	frame = 16 * time.Millisecond
	// terminals report presses, not releases, so a press holds for a while
	holdFor = 150 * time.Millisecond
)

var glyphs = map[game.SpriteKind]struct {
	r     rune
	style tcell.Style
}{
	game.SpritePlayer:       {'A', tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)},
	game.SpriteEnemy:        {'V', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	game.SpriteBoss:         {'W', tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)},
	game.SpritePlayerBullet: {'|', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	game.SpriteEnemyBullet:  {'*', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	game.SpritePickup:       {'+', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
	game.SpritePortal:       {'O', tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)},
}

type tui struct {
	screen  tcell.Screen
	session *game.Session
	hud     *hud.State
	pilot   *game.Autopilot

	width, height int
	held          map[string]time.Time
	autoFire      bool
	paused        bool
}

func newTUI(session *game.Session, state *hud.State, autopilot bool) (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	t := &tui{
		screen:   screen,
		session:  session,
		hud:      state,
		held:     make(map[string]time.Time),
		autoFire: true,
	}
	if autopilot {
		t.pilot = &game.Autopilot{}
	}
	t.width, t.height = screen.Size()
	return t, nil
}

func (t *tui) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !t.paused {
				t.session.SetInput(t.input(now))
				t.session.Tick(dt)
			}
			t.draw()
		}
	}
}

func (t *tui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.held["left"] = now
		case tcell.KeyRight:
			t.held["right"] = now
		case tcell.KeyUp:
			t.held["up"] = now
		case tcell.KeyDown:
			t.held["down"] = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'h':
				t.held["left"] = now
			case 'l':
				t.held["right"] = now
			case 'k':
				t.held["up"] = now
			case 'j':
				t.held["down"] = now
			case 'x':
				t.held["special"] = now
			case ' ':
				t.autoFire = !t.autoFire
			case 'p':
				t.paused = !t.paused
			case 'a':
				if t.pilot == nil {
					t.pilot = &game.Autopilot{}
				} else {
					t.pilot = nil
				}
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
		t.width, t.height = t.screen.Size()
	}
	return true
}

func (t *tui) input(now time.Time) component.Input {
	if t.pilot != nil {
		return t.pilot.Input(t.session)
	}
	down := func(key string) bool {
		at, ok := t.held[key]
		return ok && now.Sub(at) < holdFor
	}
	var move common.Vec2
	if down("left") {
		move.X--
	}
	if down("right") {
		move.X++
	}
	if down("up") {
		move.Y++
	}
	if down("down") {
		move.Y--
	}
	return component.Input{Move: move, Fire: t.autoFire, Special: down("special")}
}

// cell maps a world position into the play area below the two status rows.
func (t *tui) cell(p common.Vec2) (int, int, bool) {
	rows := t.height - 2
	if t.width <= 0 || rows <= 0 {
		return 0, 0, false
	}
	fx := (p.X + common.FieldHalfWidth) / (2 * common.FieldHalfWidth)
	fy := (common.FieldHalfHeight - p.Y) / (2 * common.FieldHalfHeight)
	x, y := int(fx*float64(t.width)), 2+int(fy*float64(rows))
	return x, y, x >= 0 && x < t.width && y >= 2 && y < t.height
}

func (t *tui) print(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *tui) draw() {
	t.screen.Clear()
	s := t.hud.Snapshot()
	plain := tcell.StyleDefault

	t.print(0, 0, fmt.Sprintf("HP %d/%d  EN %.0f/%.0f  Lives %d  Score %d  Best %d",
		s.Health, s.MaxHealth, s.Energy, s.MaxEnergy, s.Lives, s.Score, s.HighScore), plain)
	status := fmt.Sprintf("Stage %d Wave %d: %s", s.Stage+1, s.Wave+1, s.WaveName)
	if s.BossActive {
		status += fmt.Sprintf("  Boss %3.0f%%", s.BossHealth*100)
	}
	if s.Message != "" {
		status += "  " + s.Message
	}
	if t.pilot != nil {
		status += "  [autopilot]"
	}
	t.print(0, 1, status, plain.Foreground(tcell.ColorSilver))

	if beam, ok := t.session.Beam(); ok {
		bx, by, visible := t.cell(beam.Origin)
		if visible {
			for y := 2; y < by; y++ {
				t.screen.SetContent(bx, y, '#', nil, plain.Foreground(tcell.ColorLightCyan))
			}
		}
	}
	for _, sp := range t.session.Sprites() {
		x, y, ok := t.cell(sp.Pos)
		if !ok {
			continue
		}
		g := glyphs[sp.Kind]
		style := g.style
		if sp.White {
			style = style.Foreground(tcell.ColorWhite)
		}
		t.screen.SetContent(x, y, g.r, nil, style)
	}

	switch s.Phase {
	case hud.PhaseVictory:
		t.print(t.width/2-8, t.height/2, "V I C T O R Y", plain.Reverse(true))
	case hud.PhaseGameOver:
		t.print(t.width/2-8, t.height/2, "G A M E  O V E R", plain.Reverse(true))
	}
	if t.paused {
		t.print(t.width/2-4, t.height/2+2, "PAUSED", plain.Reverse(true))
	}
	t.screen.Show()
}

func main() {
	shipName := flag.String("ship", "", "ship to fly (defaults to the catalog default)")
	stage := flag.Int("stage", 0, "stage index to start from")
	resume := flag.Bool("continue", false, "resume the saved run")
	savePath := flag.String("save", "skyraid_save.yaml", "progress file")
	contentDir := flag.String("content", "prefabs", "directory checked for content overrides")
	autopilot := flag.Bool("autopilot", false, "let the autopilot fly")
	logPath := flag.String("log", "skyraid-tui.log", "log file (the terminal is in use)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	prefabs.SetDir(*contentDir)
	content, err := prefabs.LoadContent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load content: %v\n", err)
		os.Exit(1)
	}

	state := hud.NewState()
	session, err := game.NewSession(content, game.Options{
		Ship:       *shipName,
		StartStage: *stage,
		Continue:   *resume,
		Seed:       *seed,
		Store:      persist.NewFileStore(*savePath),
		Notifier:   state,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()
	session.Start()

	t, err := newTUI(session, state, *autopilot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer t.screen.Fini()
	t.run()
}
