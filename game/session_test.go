package game

import (
	"testing"

	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/encounter"
	"github.com/milk9111/skyraid/hud"
	"github.com/milk9111/skyraid/persist"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

const step = 1.0 / 60

func loadContent(t *testing.T) *prefabs.Content {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })
	content, err := prefabs.LoadContent()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	return content
}

type fixture struct {
	session *Session
	store   *persist.MemoryStore
	state   *hud.State
}

func newFixture(t *testing.T, content *prefabs.Content, opts Options) *fixture {
	t.Helper()
	f := &fixture{store: &persist.MemoryStore{}, state: hud.NewState()}
	if opts.Store == nil {
		opts.Store = f.store
	}
	opts.Notifier = f.state
	s, err := NewSession(content, opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	f.session = s
	return f
}

// shield keeps the current player ship from taking damage.
func (f *fixture) shield() {
	w := f.session.World()
	p := f.session.Player()
	if ecs.IsAlive(w, p) && !ecs.Has(w, p, component.InvulnerableComponent.Kind()) {
		_ = ecs.Add(w, p, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: 1e9})
	}
}

// killAll drains the health of every active enemy and boss.
func (f *fixture) killAll() {
	w := f.session.World()
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, a *component.Actor, h *vital.Health) {
		if a.State == component.Active {
			h.ApplyDelta(-h.Current())
		}
	})
}

func (f *fixture) runUntil(t *testing.T, limit int, done func() bool, each func()) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if done() {
			return
		}
		if each != nil {
			each()
		}
		f.session.Tick(step)
	}
	if !done() {
		t.Fatalf("condition not reached after %d ticks (director %s)", limit, f.session.Director().State())
	}
}

func TestSessionStageProgression(t *testing.T) {
	f := newFixture(t, loadContent(t), Options{Seed: 1})
	s := f.session
	s.Start()
	s.Tick(step)

	if s.Director().State() != encounter.StateAwaitingWaveCompletion {
		t.Fatalf("expected first wave running, got %s", s.Director().State())
	}
	if f.state.Snapshot().WaveName != "Scouts" {
		t.Fatalf("expected Scouts announced, got %q", f.state.Snapshot().WaveName)
	}

	f.runUntil(t, 60*60, func() bool {
		return s.Director().State() == encounter.StateStageComplete
	}, func() {
		f.shield()
		f.killAll()
	})

	if s.Economy().Score() <= 0 {
		t.Fatal("expected kills to score")
	}
	if f.store.Saves == 0 {
		t.Fatal("expected progress saved on stage completion")
	}

	f.runUntil(t, 60*5, func() bool { return s.Director().Portal() != 0 }, nil)

	portal, ok := ecs.Get(s.World(), s.Director().Portal(), component.TransformComponent.Kind())
	if !ok {
		t.Fatal("portal has no transform")
	}
	f.runUntil(t, 60, func() bool { return s.Director().StageIndex() == 1 }, func() {
		if pt, ok := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind()); ok {
			pt.Pos = portal.Pos
		}
	})

	s.Tick(step)
	if s.Director().State() != encounter.StateAwaitingWaveCompletion {
		t.Fatalf("expected second stage running, got %s", s.Director().State())
	}
	if f.state.Snapshot().WaveName != "Armor" {
		t.Fatalf("expected Armor announced, got %q", f.state.Snapshot().WaveName)
	}
}

func TestSessionBossVictory(t *testing.T) {
	content := loadContent(t)
	content.Stages = []prefabs.StageSpec{{
		Name:  "lair",
		Waves: []prefabs.WaveSpec{{Name: "boss", BossWave: true, Boss: "warden"}},
	}}
	f := newFixture(t, content, Options{Seed: 2})
	s := f.session
	s.Start()
	s.Tick(step)
	f.shield()

	snap := f.state.Snapshot()
	if !snap.BossActive || snap.BossHealth != 1 {
		t.Fatalf("expected full boss bar, got %+v", snap)
	}

	f.killAll()
	s.Tick(step)

	if s.Director().State() != encounter.StateAllStagesComplete {
		t.Fatalf("expected victory, got %s", s.Director().State())
	}
	snap = f.state.Snapshot()
	if snap.Phase != hud.PhaseVictory || snap.BossActive {
		t.Fatalf("unexpected hud after victory %+v", snap)
	}
	if s.Economy().Score() != content.Bosses["warden"].Score {
		t.Fatalf("expected boss score %d, got %d", content.Bosses["warden"].Score, s.Economy().Score())
	}
}

func TestSessionGameOver(t *testing.T) {
	f := newFixture(t, loadContent(t), Options{Seed: 3})
	s := f.session
	s.Start()
	s.Tick(step)

	f.runUntil(t, 20, s.Over, func() {
		s.Vitals().Health.ApplyDelta(-s.Vitals().Health.Max())
	})

	if s.Director().State() != encounter.StateGameOver {
		t.Fatalf("expected game over, got %s", s.Director().State())
	}
	if f.state.Snapshot().Phase != hud.PhaseGameOver {
		t.Fatal("expected game over on the hud")
	}
	rec, err := f.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Lives != 0 {
		t.Fatalf("expected 0 lives saved, got %d", rec.Lives)
	}
}

func TestSessionResume(t *testing.T) {
	saved := persist.Record{Stage: 1, Health: 40, Energy: 20, Lives: 2, Score: 500, HighScore: 900}

	tests := []struct {
		name      string
		resume    bool
		stage     int
		health    int
		score     int
		highScore int
	}{
		{"fresh run keeps high score", false, 0, 100, 0, 900},
		{"continue restores progress", true, 1, 40, 500, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &persist.MemoryStore{}
			if err := store.Save(saved); err != nil {
				t.Fatal(err)
			}
			f := newFixture(t, loadContent(t), Options{Store: store, Continue: tt.resume})
			s := f.session
			s.Start()
			s.Tick(step)

			if s.Director().StageIndex() != tt.stage {
				t.Fatalf("expected stage %d, got %d", tt.stage, s.Director().StageIndex())
			}
			if got := s.Vitals().Health.Current(); got != tt.health {
				t.Fatalf("expected health %d, got %d", tt.health, got)
			}
			if s.Economy().Score() != tt.score || s.Economy().HighScore() != tt.highScore {
				t.Fatalf("expected score %d/%d, got %d/%d", tt.score, tt.highScore, s.Economy().Score(), s.Economy().HighScore())
			}
		})
	}
}

func TestSessionUnknownShip(t *testing.T) {
	if _, err := NewSession(loadContent(t), Options{Ship: "nope"}); err == nil {
		t.Fatal("expected error for unknown ship")
	}
}

func TestAutopilotClearsStage(t *testing.T) {
	f := newFixture(t, loadContent(t), Options{Seed: 4})
	s := f.session
	s.Start()
	s.Tick(step)

	pilot := Autopilot{}
	f.runUntil(t, 60*180, func() bool {
		return s.Director().State() != encounter.StateAwaitingWaveCompletion
	}, func() {
		f.shield()
		s.SetInput(pilot.Input(s))
	})

	if s.Director().State() != encounter.StateStageComplete {
		t.Fatalf("expected stage complete, got %s", s.Director().State())
	}
}
