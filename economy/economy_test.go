package economy

import (
	"testing"

	"github.com/milk9111/skyraid/vital"
)

func TestHighScoreIsMonotonic(t *testing.T) {
	e := New(Rewards{})
	e.LoadHighScore(500)

	steps := []struct {
		name      string
		run       func()
		wantScore int
		wantHigh  int
	}{
		{"below_high", func() { e.AddScore(300) }, 300, 500},
		{"passes_high", func() { e.AddScore(300) }, 600, 600},
		{"reset_keeps_high", func() { e.ResetScore() }, 0, 600},
		{"lower_load_ignored", func() { e.LoadHighScore(100) }, 0, 600},
		{"negative_ignored", func() { e.AddScore(-50) }, 0, 600},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			s.run()
			if e.Score() != s.wantScore || e.HighScore() != s.wantHigh {
				t.Fatalf("expected %d/%d, got %d/%d", s.wantScore, s.wantHigh, e.Score(), e.HighScore())
			}
		})
	}
}

func TestEnergyRewards(t *testing.T) {
	energy := vital.NewEnergy(100)
	e := New(Rewards{EnergyPerHit: 5, EnergyPerKill: 10})
	e.BindEnergy(energy)

	var scores []int
	e.OnScoreChanged(func(score, _ int) { scores = append(scores, score) })

	e.CreditHit()
	e.CreditHit()
	e.CreditKill(100)

	if energy.Current() != 20 {
		t.Fatalf("expected 20 energy, got %v", energy.Current())
	}
	if e.Score() != 100 {
		t.Fatalf("expected score 100, got %d", e.Score())
	}
	if len(scores) != 1 || scores[0] != 100 {
		t.Fatalf("unexpected score notifications %v", scores)
	}
}

func TestUnboundEnergyIsSafe(t *testing.T) {
	e := New(Rewards{EnergyPerHit: 5, EnergyPerKill: 10})
	e.CreditHit()
	e.CreditKill(50)
	if e.Score() != 50 {
		t.Fatalf("expected score without energy pool, got %d", e.Score())
	}
}
