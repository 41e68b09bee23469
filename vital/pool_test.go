package vital

import (
	"errors"
	"testing"
)

func TestHealthApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		max         int
		deltas      []int
		wantCurrent int
		wantDepl    bool
	}{
		{"damage_clamps_at_zero", 50, []int{-80}, 0, true},
		{"heal_clamps_at_max", 50, []int{-10, 30}, 50, false},
		{"partial_damage", 100, []int{-15, -15}, 70, false},
		{"heal_after_death_ignored", 10, []int{-10, 5}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealth(tc.max)
			for _, d := range tc.deltas {
				h.ApplyDelta(d)
			}
			if h.Current() != tc.wantCurrent {
				t.Fatalf("expected current %d, got %d", tc.wantCurrent, h.Current())
			}
			if h.Depleted() != tc.wantDepl {
				t.Fatalf("expected depleted=%v, got %v", tc.wantDepl, h.Depleted())
			}
		})
	}
}

func TestHealthDepletedFiresOnce(t *testing.T) {
	h := NewHealth(20)
	fired := 0
	h.OnDepleted(func() { fired++ })

	h.ApplyDelta(-20)
	h.ApplyDelta(-20)
	if applied := h.ApplyDelta(-5); applied != 0 {
		t.Fatalf("expected no-op after depletion, applied %d", applied)
	}
	if fired != 1 {
		t.Fatalf("expected one depleted event, got %d", fired)
	}

	h.Initialize(20)
	if h.Depleted() || h.Current() != 20 {
		t.Fatalf("initialize should rearm the pool, got current=%d depleted=%v", h.Current(), h.Depleted())
	}
	h.ApplyDelta(-25)
	if fired != 2 {
		t.Fatalf("expected a second depleted event after re-init, got %d", fired)
	}
}

func TestChangedCarriesClampedValues(t *testing.T) {
	h := NewHealth(30)
	var got [][2]int
	h.OnChanged(func(current, max int) { got = append(got, [2]int{current, max}) })

	h.ApplyDelta(-40)
	if len(got) != 1 || got[0] != [2]int{0, 30} {
		t.Fatalf("unexpected notifications %v", got)
	}
}

func TestChangedFiresWhenClampedToNoChange(t *testing.T) {
	h := NewHealth(30)
	var got [][2]int
	h.OnChanged(func(current, max int) { got = append(got, [2]int{current, max}) })

	if applied := h.ApplyDelta(5); applied != 0 {
		t.Fatalf("expected nothing applied at max, got %d", applied)
	}
	if len(got) != 1 || got[0] != [2]int{30, 30} {
		t.Fatalf("expected one notification at 30/30, got %v", got)
	}

	h.ApplyDelta(-30)
	h.ApplyDelta(-5)
	if len(got) != 2 {
		t.Fatalf("depleted pool must stay silent, got %v", got)
	}
}

func TestEnergyInitializeStartsEmpty(t *testing.T) {
	e := NewEnergy(100)
	if e.Current() != 0 || e.Max() != 100 {
		t.Fatalf("expected 0/100, got %v/%v", e.Current(), e.Max())
	}
}

func TestEnergyRegenerateFullFiresOnce(t *testing.T) {
	e := NewEnergy(100)
	e.ApplyDelta(90)
	full := 0
	e.OnFull(func() { full++ })

	// 10/s for 0.5s twice reaches max on the second tick
	e.Regenerate(10, 0.5)
	if full != 0 {
		t.Fatalf("full fired early at %v", e.Current())
	}
	e.Regenerate(10, 0.5)
	if full != 1 || e.Current() != 100 {
		t.Fatalf("expected full once at 100, got full=%d current=%v", full, e.Current())
	}
	e.Regenerate(10, 0.5)
	if full != 1 {
		t.Fatalf("full must not refire while capped, got %d", full)
	}

	if err := e.TryConsume(50); err != nil {
		t.Fatalf("unexpected consume error %v", err)
	}
	for i := 0; i < 10; i++ {
		e.Regenerate(10, 0.5)
	}
	if full != 2 {
		t.Fatalf("expected full to rearm after spending, got %d", full)
	}
}

func TestTryConsume(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		cost    float64
		wantErr bool
		left    float64
	}{
		{"enough", 60, 50, false, 10},
		{"exact", 50, 50, false, 0},
		{"short", 49.5, 50, true, 49.5},
		{"negative", 10, -1, true, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEnergy(100)
			e.ApplyDelta(tc.start)
			changes := 0
			e.OnChanged(func(_, _ float64) { changes++ })

			err := e.TryConsume(tc.cost)
			if tc.wantErr {
				if !errors.Is(err, ErrInsufficientResource) {
					t.Fatalf("expected ErrInsufficientResource, got %v", err)
				}
				if changes != 0 {
					t.Fatalf("failed consume must not notify")
				}
			} else if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if e.Current() != tc.left {
				t.Fatalf("expected %v left, got %v", tc.left, e.Current())
			}
		})
	}
}

func TestEnergyZeroIsNotTerminal(t *testing.T) {
	e := NewEnergy(10)
	e.ApplyDelta(5)
	e.ApplyDelta(-5)
	if e.Depleted() {
		t.Fatalf("energy should never latch depleted")
	}
	if e.ApplyDelta(3) != 3 {
		t.Fatalf("energy should accept gains after reaching zero")
	}
}
