package combat

import (
	"math"
	"math/rand"
	"testing"
)

func TestDropTablePick(t *testing.T) {
	table := NewDropTable(
		DropEntry{Kind: DropHealth, Chance: 0.2},
		DropEntry{Kind: DropEnergy, Chance: 0.3},
		DropEntry{Kind: DropLife, Chance: 0.1},
	)
	tests := []struct {
		draw float64
		want DropKind
	}{
		{0, DropHealth},
		{0.19, DropHealth},
		{0.2, DropHealth},
		{0.21, DropEnergy},
		{0.5, DropEnergy},
		{0.55, DropLife},
		{0.61, DropNone},
		{0.99, DropNone},
	}
	for _, tc := range tests {
		if got := table.Pick(tc.draw); got != tc.want {
			t.Fatalf("draw %v: expected %s, got %s", tc.draw, tc.want, got)
		}
	}
}

func TestDropTableNormalizes(t *testing.T) {
	table := NewDropTable(
		DropEntry{Kind: DropHealth, Chance: 0.8},
		DropEntry{Kind: DropEnergy, Chance: 0.8},
		DropEntry{Kind: DropLife, Chance: 0.4},
	)
	sum := 0.0
	for _, e := range table.Entries() {
		sum += e.Chance
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected entries to sum to 1, got %v", sum)
	}
	if got := table.Entries()[0].Chance; math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("expected health scaled to 0.4, got %v", got)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10000; i++ {
		if kind := table.Roll(rng); kind == DropNone {
			t.Fatalf("saturated table returned none on roll %d", i)
		}
	}
	if got := table.Pick(0.9999999999999999); got != DropLife {
		t.Fatalf("expected top of range to land on the last entry, got %s", got)
	}
}

func TestDropTableEmpty(t *testing.T) {
	table := NewDropTable(DropEntry{Kind: DropHealth, Chance: -1})
	if got := table.Roll(rand.New(rand.NewSource(1))); got != DropNone {
		t.Fatalf("expected none from empty table, got %s", got)
	}
}

func TestParseDropKind(t *testing.T) {
	if k, err := ParseDropKind("life"); err != nil || k != DropLife {
		t.Fatalf("expected life, got %s err=%v", k, err)
	}
	if _, err := ParseDropKind("gold"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
