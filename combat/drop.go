// Package combat resolves hits against vital pools and rolls item drops.
package combat

import (
	"fmt"
	"math/rand"
)

type DropKind string

const (
	DropNone   DropKind = "none"
	DropHealth DropKind = "health"
	DropEnergy DropKind = "energy"
	DropLife   DropKind = "life"
)

func ParseDropKind(s string) (DropKind, error) {
	switch DropKind(s) {
	case DropHealth, DropEnergy, DropLife:
		return DropKind(s), nil
	case DropNone, "":
		return DropNone, nil
	}
	return DropNone, fmt.Errorf("combat: unknown drop kind %q", s)
}

type DropEntry struct {
	Kind   DropKind
	Chance float64
}

// DropTable is an ordered weighted table; the probability left over after
// all entries is DropNone.
type DropTable struct {
	entries []DropEntry
	// saturated tables have no DropNone remainder
	saturated bool
}

// NewDropTable copies entries, discarding negative chances. When the chances
// add up to more than 1 they are scaled down proportionally.
func NewDropTable(entries ...DropEntry) DropTable {
	out := make([]DropEntry, 0, len(entries))
	total := 0.0
	for _, e := range entries {
		if e.Chance <= 0 || e.Kind == DropNone {
			continue
		}
		out = append(out, e)
		total += e.Chance
	}
	saturated := total >= 1
	if total > 1 {
		for i := range out {
			out[i].Chance /= total
		}
	}
	return DropTable{entries: out, saturated: saturated}
}

// Entries returns the normalized table.
func (t DropTable) Entries() []DropEntry {
	out := make([]DropEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Pick walks the cumulative table with a draw in [0, 1) and returns the
// first kind whose cumulative chance reaches it.
func (t DropTable) Pick(draw float64) DropKind {
	cumulative := 0.0
	for _, e := range t.entries {
		cumulative += e.Chance
		if cumulative >= draw {
			return e.Kind
		}
	}
	if t.saturated && len(t.entries) > 0 {
		// rounding can leave the final cumulative a hair under 1
		return t.entries[len(t.entries)-1].Kind
	}
	return DropNone
}

// Roll draws once from rng.
func (t DropTable) Roll(rng *rand.Rand) DropKind {
	if rng == nil || len(t.entries) == 0 {
		return DropNone
	}
	return t.Pick(rng.Float64())
}
