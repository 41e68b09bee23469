package component

import "github.com/milk9111/skyraid/common"

type MoveKind string

const (
	MoveStraight MoveKind = "straight"
	MoveDive     MoveKind = "dive"
	MovePatrol   MoveKind = "patrol"
	MoveScript   MoveKind = "script"
)

// Mover steers an enemy each tick.
type Mover struct {
	Kind   MoveKind
	Speed  float64
	Script string
	Params map[string]float64

	Origin common.Vec2
	Age    float64
	// Diving latches once a dive mover locks onto the player.
	Diving  bool
	DiveDir common.Vec2
	Dir     float64
}

func (m *Mover) Param(name string, fallback float64) float64 {
	if m == nil {
		return fallback
	}
	if v, ok := m.Params[name]; ok {
		return v
	}
	return fallback
}

var MoverComponent = NewComponent[Mover]()
