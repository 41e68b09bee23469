package component

import "github.com/milk9111/skyraid/common"

// Input is the host's latest controller state. Move is clamped to unit
// length by the player system.
type Input struct {
	Move    common.Vec2
	Fire    bool
	Special bool
}

var InputComponent = NewComponent[Input]()
