package component

import "github.com/milk9111/skyraid/common"

type Transform struct {
	Pos common.Vec2
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in world units per second.
type Velocity struct {
	common.Vec2
}

var VelocityComponent = NewComponent[Velocity]()
