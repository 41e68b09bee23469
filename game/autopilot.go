package game

import (
	"math"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

const dodgeRadius = 1.6

// Autopilot flies the ship for headless runs: it lines up under the
// lowest enemy, sidesteps incoming bullets, fires the laser whenever it
// can and heads for an open portal.
type Autopilot struct{}

func (Autopilot) Input(s *Session) component.Input {
	w := s.World()
	t, ok := ecs.Get(w, s.Player(), component.TransformComponent.Kind())
	if !ok {
		return component.Input{}
	}
	pos := t.Pos
	in := component.Input{Fire: true}

	if portal := s.Director().Portal(); portal != 0 {
		if pt, ok := ecs.Get(w, portal, component.TransformComponent.Kind()); ok {
			in.Move = pt.Pos.Sub(pos).Normalized()
			return in
		}
	}

	target, found := common.Vec2{}, false
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, a *component.Actor, et *component.Transform) {
		if a.State != component.Active || !common.InField(et.Pos, 0) {
			return
		}
		if !found || et.Pos.Y < target.Y {
			target, found = et.Pos, true
		}
	})

	var steer float64
	if found {
		steer = common.Clamp(target.X-pos.X, -1, 1)
	}
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.Bullet, bt *component.Transform) {
		if b.Faction != component.FactionEnemy || bt.Pos.Dist(pos) > dodgeRadius {
			return
		}
		if bt.Pos.X >= pos.X {
			steer = -1
		} else {
			steer = 1
		}
	})
	in.Move = common.V(steer, 0)

	if en, ok := ecs.Get(w, s.Player(), component.EnergyComponent.Kind()); ok && en.Full() && found {
		in.Special = math.Abs(target.X-pos.X) < 0.5
	}
	return in
}

