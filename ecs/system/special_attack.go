package system

import (
	"math"

	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/vital"
)

// SpecialAttackSystem runs the player's laser: a column above the ship that
// burns every enemy in it for the beam's duration.
type SpecialAttackSystem struct{}

func NewSpecialAttackSystem() *SpecialAttackSystem {
	return &SpecialAttackSystem{}
}

func (s *SpecialAttackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach4(w, component.SpecialAttackComponent.Kind(), component.InputComponent.Kind(), component.EnergyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.SpecialAttack, in *component.Input, en *vital.Energy, t *component.Transform) {
		if sp.CooldownLeft > 0 {
			sp.CooldownLeft -= dt
		}

		// not enough energy leaves the beam off and the pool untouched
		if !sp.Firing() && in.Special && sp.CooldownLeft <= 0 && en.TryConsume(sp.Cost) == nil {
			sp.Active = sp.Duration
			sp.Carry = 0
			ecs.Emit(w, ecs.EventSpecialFired, e, nil)
		}

		if !sp.Firing() {
			return
		}

		step := math.Min(dt, sp.Active)
		sp.Active -= dt
		if sp.Active <= 0 {
			sp.Active = 0
			sp.CooldownLeft = sp.Cooldown
		}

		sp.Carry += sp.DPS * step
		whole := int(sp.Carry)
		if whole <= 0 {
			return
		}
		sp.Carry -= float64(whole)
		s.burn(w, t.Pos.X, t.Pos.Y, sp.Width/2, whole)
	})
}

func (s *SpecialAttackSystem) burn(w *ecs.World, x, y, halfWidth float64, amount int) {
	ecs.ForEach3(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, _ *component.Actor, t *component.Transform, col *component.Collider) {
		if !isActive(w, e) || t.Pos.Y < y {
			return
		}
		if math.Abs(t.Pos.X-x) > halfWidth+col.Radius {
			return
		}
		damage(w, e, amount)
	})
}
