package system

import (
	"log"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
)

// playerMargin keeps the ship fully on screen.
const playerMargin = 0.5

// PlayerSystem moves the ship from input, keeps it on the playfield, and
// fires the main gun.
type PlayerSystem struct{}

func NewPlayerSystem() *PlayerSystem {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
		move := in.Move
		if move.Len() > 1 {
			move = move.Normalized()
		}
		vel := move.Scale(p.Speed)
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v.Vec2 = vel
		}

		next := t.Pos.Add(vel.Scale(dt))
		next.X = common.Clamp(next.X, -common.FieldHalfWidth+playerMargin, common.FieldHalfWidth-playerMargin)
		next.Y = common.Clamp(next.Y, -common.FieldHalfHeight+playerMargin, common.FieldHalfHeight-playerMargin)
		t.Pos = next

		if p.FireCooldown > 0 {
			p.FireCooldown -= dt
		}
		if !in.Fire || p.FireCooldown > 0 {
			return
		}
		p.FireCooldown += p.FirePeriod
		if p.FireCooldown < 0 {
			p.FireCooldown = 0
		}

		if _, err := entity.NewBullet(w, entity.BulletSpec{
			Faction:  component.FactionPlayer,
			Pos:      t.Pos.Add(common.V(0, 0.5)),
			Velocity: common.V(0, p.BulletSpeed),
			Damage:   p.BulletDamage,
			Lifetime: p.BulletLifetime,
			Pierce:   p.Pierce,
		}); err != nil {
			log.Printf("player: fire: %v", err)
		}
	})
}
