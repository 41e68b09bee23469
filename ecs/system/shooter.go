package system

import (
	"log"

	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
)

// ShooterSystem fires enemy bullet fans on each shooter's period.
type ShooterSystem struct{}

func NewShooterSystem() *ShooterSystem {
	return &ShooterSystem{}
}

func (s *ShooterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	_, playerPos, havePlayer := playerPosition(w)

	ecs.ForEach2(w, component.ShooterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sh *component.Shooter, t *component.Transform) {
		if !isActive(w, e) || sh.Period <= 0 {
			return
		}
		sh.Remaining -= dt
		for sh.Remaining <= 0 {
			sh.Remaining += sh.Period

			aim := down
			if sh.Aimed && havePlayer {
				aim = playerPos.Sub(t.Pos)
			}
			for _, dir := range fan(aim, sh.Bullets, sh.Spread) {
				if _, err := entity.NewBullet(w, entity.BulletSpec{
					Faction:  component.FactionEnemy,
					Pos:      t.Pos,
					Velocity: dir.Scale(sh.Speed),
					Damage:   sh.Damage,
					Lifetime: sh.Lifetime,
				}); err != nil {
					log.Printf("shooter: entity=%v fire: %v", e, err)
				}
			}
		}
	})
}
