package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

const bulletRadius = 0.12

// BulletSpec describes one projectile.
type BulletSpec struct {
	Faction  component.Faction
	Pos      common.Vec2
	Velocity common.Vec2
	Damage   int
	Lifetime float64
	Pierce   bool
}

func NewBullet(w *ecs.World, spec BulletSpec) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.BulletComponent.Kind(), &component.Bullet{
		Faction: spec.Faction,
		Damage:  spec.Damage,
		Pierce:  spec.Pierce,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: spec.Pos}); err != nil {
		return 0, fmt.Errorf("bullet: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{Vec2: spec.Velocity}); err != nil {
		return 0, fmt.Errorf("bullet: add velocity: %w", err)
	}

	if spec.Lifetime > 0 {
		if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Remaining: spec.Lifetime}); err != nil {
			return 0, fmt.Errorf("bullet: add ttl: %w", err)
		}
	}

	tag := component.TagPlayerBullet
	if spec.Faction == component.FactionEnemy {
		tag = component.TagEnemyBullet
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: bulletRadius,
		Tag:    tag,
	}); err != nil {
		return 0, fmt.Errorf("bullet: add collider: %w", err)
	}

	return entity, nil
}
