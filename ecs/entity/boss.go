package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/pattern"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

func NewBoss(w *ecs.World, spec prefabs.BossSpec, pos common.Vec2) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.ActorComponent.Kind(), &component.Actor{
		Role:       component.RoleBoss,
		ScoreValue: spec.Score,
	}); err != nil {
		return 0, fmt.Errorf("boss: add actor: %w", err)
	}

	if err := ecs.Add(w, entity, component.BossComponent.Kind(), &component.Boss{
		Name:           spec.Name,
		Machine:        pattern.NewMachine(spec, pos),
		MoveSpeed:      spec.MoveSpeed,
		Damage:         spec.Damage,
		BulletDamage:   spec.Fire.Damage,
		BulletSpeed:    spec.Fire.Speed,
		BulletLifetime: spec.Fire.Lifetime,
		MinionPrefab:   spec.Minions.Prefab,
		MinionPoints:   append([]common.Vec2(nil), spec.Minions.Points...),
	}); err != nil {
		return 0, fmt.Errorf("boss: add boss: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("boss: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), vital.NewHealth(spec.MaxHealth)); err != nil {
		return 0, fmt.Errorf("boss: add health: %w", err)
	}

	radius := spec.Radius
	if radius <= 0 {
		radius = 1
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: radius,
		Tag:    component.TagBoss,
	}); err != nil {
		return 0, fmt.Errorf("boss: add collider: %w", err)
	}

	return entity, nil
}
