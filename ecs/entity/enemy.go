package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/combat"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

const defaultEnemyRadius = 0.45

// NewEnemy spawns the named enemy prefab at pos.
func NewEnemy(w *ecs.World, prefab string, spec prefabs.EnemySpec, pos common.Vec2, minion bool) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.ActorComponent.Kind(), &component.Actor{
		Role:       component.RoleEnemy,
		ScoreValue: spec.Score,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add actor: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &component.Enemy{
		Prefab: prefab,
		Damage: spec.Damage,
		Minion: minion,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("enemy: add velocity: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), vital.NewHealth(spec.MaxHealth)); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	radius := spec.Radius
	if radius <= 0 {
		radius = defaultEnemyRadius
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: radius,
		Tag:    component.TagEnemy,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add collider: %w", err)
	}

	kind := component.MoveKind(spec.Movement.Kind)
	if kind == "" {
		kind = component.MoveStraight
	}
	if err := ecs.Add(w, entity, component.MoverComponent.Kind(), &component.Mover{
		Kind:   kind,
		Speed:  spec.Speed,
		Script: spec.Movement.Script,
		Params: spec.Movement.Params,
		Origin: pos,
		Dir:    1,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add mover: %w", err)
	}

	if spec.Shooter != nil {
		if err := ecs.Add(w, entity, component.ShooterComponent.Kind(), &component.Shooter{
			Period:    spec.Shooter.Period,
			Remaining: spec.Shooter.Period,
			Bullets:   spec.Shooter.Bullets,
			Spread:    spec.Shooter.Spread,
			Damage:    spec.Shooter.Damage,
			Speed:     spec.Shooter.Speed,
			Lifetime:  spec.Shooter.Lifetime,
			Aimed:     spec.Shooter.Aimed,
		}); err != nil {
			return 0, fmt.Errorf("enemy: add shooter: %w", err)
		}
	}

	if spec.Explosion != nil {
		if err := ecs.Add(w, entity, component.ExplosiveComponent.Kind(), &component.Explosive{
			Radius: spec.Explosion.Radius,
			Damage: spec.Explosion.Damage,
		}); err != nil {
			return 0, fmt.Errorf("enemy: add explosive: %w", err)
		}
	}

	if spec.ReducedDamage {
		if err := ecs.Add(w, entity, component.DefenseComponent.Kind(), &component.Defense{
			Modifier: combat.ReducedDamage{},
		}); err != nil {
			return 0, fmt.Errorf("enemy: add defense: %w", err)
		}
	}

	return entity, nil
}
