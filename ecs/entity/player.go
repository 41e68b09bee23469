package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

// PlayerVitals are the pools a player entity is built around. The session
// owns them so they survive stage reloads.
type PlayerVitals struct {
	Health *vital.Health
	Energy *vital.Energy
	Lives  *vital.Lives
}

func NewPlayer(w *ecs.World, ship prefabs.ShipSpec, vitals PlayerVitals, pos common.Vec2, regenRate float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		Ship:           ship.Name,
		Speed:          ship.Speed,
		FirePeriod:     ship.FirePeriod,
		BulletDamage:   ship.BulletDamage,
		BulletSpeed:    ship.BulletSpeed,
		BulletLifetime: ship.BulletLifetime,
		Pierce:         ship.Pierce,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), vitals.Health); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnergyComponent.Kind(), vitals.Energy); err != nil {
		return 0, fmt.Errorf("player: add energy: %w", err)
	}

	if err := ecs.Add(w, entity, component.LivesComponent.Kind(), vitals.Lives); err != nil {
		return 0, fmt.Errorf("player: add lives: %w", err)
	}

	if err := ecs.Add(w, entity, component.RegenComponent.Kind(), &component.Regen{Rate: regenRate}); err != nil {
		return 0, fmt.Errorf("player: add regen: %w", err)
	}

	if err := ecs.Add(w, entity, component.SpecialAttackComponent.Kind(), &component.SpecialAttack{
		Cost:     ship.Special.Cost,
		Duration: ship.Special.Duration,
		Cooldown: ship.Special.Cooldown,
		DPS:      ship.Special.DPS,
		Width:    ship.Special.Width,
	}); err != nil {
		return 0, fmt.Errorf("player: add special: %w", err)
	}

	radius := ship.Radius
	if radius <= 0 {
		radius = 0.4
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: radius,
		Tag:    component.TagPlayer,
	}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}

	return entity, nil
}
