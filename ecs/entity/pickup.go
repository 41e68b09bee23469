package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

const pickupRadius = 0.35

// NewPickup drops a collectible that expires after lifetime seconds.
func NewPickup(w *ecs.World, kind string, amount float64, pos common.Vec2, lifetime float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &component.Pickup{
		Kind:   kind,
		Amount: amount,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}

	// pickups drift down slowly so they cross the player's lane
	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{Vec2: common.V(0, -0.5)}); err != nil {
		return 0, fmt.Errorf("pickup: add velocity: %w", err)
	}

	if lifetime > 0 {
		if err := ecs.Add(w, entity, component.TTLComponent.Kind(), &component.TTL{Remaining: lifetime}); err != nil {
			return 0, fmt.Errorf("pickup: add ttl: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: pickupRadius,
		Tag:    component.TagPickup,
	}); err != nil {
		return 0, fmt.Errorf("pickup: add collider: %w", err)
	}

	return entity, nil
}
