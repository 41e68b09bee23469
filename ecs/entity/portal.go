package entity

import (
	"fmt"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
)

const portalRadius = 0.8

func NewPortal(w *ecs.World, pos common.Vec2, nextStage int) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PortalComponent.Kind(), &component.Portal{NextStage: nextStage}); err != nil {
		return 0, fmt.Errorf("portal: add portal: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{Pos: pos}); err != nil {
		return 0, fmt.Errorf("portal: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{
		Radius: portalRadius,
		Tag:    component.TagPortal,
	}); err != nil {
		return 0, fmt.Errorf("portal: add collider: %w", err)
	}

	return entity, nil
}
