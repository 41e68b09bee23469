package system

import (
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/vital"
)

type EnergyRegenSystem struct{}

func NewEnergyRegenSystem() *EnergyRegenSystem {
	return &EnergyRegenSystem{}
}

func (s *EnergyRegenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach2(w, component.EnergyComponent.Kind(), component.RegenComponent.Kind(), func(_ ecs.Entity, en *vital.Energy, r *component.Regen) {
		en.Regenerate(r.Rate, dt)
	})
}
