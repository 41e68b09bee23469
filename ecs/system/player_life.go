package system

import (
	"log"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/vital"
)

// PlayerLifeSystem spends a life when the ship's health runs out and
// respawns it with a short invulnerability window.
type PlayerLifeSystem struct {
	spawn        common.Vec2
	invulnerable float64
}

func NewPlayerLifeSystem(spawn common.Vec2, invulnerableFor float64) *PlayerLifeSystem {
	return &PlayerLifeSystem{spawn: spawn, invulnerable: invulnerableFor}
}

func (s *PlayerLifeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Remaining -= dt
		if inv.Remaining <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.HealthComponent.Kind(), component.LivesComponent.Kind(), func(e ecs.Entity, _ *component.Player, h *vital.Health, lives *vital.Lives) {
		if !h.Depleted() || lives.Exhausted() {
			return
		}
		if !lives.LoseLife() {
			log.Printf("player: out of lives")
			ecs.Remove(w, e, component.ColliderComponent.Kind())
			ecs.Emit(w, ecs.EventPlayerDied, e, 0)
			return
		}

		h.Initialize(h.Max())
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Pos = s.spawn
		}
		if s.invulnerable > 0 {
			_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: s.invulnerable})
		}
		ecs.Emit(w, ecs.EventPlayerDied, e, lives.Current())
	})
}
