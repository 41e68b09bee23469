package system

import (
	"log"
	"math/rand"

	"github.com/milk9111/skyraid/combat"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
	"github.com/milk9111/skyraid/prefabs"
)

// escapeMargin is how far past the playfield edge an enemy may travel
// before it counts as escaped.
const escapeMargin = 1.5

// DropConfig controls what killed enemies leave behind.
type DropConfig struct {
	Table    combat.DropTable
	Amounts  prefabs.PickupAmounts
	Lifetime float64
}

// LifecycleSystem moves actors through Active -> Dying -> Removed. An actor
// spends exactly one tick in Dying: the tick it is destroyed is the tick
// its destroyed event is raised, and it is removed on the next pass.
type LifecycleSystem struct {
	drops DropConfig
	rng   *rand.Rand
}

func NewLifecycleSystem(drops DropConfig, rng *rand.Rand) *LifecycleSystem {
	return &LifecycleSystem{drops: drops, rng: rng}
}

func (s *LifecycleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
		if a.State != component.Dying {
			return
		}
		a.State = component.Removed
		ecs.DestroyEntity(w, e)
		ecs.Emit(w, ecs.EventActorRemoved, e, nil)
	})

	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.Actor, t *component.Transform) {
		if a.State != component.Active {
			return
		}
		if a.Cause == component.CauseNone {
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Depleted() {
				a.Cause = component.CauseKilled
			} else if a.Role == component.RoleEnemy && !common.InField(t.Pos, escapeMargin) {
				a.Cause = component.CauseEscaped
			}
		}
		if a.Cause == component.CauseNone {
			return
		}
		s.enterDying(w, e, a, t.Pos)
	})
}

func (s *LifecycleSystem) enterDying(w *ecs.World, e ecs.Entity, a *component.Actor, pos common.Vec2) {
	a.State = component.Dying
	killed := a.Cause == component.CauseKilled || a.Cause == component.CauseRammed

	ecs.Remove(w, e, component.ColliderComponent.Kind())
	if b, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok {
		b.Machine.Stop()
	}

	if ex, ok := ecs.Get(w, e, component.ExplosiveComponent.Kind()); ok && killed {
		s.explode(w, e, pos, ex)
	}

	if killed && a.Role == component.RoleEnemy {
		s.drop(w, pos)
	}

	ecs.Emit(w, ecs.EventActorDestroyed, e, ecs.Destroyed{
		Killed:     killed,
		Boss:       a.Role == component.RoleBoss,
		Position:   pos,
		ScoreValue: a.ScoreValue,
	})
}

// explode damages the player and other enemies inside the blast radius.
// Enemies it kills die on the next pass.
func (s *LifecycleSystem) explode(w *ecs.World, source ecs.Entity, pos common.Vec2, ex *component.Explosive) {
	if player, ppos, ok := playerPosition(w); ok && ppos.Dist(pos) <= ex.Radius {
		hurtPlayer(w, player, ex.Damage)
	}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Enemy, t *component.Transform) {
		if e == source || !isActive(w, e) || t.Pos.Dist(pos) > ex.Radius {
			return
		}
		damage(w, e, ex.Damage)
	})
}

func (s *LifecycleSystem) drop(w *ecs.World, pos common.Vec2) {
	kind := s.drops.Table.Roll(s.rng)
	var amount float64
	switch kind {
	case combat.DropNone:
		return
	case combat.DropHealth:
		amount = float64(s.drops.Amounts.Health)
	case combat.DropEnergy:
		amount = s.drops.Amounts.Energy
	case combat.DropLife:
		amount = float64(s.drops.Amounts.Life)
	}
	if _, err := entity.NewPickup(w, string(kind), amount, pos, s.drops.Lifetime); err != nil {
		log.Printf("lifecycle: drop %s: %v", kind, err)
	}
}
