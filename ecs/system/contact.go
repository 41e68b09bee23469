package system

import (
	"log"

	"github.com/milk9111/skyraid/combat"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/physics"
)

// ContactSystem steps the contact world and applies what each contact
// means: damage, pickups and portal entry.
type ContactSystem struct {
	contacts *physics.ContactWorld
}

func NewContactSystem(contacts *physics.ContactWorld) *ContactSystem {
	return &ContactSystem{contacts: contacts}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil || s.contacts == nil {
		return
	}
	s.contacts.Sync(w)
	for _, c := range s.contacts.Step(w.Delta()) {
		if !ecs.IsAlive(w, c.Self) || !ecs.IsAlive(w, c.Other) {
			continue
		}
		switch c.SelfTag {
		case component.TagPlayerBullet:
			s.bulletHit(w, c.Self, c.Other)
		case component.TagPlayer:
			s.playerTouch(w, c.Self, c.Other, c.OtherTag)
		}
	}
}

func (s *ContactSystem) bulletHit(w *ecs.World, bullet, target ecs.Entity) {
	b, ok := ecs.Get(w, bullet, component.BulletComponent.Kind())
	if !ok || !isActive(w, target) {
		return
	}
	if b.Pierce {
		if _, seen := b.Hits[uint64(target)]; seen {
			return
		}
		if b.Hits == nil {
			b.Hits = make(map[uint64]struct{})
		}
		b.Hits[uint64(target)] = struct{}{}
	} else {
		ecs.DestroyEntity(w, bullet)
	}

	if out := damage(w, target, b.Damage); out.Applied > 0 {
		ecs.Emit(w, ecs.EventEnemyHit, target, ecs.Hit{Damage: out.Applied})
	}
}

func (s *ContactSystem) playerTouch(w *ecs.World, player, other ecs.Entity, tag component.CollisionTag) {
	switch tag {
	case component.TagEnemy:
		if !isActive(w, other) {
			return
		}
		enemy, ok := ecs.Get(w, other, component.EnemyComponent.Kind())
		if !ok {
			return
		}
		hurtPlayer(w, player, enemy.Damage)
		if actor, ok := ecs.Get(w, other, component.ActorComponent.Kind()); ok {
			actor.Cause = component.CauseRammed
		}

	case component.TagBoss:
		if !isActive(w, other) {
			return
		}
		if boss, ok := ecs.Get(w, other, component.BossComponent.Kind()); ok {
			hurtPlayer(w, player, boss.Damage)
		}

	case component.TagEnemyBullet:
		b, ok := ecs.Get(w, other, component.BulletComponent.Kind())
		if !ok {
			return
		}
		ecs.DestroyEntity(w, other)
		hurtPlayer(w, player, b.Damage)

	case component.TagPickup:
		collect(w, player, other)

	case component.TagPortal:
		portal, ok := ecs.Get(w, other, component.PortalComponent.Kind())
		if !ok || portal.Used {
			return
		}
		portal.Used = true
		ecs.Emit(w, ecs.EventPortalEntered, other, portal.NextStage)
	}
}

// damage resolves a hit against e's health using e's own defense.
func damage(w *ecs.World, e ecs.Entity, amount int) combat.Outcome {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return combat.Outcome{}
	}
	var mod combat.Modifier
	if def, ok := ecs.Get(w, e, component.DefenseComponent.Kind()); ok {
		mod = def.Modifier
	}
	out := combat.Resolve(amount, h, mod)
	if out.Applied > 0 && ecs.Has(w, e, component.ActorComponent.Kind()) {
		flash(w, e)
	}
	return out
}

func hurtPlayer(w *ecs.World, player ecs.Entity, amount int) {
	if amount <= 0 || invulnerable(w, player) {
		return
	}
	if out := damage(w, player, amount); out.Applied > 0 {
		ecs.Emit(w, ecs.EventPlayerHit, player, ecs.Hit{Damage: out.Applied})
	}
}

func collect(w *ecs.World, player, item ecs.Entity) {
	p, ok := ecs.Get(w, item, component.PickupComponent.Kind())
	if !ok {
		return
	}
	switch p.Kind {
	case string(combat.DropHealth):
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			h.ApplyDelta(int(p.Amount))
		}
	case string(combat.DropEnergy):
		if en, ok := ecs.Get(w, player, component.EnergyComponent.Kind()); ok {
			en.ApplyDelta(p.Amount)
		}
	case string(combat.DropLife):
		if l, ok := ecs.Get(w, player, component.LivesComponent.Kind()); ok {
			for i := 0; i < max(1, int(p.Amount)); i++ {
				l.GainLife()
			}
		}
	default:
		log.Printf("contact: unknown pickup kind %q", p.Kind)
	}
	ecs.Emit(w, ecs.EventPickup, player, ecs.Collected{Kind: p.Kind, Amount: p.Amount})
	ecs.DestroyEntity(w, item)
}
