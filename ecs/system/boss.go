package system

import (
	"log"
	"math/rand"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
	"github.com/milk9111/skyraid/vital"
)

// MinionSpawner creates a boss minion. Minions are not tracked by waves.
type MinionSpawner func(prefab string, pos common.Vec2) (ecs.Entity, error)

// BossSystem runs each boss's pattern machine: it moves the boss toward the
// pattern target, fires at the player, and calls in minions at randomly
// chosen minion points. Without an rng the points are used in turn.
type BossSystem struct {
	spawnMinion MinionSpawner
	rng         *rand.Rand
}

func NewBossSystem(spawnMinion MinionSpawner, rng *rand.Rand) *BossSystem {
	return &BossSystem{spawnMinion: spawnMinion, rng: rng}
}

func (s *BossSystem) minionPoint(b *component.Boss) common.Vec2 {
	if s.rng != nil {
		return b.MinionPoints[s.rng.Intn(len(b.MinionPoints))]
	}
	point := b.MinionPoints[b.NextPoint%len(b.MinionPoints)]
	b.NextPoint++
	return point
}

func (s *BossSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	_, playerPos, havePlayer := playerPosition(w)

	ecs.ForEach3(w, component.BossComponent.Kind(), component.TransformComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, b *component.Boss, t *component.Transform, h *vital.Health) {
		if b.Machine == nil || !isActive(w, e) {
			return
		}

		if b.Machine.ObserveHealth(h.Fraction()) {
			log.Printf("boss: %s enraged at %d/%d", b.Name, h.Current(), h.Max())
			ecs.Emit(w, ecs.EventBossEnraged, e, nil)
		}

		actions := b.Machine.Update(dt)
		t.Pos = common.MoveTowards(t.Pos, actions.Target, b.MoveSpeed*dt)

		for i := 0; i < actions.Shots; i++ {
			aim := down
			if havePlayer {
				aim = playerPos.Sub(t.Pos)
			}
			if _, err := entity.NewBullet(w, entity.BulletSpec{
				Faction:  component.FactionEnemy,
				Pos:      t.Pos,
				Velocity: aim.Normalized().Scale(b.BulletSpeed),
				Damage:   b.BulletDamage,
				Lifetime: b.BulletLifetime,
			}); err != nil {
				log.Printf("boss: fire: %v", err)
			}
		}

		if actions.Minions == 0 || s.spawnMinion == nil || len(b.MinionPoints) == 0 {
			return
		}
		for i := 0; i < actions.Minions; i++ {
			if _, err := s.spawnMinion(b.MinionPrefab, s.minionPoint(b)); err != nil {
				log.Printf("boss: spawn minion %q: %v", b.MinionPrefab, err)
			}
		}
	})
}
