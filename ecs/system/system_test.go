package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/skyraid/combat"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
	"github.com/milk9111/skyraid/physics"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

const tick = 1.0 / 60

func basicEnemy() prefabs.EnemySpec {
	return prefabs.EnemySpec{MaxHealth: 30, Score: 100, Speed: 2, Damage: 10, Radius: 0.5}
}

func spawnEnemy(t *testing.T, w *ecs.World, spec prefabs.EnemySpec, pos common.Vec2) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(w, "basic", spec, pos, false)
	if err != nil {
		t.Fatalf("spawn enemy: %v", err)
	}
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, pos common.Vec2, lives int) (ecs.Entity, entity.PlayerVitals) {
	t.Helper()
	vitals := entity.PlayerVitals{
		Health: vital.NewHealth(100),
		Energy: vital.NewEnergy(100),
		Lives:  vital.NewLives(lives, 5),
	}
	ship := prefabs.ShipSpec{
		Name: "test", MaxHealth: 100, MaxEnergy: 100, Speed: 6, FirePeriod: 0.2,
		BulletDamage: 15, BulletSpeed: 10, BulletLifetime: 2, Radius: 0.4,
		Special: prefabs.SpecialSpec{Cost: 50, Duration: 1, Cooldown: 2, DPS: 60, Width: 1},
	}
	e, err := entity.NewPlayer(w, ship, vitals, pos, 0)
	if err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	return e, vitals
}

func step(w *ecs.World, systems ...ecs.System) []ecs.Event {
	w.Advance(tick)
	ecs.RunSystems(w, systems...)
	return w.Events().Drain()
}

func count(events []ecs.Event, kind ecs.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func find(events []ecs.Event, kind ecs.EventKind) (ecs.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return ecs.Event{}, false
}

func TestLifecycleKillRaisesDestroyedOnce(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnEnemy(t, w, basicEnemy(), common.V(0, 2))
	h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
	h.ApplyDelta(-1000)

	life := NewLifecycleSystem(DropConfig{}, rand.New(rand.NewSource(1)))
	events := step(w, life)

	evt, ok := find(events, ecs.EventActorDestroyed)
	if !ok || count(events, ecs.EventActorDestroyed) != 1 {
		t.Fatalf("expected one destroyed event, got %v", events)
	}
	d := evt.Data.(ecs.Destroyed)
	if !d.Killed || d.Boss || d.ScoreValue != 100 {
		t.Fatalf("unexpected payload %+v", d)
	}
	if ecs.Has(w, e, component.ColliderComponent.Kind()) {
		t.Fatal("dying actor kept its collider")
	}
	actor, _ := ecs.Get(w, e, component.ActorComponent.Kind())
	if actor.State != component.Dying {
		t.Fatalf("expected dying, got %v", actor.State)
	}

	events = step(w, life)
	if count(events, ecs.EventActorDestroyed) != 0 || count(events, ecs.EventActorRemoved) != 1 {
		t.Fatalf("expected only a removal, got %v", events)
	}
	if ecs.IsAlive(w, e) {
		t.Fatal("expected entity destroyed")
	}
	if events = step(w, life); len(events) != 0 {
		t.Fatalf("expected no more events, got %v", events)
	}
}

func TestLifecycleDrops(t *testing.T) {
	always := combat.NewDropTable(combat.DropEntry{Kind: combat.DropHealth, Chance: 1})
	tests := []struct {
		name  string
		pos   common.Vec2
		kill  bool
		drops int
	}{
		{"kill drops", common.V(0, 0), true, 1},
		{"escape drops nothing", common.V(0, -9), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := spawnEnemy(t, w, basicEnemy(), tt.pos)
			if tt.kill {
				h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
				h.ApplyDelta(-1000)
			}
			life := NewLifecycleSystem(DropConfig{
				Table:    always,
				Amounts:  prefabs.PickupAmounts{Health: 25},
				Lifetime: 5,
			}, rand.New(rand.NewSource(1)))
			events := step(w, life)

			evt, ok := find(events, ecs.EventActorDestroyed)
			if !ok {
				t.Fatal("expected destroyed event")
			}
			if got := evt.Data.(ecs.Destroyed).Killed; got != tt.kill {
				t.Fatalf("expected killed=%v, got %v", tt.kill, got)
			}
			if got := ecs.Count(w, component.PickupComponent.Kind()); got != tt.drops {
				t.Fatalf("expected %d pickups, got %d", tt.drops, got)
			}
		})
	}
}

func TestExplosionDamagesNeighbours(t *testing.T) {
	w := ecs.NewWorld()
	bombSpec := basicEnemy()
	bombSpec.Explosion = &prefabs.ExplosionSpec{Radius: 2, Damage: 20}
	bomb := spawnEnemy(t, w, bombSpec, common.V(0, 0))
	near := spawnEnemy(t, w, basicEnemy(), common.V(1, 0))
	far := spawnEnemy(t, w, basicEnemy(), common.V(5, 0))
	_, vitals := spawnPlayer(t, w, common.V(0, -1), 3)

	h, _ := ecs.Get(w, bomb, component.HealthComponent.Kind())
	h.ApplyDelta(-1000)
	step(w, NewLifecycleSystem(DropConfig{}, nil))

	nh, _ := ecs.Get(w, near, component.HealthComponent.Kind())
	fh, _ := ecs.Get(w, far, component.HealthComponent.Kind())
	if nh.Current() != 10 || fh.Current() != 30 {
		t.Fatalf("expected near=10 far=30, got %d %d", nh.Current(), fh.Current())
	}
	if vitals.Health.Current() != 80 {
		t.Fatalf("expected player at 80, got %d", vitals.Health.Current())
	}
}

func TestContactBulletHitsEnemy(t *testing.T) {
	w := ecs.NewWorld()
	enemy := spawnEnemy(t, w, basicEnemy(), common.V(0, 0))
	bullet, err := entity.NewBullet(w, entity.BulletSpec{
		Faction: component.FactionPlayer, Pos: common.V(0, 0.2), Damage: 12, Lifetime: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	events := step(w, NewContactSystem(physics.NewContactWorld()))

	evt, ok := find(events, ecs.EventEnemyHit)
	if !ok || evt.Entity != enemy || evt.Data.(ecs.Hit).Damage != 12 {
		t.Fatalf("expected enemy hit for 12, got %v", events)
	}
	if ecs.IsAlive(w, bullet) {
		t.Fatal("expected bullet consumed")
	}
	h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	if h.Current() != 18 {
		t.Fatalf("expected 18 health left, got %d", h.Current())
	}
}

func TestContactReducedDamage(t *testing.T) {
	w := ecs.NewWorld()
	spec := basicEnemy()
	spec.ReducedDamage = true
	enemy := spawnEnemy(t, w, spec, common.V(0, 0))
	if _, err := entity.NewBullet(w, entity.BulletSpec{
		Faction: component.FactionPlayer, Pos: common.V(0, 0), Damage: 12, Lifetime: 2,
	}); err != nil {
		t.Fatal(err)
	}

	step(w, NewContactSystem(physics.NewContactWorld()))

	h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	if h.Current() != 24 {
		t.Fatalf("expected halved damage, got health %d", h.Current())
	}
}

func TestContactPlayerInteractions(t *testing.T) {
	t.Run("pickup", func(t *testing.T) {
		w := ecs.NewWorld()
		_, vitals := spawnPlayer(t, w, common.V(0, 0), 3)
		vitals.Health.ApplyDelta(-50)
		item, err := entity.NewPickup(w, string(combat.DropHealth), 25, common.V(0.3, 0), 5)
		if err != nil {
			t.Fatal(err)
		}

		events := step(w, NewContactSystem(physics.NewContactWorld()))

		if count(events, ecs.EventPickup) != 1 {
			t.Fatalf("expected pickup event, got %v", events)
		}
		if vitals.Health.Current() != 75 {
			t.Fatalf("expected 75 health, got %d", vitals.Health.Current())
		}
		if ecs.IsAlive(w, item) {
			t.Fatal("expected pickup consumed")
		}
	})

	t.Run("portal once", func(t *testing.T) {
		w := ecs.NewWorld()
		spawnPlayer(t, w, common.V(0, 0), 3)
		if _, err := entity.NewPortal(w, common.V(0, 0.5), 2); err != nil {
			t.Fatal(err)
		}
		contacts := NewContactSystem(physics.NewContactWorld())

		events := step(w, contacts)
		evt, ok := find(events, ecs.EventPortalEntered)
		if !ok || evt.Data.(int) != 2 {
			t.Fatalf("expected portal to stage 2, got %v", events)
		}
		for i := 0; i < 5; i++ {
			if events := step(w, contacts); count(events, ecs.EventPortalEntered) != 0 {
				t.Fatal("portal entered twice")
			}
		}
	})

	t.Run("ram kills enemy", func(t *testing.T) {
		w := ecs.NewWorld()
		_, vitals := spawnPlayer(t, w, common.V(0, 0), 3)
		enemy := spawnEnemy(t, w, basicEnemy(), common.V(0.5, 0))

		events := step(w, NewContactSystem(physics.NewContactWorld()), NewLifecycleSystem(DropConfig{}, nil))

		if vitals.Health.Current() != 90 {
			t.Fatalf("expected ram damage, got health %d", vitals.Health.Current())
		}
		evt, ok := find(events, ecs.EventActorDestroyed)
		if !ok || evt.Entity != enemy || !evt.Data.(ecs.Destroyed).Killed {
			t.Fatalf("expected rammed enemy destroyed as a kill, got %v", events)
		}
	})

	t.Run("invulnerable ignores bullets", func(t *testing.T) {
		w := ecs.NewWorld()
		player, vitals := spawnPlayer(t, w, common.V(0, 0), 3)
		_ = ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: 1})
		if _, err := entity.NewBullet(w, entity.BulletSpec{
			Faction: component.FactionEnemy, Pos: common.V(0, 0), Damage: 20, Lifetime: 2,
		}); err != nil {
			t.Fatal(err)
		}

		events := step(w, NewContactSystem(physics.NewContactWorld()))

		if vitals.Health.Current() != 100 || count(events, ecs.EventPlayerHit) != 0 {
			t.Fatalf("expected no damage, got health %d", vitals.Health.Current())
		}
	})
}

func TestSpecialAttack(t *testing.T) {
	tests := []struct {
		name       string
		energy     float64
		fired      bool
		energyLeft float64
	}{
		{"insufficient energy is a no-op", 30, false, 30},
		{"fires and spends cost", 100, true, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player, vitals := spawnPlayer(t, w, common.V(0, -4), 3)
			vitals.Energy.Restore(tt.energy, 100)
			enemy := spawnEnemy(t, w, basicEnemy(), common.V(0.3, 2))
			in, _ := ecs.Get(w, player, component.InputComponent.Kind())
			in.Special = true

			events := step(w, NewSpecialAttackSystem())

			if got := count(events, ecs.EventSpecialFired) == 1; got != tt.fired {
				t.Fatalf("expected fired=%v, events %v", tt.fired, events)
			}
			if vitals.Energy.Current() != tt.energyLeft {
				t.Fatalf("expected energy %v, got %v", tt.energyLeft, vitals.Energy.Current())
			}

			for i := 0; i < 30; i++ {
				step(w, NewSpecialAttackSystem())
			}
			h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
			if burned := h.Current() < 30; burned != tt.fired {
				t.Fatalf("expected burned=%v, enemy health %d", tt.fired, h.Current())
			}
		})
	}
}

func testBoss() prefabs.BossSpec {
	return prefabs.BossSpec{
		Name:      "warden",
		MaxHealth: 1000,
		Score:     5000,
		MoveSpeed: 2,
		Bounds:    common.V(7, 4),
		Radius:    1,
		Fire:      prefabs.BossFireSpec{Period: 10, Damage: 5, Speed: 4, Lifetime: 5},
		Minions: prefabs.BossMinionSpec{
			Prefab:  "minion",
			Period:  1,
			PerWave: 2,
			Points:  []common.Vec2{common.V(-5, 6.5), common.V(5, 6.5)},
		},
		Enrage: prefabs.EnrageSpec{Threshold: 0.3, Multiplier: 0.5},
	}
}

func TestBossSystem(t *testing.T) {
	w := ecs.NewWorld()
	boss, err := entity.NewBoss(w, testBoss(), common.V(0, 4))
	if err != nil {
		t.Fatal(err)
	}

	var spawned []common.Vec2
	system := NewBossSystem(func(prefab string, pos common.Vec2) (ecs.Entity, error) {
		if prefab != "minion" {
			t.Fatalf("unexpected minion prefab %q", prefab)
		}
		spawned = append(spawned, pos)
		return ecs.CreateEntity(w), nil
	}, nil)

	w.Advance(1)
	ecs.RunSystems(w, system)
	if len(spawned) != 2 || spawned[0] != common.V(-5, 6.5) || spawned[1] != common.V(5, 6.5) {
		t.Fatalf("expected a burst at both points, got %v", spawned)
	}

	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())
	h.ApplyDelta(-800)
	events := step(w, system)
	if count(events, ecs.EventBossEnraged) != 1 {
		t.Fatalf("expected enrage event, got %v", events)
	}
	if events := step(w, system); count(events, ecs.EventBossEnraged) != 0 {
		t.Fatal("enraged twice")
	}
}

func TestBossMinionPointsAreRandom(t *testing.T) {
	run := func(seed int64) []common.Vec2 {
		w := ecs.NewWorld()
		if _, err := entity.NewBoss(w, testBoss(), common.V(0, 4)); err != nil {
			t.Fatal(err)
		}
		var spawned []common.Vec2
		system := NewBossSystem(func(_ string, pos common.Vec2) (ecs.Entity, error) {
			spawned = append(spawned, pos)
			return ecs.CreateEntity(w), nil
		}, rand.New(rand.NewSource(seed)))
		for i := 0; i < 10; i++ {
			w.Advance(1)
			ecs.RunSystems(w, system)
		}
		return spawned
	}

	points := testBoss().Minions.Points
	got := run(7)
	if len(got) != 20 {
		t.Fatalf("expected 10 bursts of 2, got %d minions", len(got))
	}
	seen := make(map[common.Vec2]int)
	for _, p := range got {
		if p != points[0] && p != points[1] {
			t.Fatalf("minion spawned off the minion points at %v", p)
		}
		seen[p]++
	}
	if len(seen) != 2 {
		t.Fatalf("expected both points used, got %v", seen)
	}

	again := run(7)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("same seed should pick the same points, diverged at %d", i)
		}
	}
}

func TestBossEnragesOnceUnderStagedDamage(t *testing.T) {
	w := ecs.NewWorld()
	boss, err := entity.NewBoss(w, testBoss(), common.V(0, 4))
	if err != nil {
		t.Fatal(err)
	}
	system := NewBossSystem(nil, nil)
	b, _ := ecs.Get(w, boss, component.BossComponent.Kind())
	h, _ := ecs.Get(w, boss, component.HealthComponent.Kind())

	stages := []struct {
		name       string
		damage     int
		health     int
		enraged    int
		firePeriod float64
		minionRate float64
	}{
		{"above_threshold", 350, 650, 0, 10, 1},
		{"crosses_threshold", 400, 250, 1, 5, 0.5},
		{"already_enraged", 100, 150, 0, 5, 0.5},
	}
	for _, st := range stages {
		t.Run(st.name, func(t *testing.T) {
			combat.Resolve(st.damage, h, nil)
			events := step(w, system)
			if h.Current() != st.health {
				t.Fatalf("expected health %d, got %d", st.health, h.Current())
			}
			if got := count(events, ecs.EventBossEnraged); got != st.enraged {
				t.Fatalf("expected %d enrage events, got %d", st.enraged, got)
			}
			if b.Machine.FirePeriod() != st.firePeriod || b.Machine.MinionPeriod() != st.minionRate {
				t.Fatalf("expected periods %v/%v, got %v/%v", st.firePeriod, st.minionRate, b.Machine.FirePeriod(), b.Machine.MinionPeriod())
			}
		})
	}
}

func TestPlayerLife(t *testing.T) {
	spawn := common.V(0, -4.5)
	w := ecs.NewWorld()
	player, vitals := spawnPlayer(t, w, common.V(3, 0), 2)
	life := NewPlayerLifeSystem(spawn, 2)

	vitals.Health.ApplyDelta(-1000)
	events := step(w, life)
	evt, ok := find(events, ecs.EventPlayerDied)
	if !ok || evt.Data.(int) != 1 {
		t.Fatalf("expected death with 1 life left, got %v", events)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Pos != spawn || vitals.Health.Current() != 100 {
		t.Fatalf("expected respawn at full health, got %+v %d", tr.Pos, vitals.Health.Current())
	}
	if !ecs.Has(w, player, component.InvulnerableComponent.Kind()) {
		t.Fatal("expected respawn invulnerability")
	}

	vitals.Health.ApplyDelta(-1000)
	events = step(w, life)
	evt, ok = find(events, ecs.EventPlayerDied)
	if !ok || evt.Data.(int) != 0 {
		t.Fatalf("expected final death, got %v", events)
	}
	if ecs.Has(w, player, component.ColliderComponent.Kind()) {
		t.Fatal("expected collider removed after final death")
	}
	if events := step(w, life); count(events, ecs.EventPlayerDied) != 0 {
		t.Fatal("final death reported twice")
	}
}

func TestMovementScriptDrift(t *testing.T) {
	prefabs.SetDir("")
	defer prefabs.SetDir("prefabs")

	w := ecs.NewWorld()
	spec := basicEnemy()
	spec.Movement = prefabs.MovementSpec{Kind: "script", Script: "sine", Params: map[string]float64{"amplitude": 3, "frequency": 1.5}}
	e := spawnEnemy(t, w, spec, common.V(0, 5))

	step(w, NewMovementSystem())

	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if v.X < 4 || v.Y != -2 {
		t.Fatalf("expected sine drift velocity, got %+v", v.Vec2)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.Pos.X <= 0 || tr.Pos.Y >= 5 {
		t.Fatalf("expected position to integrate, got %+v", tr.Pos)
	}
}

func TestTTLExpires(t *testing.T) {
	w := ecs.NewWorld()
	item, err := entity.NewPickup(w, "energy", 10, common.V(0, 0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	stray, err := entity.NewBullet(w, entity.BulletSpec{Faction: component.FactionPlayer, Pos: common.V(0, 20), Lifetime: 10})
	if err != nil {
		t.Fatal(err)
	}
	ttl := NewTTLSystem()
	step(w, ttl)
	if ecs.IsAlive(w, stray) {
		t.Fatal("expected off-field bullet culled")
	}
	for i := 0; i < 40; i++ {
		step(w, ttl)
	}
	if ecs.IsAlive(w, item) {
		t.Fatal("expected pickup expired")
	}
}

func TestHitFlash(t *testing.T) {
	w := ecs.NewWorld()
	enemy := spawnEnemy(t, w, basicEnemy(), common.V(0, 0))
	damage(w, enemy, 5)

	wf, ok := ecs.Get(w, enemy, component.WhiteFlashComponent.Kind())
	if !ok || !wf.On {
		t.Fatal("expected hit flash to start on")
	}
	flashes := NewWhiteFlashSystem()
	w.Advance(0.05)
	ecs.RunSystems(w, flashes)
	if wf.On {
		t.Fatal("expected flash to toggle off")
	}
	for i := 0; i < 4; i++ {
		w.Advance(0.05)
		ecs.RunSystems(w, flashes)
	}
	if ecs.Has(w, enemy, component.WhiteFlashComponent.Kind()) {
		t.Fatal("expected flash to expire")
	}
}
