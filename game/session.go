package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/skyraid/combat"
	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/economy"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/ecs/component"
	"github.com/milk9111/skyraid/ecs/entity"
	"github.com/milk9111/skyraid/ecs/system"
	"github.com/milk9111/skyraid/encounter"
	"github.com/milk9111/skyraid/hud"
	"github.com/milk9111/skyraid/persist"
	"github.com/milk9111/skyraid/physics"
	"github.com/milk9111/skyraid/prefabs"
	"github.com/milk9111/skyraid/vital"
)

type Options struct {
	Ship       string
	StartStage int
	// Continue resumes the stage and vitals from the store's record.
	Continue bool
	Seed     int64
	Store    persist.Store
	Notifier hud.Notifier
}

// Session is one run of the game: the world, its systems and the
// encounter director driving it.
type Session struct {
	content  *prefabs.Content
	world    *ecs.World
	contacts *physics.ContactWorld
	movement *system.MovementSystem
	systems  []ecs.System
	rng      *rand.Rand

	events   *encounter.Dispatcher
	seq      *encounter.Sequencer
	director *encounter.Director
	loader   *encounter.DeferredLoader

	economy  *economy.Economy
	ship     prefabs.ShipSpec
	vitals   entity.PlayerVitals
	player   ecs.Entity
	input    component.Input
	store    persist.Store
	notifier hud.Notifier

	boss         ecs.Entity
	bossFraction float64
	carry        bool
	watcher      *prefabs.Watcher
	start        int
}

func NewSession(content *prefabs.Content, opts Options) (*Session, error) {
	if content == nil {
		return nil, fmt.Errorf("session: %w", prefabs.ErrConfigurationMissing)
	}
	ship, ok := content.Ships.Ship(opts.Ship)
	if !ok {
		return nil, fmt.Errorf("ship %q: %w", opts.Ship, prefabs.ErrConfigurationMissing)
	}
	settings := content.Settings

	s := &Session{
		content:  content,
		world:    ecs.NewWorld(),
		contacts: physics.NewContactWorld(),
		movement: system.NewMovementSystem(),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		events:   encounter.NewDispatcher(),
		loader:   &encounter.DeferredLoader{},
		economy: economy.New(economy.Rewards{
			EnergyPerHit:  settings.EnergyGainPerHit,
			EnergyPerKill: settings.EnergyGainPerKill,
		}),
		ship: ship,
		vitals: entity.PlayerVitals{
			Health: vital.NewHealth(ship.MaxHealth),
			Energy: vital.NewEnergy(ship.MaxEnergy),
			Lives:  vital.NewLives(settings.StartingLives, settings.MaxLives),
		},
		store:    opts.Store,
		notifier: opts.Notifier,
		start:    opts.StartStage,
	}
	if s.store == nil {
		s.store = &persist.MemoryStore{}
	}
	if s.notifier == nil {
		s.notifier = hud.NewState()
	}
	s.economy.BindEnergy(s.vitals.Energy)

	s.loadRecord(opts.Continue)
	s.bindNotifier()

	s.systems = []ecs.System{
		system.NewPlayerSystem(),
		system.NewSpecialAttackSystem(),
		system.NewBossSystem(s.spawnMinion, s.rng),
		s.movement,
		system.NewShooterSystem(),
		system.NewContactSystem(s.contacts),
		system.NewPlayerLifeSystem(settings.PlayerSpawn, settings.RespawnInvulnerability),
		system.NewLifecycleSystem(system.DropConfig{
			Table:    dropTable(settings.Drops),
			Amounts:  settings.Pickups,
			Lifetime: settings.PickupLifetime,
		}, s.rng),
		system.NewTTLSystem(),
		system.NewEnergyRegenSystem(),
		system.NewWhiteFlashSystem(),
	}

	s.seq = encounter.NewSequencer(s, s.rng, s.events)
	s.director = encounter.NewDirector(content.Stages, s.seq, s, s.loader, s.events, settings.PortalSpawnDelay)
	s.subscribe()
	return s, nil
}

func dropTable(specs []prefabs.DropSpec) combat.DropTable {
	entries := make([]combat.DropEntry, 0, len(specs))
	for _, d := range specs {
		kind, err := combat.ParseDropKind(d.Kind)
		if err != nil {
			log.Printf("session: drops: %v", err)
			continue
		}
		entries = append(entries, combat.DropEntry{Kind: kind, Chance: d.Chance})
	}
	return combat.NewDropTable(entries...)
}

func (s *Session) loadRecord(resume bool) {
	rec, err := s.store.Load()
	if errors.Is(err, persist.ErrNoRecord) {
		return
	}
	if err != nil {
		log.Printf("session: load progress: %v", err)
		return
	}
	s.economy.LoadHighScore(rec.HighScore)
	if !resume {
		return
	}
	if rec.Lives <= 0 {
		log.Printf("session: saved run has no lives left, starting fresh")
		return
	}
	s.applyRecord(rec)
	s.economy.Restore(rec.Score)
	s.start = rec.Stage
}

func (s *Session) applyRecord(rec persist.Record) {
	s.vitals.Health.Restore(rec.Health, s.vitals.Health.Max())
	s.vitals.Energy.Restore(rec.Energy, s.vitals.Energy.Max())
	s.vitals.Lives.Initialize(rec.Lives, s.vitals.Lives.Max())
}

func (s *Session) bindNotifier() {
	n := s.notifier
	s.vitals.Health.OnChanged(func(current, max int) { n.HealthChanged(current, max) })
	s.vitals.Energy.OnChanged(func(current, max float64) { n.EnergyChanged(current, max) })
	s.vitals.Lives.OnChanged(func(current, _ int) { n.LivesChanged(current) })
	s.economy.OnScoreChanged(func(score, high int) { n.ScoreChanged(score, high) })

	n.HealthChanged(s.vitals.Health.Current(), s.vitals.Health.Max())
	n.EnergyChanged(s.vitals.Energy.Current(), s.vitals.Energy.Max())
	n.LivesChanged(s.vitals.Lives.Current())
	n.ScoreChanged(s.economy.Score(), s.economy.HighScore())
}

func (s *Session) subscribe() {
	n := s.notifier
	s.events.Subscribe(encounter.EventStageStarted, func(e encounter.Event) {
		n.Message(fmt.Sprintf("Stage %d: %s", e.Stage+1, e.Name))
	})
	s.events.Subscribe(encounter.EventWaveStarted, func(e encounter.Event) {
		n.WaveStarted(e.Stage, e.Wave, e.Name)
	})
	s.events.Subscribe(encounter.EventBossSpawned, func(e encounter.Event) {
		s.boss = e.Actor
		s.bossFraction = 1
		n.BossHealthChanged(1, true)
	})
	s.events.Subscribe(encounter.EventBossDefeated, func(encounter.Event) {
		s.clearBoss()
		n.Message("Boss defeated")
	})
	s.events.Subscribe(encounter.EventPortalSpawned, func(encounter.Event) {
		n.Message("Portal open")
	})
	s.events.Subscribe(encounter.EventVictory, func(encounter.Event) {
		n.Victory(s.economy.Score())
	})
	s.events.Subscribe(encounter.EventGameOver, func(encounter.Event) {
		n.GameOver(s.economy.Score())
	})
}

// Start loads the first stage. The scene is populated on the next Tick.
func (s *Session) Start() {
	s.director.Start(s.start)
}

// SetInput records the controller state applied on the next Tick.
func (s *Session) SetInput(in component.Input) {
	s.input = in
}

// Tick advances the simulation by dt seconds.
func (s *Session) Tick(dt float64) {
	if s.Over() {
		return
	}
	s.loader.Pump()
	s.pollReload()

	if in, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		*in = s.input
	}
	s.world.Advance(dt)
	ecs.RunSystems(s.world, s.systems...)
	s.route(s.world.Events().Drain())
	s.director.Update(dt)
	s.updateBossBar()
}

func (s *Session) route(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventActorDestroyed:
			d, _ := evt.Data.(ecs.Destroyed)
			if d.Killed {
				s.economy.CreditKill(d.ScoreValue)
			}
			if d.Boss && evt.Entity == s.boss {
				s.clearBoss()
			}
			s.director.ActorResolved(evt.Entity, d.Boss)

		case ecs.EventEnemyHit:
			s.economy.CreditHit()

		case ecs.EventPlayerDied:
			if lives, _ := evt.Data.(int); lives > 0 {
				s.notifier.Message(fmt.Sprintf("Ship lost, %d left", lives))
				continue
			}
			s.director.GameOver()

		case ecs.EventPortalEntered:
			s.carry = true
			s.director.PortalEntered()

		case ecs.EventBossEnraged:
			s.notifier.Message("The boss is enraged")
		}
	}
}

func (s *Session) clearBoss() {
	s.boss = 0
	s.bossFraction = 0
	s.notifier.BossHealthChanged(0, false)
}

func (s *Session) updateBossBar() {
	if s.boss == 0 {
		return
	}
	h, ok := ecs.Get(s.world, s.boss, component.HealthComponent.Kind())
	if !ok {
		return
	}
	if f := h.Fraction(); f != s.bossFraction {
		s.bossFraction = f
		s.notifier.BossHealthChanged(f, true)
	}
}

func (s *Session) SpawnEnemy(prefab string, at common.Vec2) (ecs.Entity, error) {
	spec, err := s.content.Enemy(prefab)
	if err != nil {
		return 0, err
	}
	return entity.NewEnemy(s.world, prefab, spec, at, false)
}

func (s *Session) spawnMinion(prefab string, at common.Vec2) (ecs.Entity, error) {
	spec, err := s.content.Enemy(prefab)
	if err != nil {
		return 0, err
	}
	return entity.NewEnemy(s.world, prefab, spec, at, true)
}

func (s *Session) SpawnBoss(name string, at common.Vec2) (ecs.Entity, error) {
	spec, err := s.content.Boss(name)
	if err != nil {
		return 0, err
	}
	return entity.NewBoss(s.world, spec, at)
}

func (s *Session) SpawnPortal(nextStage int) (ecs.Entity, error) {
	return entity.NewPortal(s.world, s.content.Settings.PortalPosition, nextStage)
}

// SetupStage clears the previous scene and places the player. Vitals carry
// over from the saved record when the stage was reached through a portal.
func (s *Session) SetupStage(index int, stage prefabs.StageSpec) {
	ecs.Clear(s.world)
	s.world.Events().Drain()
	s.contacts.Reset()
	s.clearBoss()

	if s.carry {
		s.carry = false
		if rec, err := s.store.Load(); err == nil {
			s.applyRecord(rec)
		} else {
			log.Printf("session: carry vitals into stage %d: %v", index, err)
		}
	}

	player, err := entity.NewPlayer(s.world, s.ship, s.vitals, s.content.Settings.PlayerSpawn, s.content.Settings.EnergyRegenRate)
	if err != nil {
		log.Printf("session: stage %d: %v", index, err)
		return
	}
	s.player = player
	log.Printf("session: stage %d %q ready", index, stage.Name)
}

// SaveProgress writes the current vitals and score. A completed stage is
// saved as the next one so a resumed run starts past it.
func (s *Session) SaveProgress() {
	stage := s.director.StageIndex()
	if s.director.State() == encounter.StateStageComplete {
		stage++
	}
	rec := persist.Record{
		Stage:     stage,
		Health:    s.vitals.Health.Current(),
		Energy:    s.vitals.Energy.Current(),
		Lives:     s.vitals.Lives.Current(),
		Score:     s.economy.Score(),
		HighScore: s.economy.HighScore(),
	}
	if err := s.store.Save(rec); err != nil {
		log.Printf("session: save progress: %v", err)
	}
}

// Over reports whether the run has ended in victory or defeat.
func (s *Session) Over() bool {
	st := s.director.State()
	return st == encounter.StateGameOver || st == encounter.StateAllStagesComplete
}

// Close saves progress so the high score survives the process, then
// stops the content watcher.
func (s *Session) Close() error {
	s.SaveProgress()
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Director() *encounter.Director { return s.director }

func (s *Session) Events() *encounter.Dispatcher { return s.events }

func (s *Session) Economy() *economy.Economy { return s.economy }

func (s *Session) Vitals() entity.PlayerVitals { return s.vitals }

func (s *Session) Player() ecs.Entity { return s.player }

func (s *Session) Content() *prefabs.Content { return s.content }

func (s *Session) Loader() *encounter.DeferredLoader { return s.loader }
