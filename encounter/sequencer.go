package encounter

import (
	"errors"
	"log"
	"math/rand"

	"github.com/milk9111/skyraid/common"
	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/prefabs"
)

// Spawner creates wave actors. A prefab it cannot resolve must be reported
// with an error wrapping prefabs.ErrConfigurationMissing.
type Spawner interface {
	SpawnEnemy(prefab string, at common.Vec2) (ecs.Entity, error)
	SpawnBoss(name string, at common.Vec2) (ecs.Entity, error)
}

type SequencerState int

const (
	SeqIdle SequencerState = iota
	SeqSpawning
	SeqAwaitingClearance
	SeqComplete
)

func (s SequencerState) String() string {
	switch s {
	case SeqIdle:
		return "idle"
	case SeqSpawning:
		return "spawning"
	case SeqAwaitingClearance:
		return "awaiting_clearance"
	case SeqComplete:
		return "complete"
	}
	return "unknown"
}

// defaultBossSpawn is just above the top edge, centred.
var defaultBossSpawn = common.V(0, common.FieldHalfHeight+1)

// Sequencer runs one wave at a time: it emits the wave's spawn specs on
// their cadence, counts outstanding actors down as they resolve, and
// reports completion once the wave's delay has passed.
type Sequencer struct {
	spawner Spawner
	events  *Dispatcher
	rng     *rand.Rand
	points  []common.Vec2

	state       SequencerState
	wave        prefabs.WaveSpec
	stage       int
	ordinal     int
	specIndex   int
	emitted     int
	timer       float64
	outstanding int
	tracked     map[ecs.Entity]struct{}
	boss        ecs.Entity
	delay       float64
	signalled   bool
}

func NewSequencer(spawner Spawner, rng *rand.Rand, events *Dispatcher) *Sequencer {
	return &Sequencer{
		spawner: spawner,
		events:  events,
		rng:     rng,
		tracked: make(map[ecs.Entity]struct{}),
	}
}

// SetSpawnPoints replaces the points used by specs without a fixed point.
func (s *Sequencer) SetSpawnPoints(points []common.Vec2) {
	s.points = append([]common.Vec2(nil), points...)
}

// Start begins a wave. Any wave in progress is abandoned.
func (s *Sequencer) Start(stage, ordinal int, wave prefabs.WaveSpec) {
	s.wave = wave
	s.stage = stage
	s.ordinal = ordinal
	s.state = SeqSpawning
	s.specIndex = 0
	s.emitted = 0
	s.timer = 0
	s.outstanding = wave.Outstanding()
	s.tracked = make(map[ecs.Entity]struct{})
	s.boss = 0
	s.delay = 0
	s.signalled = false

	log.Printf("wave: stage=%d wave=%d %q started, outstanding=%d", stage, ordinal, wave.Name, s.outstanding)
	s.events.Dispatch(Event{Kind: EventWaveStarted, Stage: stage, Wave: ordinal, Name: wave.Name})
	s.pump(0)
}

// Update advances spawning and the post-clear delay. It returns true on the
// single tick the wave is reported complete.
func (s *Sequencer) Update(dt float64) bool {
	switch s.state {
	case SeqSpawning:
		s.pump(dt)
		return s.finishDelay(0)
	case SeqComplete:
		return s.finishDelay(dt)
	}
	return false
}

func (s *Sequencer) finishDelay(dt float64) bool {
	if s.state != SeqComplete || s.signalled {
		return false
	}
	s.delay -= dt
	if s.delay > 0 {
		return false
	}
	s.signalled = true
	log.Printf("wave: stage=%d wave=%d %q completed", s.stage, s.ordinal, s.wave.Name)
	s.events.Dispatch(Event{Kind: EventWaveCompleted, Stage: s.stage, Wave: s.ordinal, Name: s.wave.Name})
	return true
}

func (s *Sequencer) pump(dt float64) {
	s.timer -= dt
	for s.state == SeqSpawning {
		if s.exhausted() {
			s.finishSpawning()
			return
		}
		if s.timer > 0 {
			return
		}
		spec := s.wave.Spawns[s.specIndex]
		s.spawnOne(spec)
		s.emitted++
		s.timer += spec.Interval
		if s.emitted >= spec.Count {
			s.specIndex++
			s.emitted = 0
		}
	}
}

// exhausted skips empty specs and reports whether every spec is done.
func (s *Sequencer) exhausted() bool {
	for s.specIndex < len(s.wave.Spawns) && s.wave.Spawns[s.specIndex].Count <= s.emitted {
		s.specIndex++
		s.emitted = 0
	}
	return s.specIndex >= len(s.wave.Spawns)
}

func (s *Sequencer) spawnOne(spec prefabs.SpawnSpec) {
	pos := s.pickPoint(spec)
	id, err := s.spawner.SpawnEnemy(spec.Prefab, pos)
	if err != nil {
		s.logSpawnError(spec.Prefab, err)
		s.resolveSynthetic()
		return
	}
	s.tracked[id] = struct{}{}
}

func (s *Sequencer) pickPoint(spec prefabs.SpawnSpec) common.Vec2 {
	if spec.SpawnPoint != nil {
		return *spec.SpawnPoint
	}
	if len(s.points) == 0 {
		return common.Vec2{}
	}
	if s.rng == nil {
		return s.points[0]
	}
	return s.points[s.rng.Intn(len(s.points))]
}

func (s *Sequencer) finishSpawning() {
	s.state = SeqAwaitingClearance
	if s.wave.BossWave {
		pos := defaultBossSpawn
		if s.wave.BossSpawn != nil {
			pos = *s.wave.BossSpawn
		}
		id, err := s.spawner.SpawnBoss(s.wave.Boss, pos)
		if err != nil {
			s.logSpawnError(s.wave.Boss, err)
			s.resolveSynthetic()
		} else {
			s.boss = id
			s.tracked[id] = struct{}{}
			s.events.Dispatch(Event{Kind: EventBossSpawned, Stage: s.stage, Wave: s.ordinal, Name: s.wave.Boss, Actor: id})
		}
	}
	s.checkClear()
}

func (s *Sequencer) logSpawnError(prefab string, err error) {
	if errors.Is(err, prefabs.ErrConfigurationMissing) {
		log.Printf("wave: %q: %v, counting it as resolved", s.wave.Name, err)
		return
	}
	log.Printf("wave: %q: spawn %q failed: %v, counting it as resolved", s.wave.Name, prefab, err)
}

// Resolve records that a tracked actor reached a terminal state. Untracked
// or repeated ids are ignored.
func (s *Sequencer) Resolve(id ecs.Entity) bool {
	if _, ok := s.tracked[id]; !ok {
		return false
	}
	delete(s.tracked, id)
	s.decrement()
	return true
}

func (s *Sequencer) resolveSynthetic() {
	s.decrement()
}

func (s *Sequencer) decrement() {
	if s.outstanding > 0 {
		s.outstanding--
	}
	s.checkClear()
}

func (s *Sequencer) checkClear() {
	if s.state != SeqAwaitingClearance || s.outstanding > 0 {
		return
	}
	s.state = SeqComplete
	s.delay = s.wave.DelayBeforeNext
}

// Conclude ends the running wave now, signalling completion unless it was
// already signalled. Resolutions after this are ignored.
func (s *Sequencer) Conclude() {
	if s.state == SeqIdle || s.signalled {
		return
	}
	s.signalled = true
	log.Printf("wave: stage=%d wave=%d %q concluded with %d outstanding", s.stage, s.ordinal, s.wave.Name, s.outstanding)
	s.events.Dispatch(Event{Kind: EventWaveCompleted, Stage: s.stage, Wave: s.ordinal, Name: s.wave.Name})
	s.Abort()
}

// Abort drops the current wave without signalling completion.
func (s *Sequencer) Abort() {
	s.state = SeqIdle
	s.tracked = make(map[ecs.Entity]struct{})
	s.outstanding = 0
	s.boss = 0
}

func (s *Sequencer) State() SequencerState { return s.state }

func (s *Sequencer) Outstanding() int { return s.outstanding }

// Boss is the tracked boss of the current wave, or zero.
func (s *Sequencer) Boss() ecs.Entity { return s.boss }

func (s *Sequencer) Wave() prefabs.WaveSpec { return s.wave }
