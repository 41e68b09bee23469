package encounter

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/skyraid/ecs"
	"github.com/milk9111/skyraid/prefabs"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// StageHost is the scene side of the director: it populates a freshly
// loaded stage, places the exit portal and saves player progress.
type StageHost interface {
	Spawner
	SetupStage(index int, stage prefabs.StageSpec)
	SpawnPortal(nextStage int) (ecs.Entity, error)
	SaveProgress()
}

type DirectorState int

const (
	StateLoading DirectorState = iota
	StateAwaitingWaveCompletion
	StateStageComplete
	StateAllStagesComplete
	StateGameOver
)

func (s DirectorState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingWaveCompletion:
		return "awaiting_wave_completion"
	case StateStageComplete:
		return "stage_complete"
	case StateAllStagesComplete:
		return "all_stages_complete"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Director drives stage and wave progression: it loads a stage, runs its
// waves through the sequencer in order, ends the stage on the last wave or
// the boss's death, and opens a portal to the next stage.
type Director struct {
	stages      []prefabs.StageSpec
	current     prefabs.StageSpec
	seq         *Sequencer
	host        StageHost
	loader      SceneLoader
	events      *Dispatcher
	portalDelay float64

	state         DirectorState
	stageIndex    int
	waveIndex     int
	loadToken     int
	portalPending bool
	portalTimer   float64
	portal        ecs.Entity
}

func NewDirector(stages []prefabs.StageSpec, seq *Sequencer, host StageHost, loader SceneLoader, events *Dispatcher, portalDelay float64) *Director {
	if loader == nil {
		loader = InstantLoader{}
	}
	return &Director{
		stages:      stages,
		seq:         seq,
		host:        host,
		loader:      loader,
		events:      events,
		portalDelay: portalDelay,
		state:       StateLoading,
	}
}

// Start loads the stage at index. An index past the last stage is victory.
func (d *Director) Start(index int) {
	d.load(index)
}

// SetStages swaps the stage list. The running stage keeps its waves; the
// new list applies from the next stage load.
func (d *Director) SetStages(stages []prefabs.StageSpec) {
	d.stages = stages
}

func (d *Director) Stage(index int) (prefabs.StageSpec, error) {
	if index < 0 || index >= len(d.stages) {
		return prefabs.StageSpec{}, fmt.Errorf("stage %d of %d: %w", index, len(d.stages), ErrIndexOutOfRange)
	}
	return d.stages[index], nil
}

func (d *Director) load(index int) {
	stage, err := d.Stage(index)
	if err != nil {
		log.Printf("director: %v, treating run as won", err)
		d.victory()
		return
	}

	d.loadToken++
	token := d.loadToken
	d.state = StateLoading
	d.stageIndex = index
	d.portalPending = false
	d.portal = 0
	log.Printf("director: loading stage %d %q (scene %q)", index, stage.Name, stage.Scene)
	d.loader.LoadScene(stage.Scene, func() {
		if token != d.loadToken || d.state != StateLoading {
			return
		}
		d.enterStage(index, stage)
	})
}

func (d *Director) enterStage(index int, stage prefabs.StageSpec) {
	d.current = stage
	d.host.SetupStage(index, stage)
	d.seq.SetSpawnPoints(stage.SpawnPoints)
	d.state = StateAwaitingWaveCompletion
	d.events.Dispatch(Event{Kind: EventStageStarted, Stage: index, Name: stage.Name})
	d.startWave(0)
}

func (d *Director) startWave(i int) {
	if i < 0 || i >= len(d.current.Waves) {
		log.Printf("director: wave %d of %d in stage %d: %v, completing stage", i, len(d.current.Waves), d.stageIndex, ErrIndexOutOfRange)
		d.completeStage()
		return
	}
	d.waveIndex = i
	d.seq.Start(d.stageIndex, i, d.current.Waves[i])
}

// Update advances the running wave or the portal countdown.
func (d *Director) Update(dt float64) {
	switch d.state {
	case StateAwaitingWaveCompletion:
		if d.seq.Update(dt) {
			d.waveCompleted()
		}
	case StateStageComplete:
		if !d.portalPending {
			return
		}
		d.portalTimer -= dt
		if d.portalTimer > 0 {
			return
		}
		d.portalPending = false
		next := d.stageIndex + 1
		id, err := d.host.SpawnPortal(next)
		if err != nil {
			log.Printf("director: portal to stage %d: %v, loading it directly", next, err)
			d.host.SaveProgress()
			d.load(next)
			return
		}
		d.portal = id
		d.events.Dispatch(Event{Kind: EventPortalSpawned, Stage: d.stageIndex, Actor: id})
	}
}

func (d *Director) waveCompleted() {
	if d.state != StateAwaitingWaveCompletion {
		return
	}
	if d.waveIndex+1 < len(d.current.Waves) {
		d.startWave(d.waveIndex + 1)
		return
	}
	d.completeStage()
}

// ActorResolved reports an actor's terminal state. A boss resolution ends
// its wave and the stage outright.
func (d *Director) ActorResolved(id ecs.Entity, boss bool) {
	tracked := d.seq.Resolve(id)
	if !boss || !tracked || d.state != StateAwaitingWaveCompletion {
		return
	}
	d.events.Dispatch(Event{Kind: EventBossDefeated, Stage: d.stageIndex, Wave: d.waveIndex, Actor: id})
	d.seq.Conclude()
	d.completeStage()
}

func (d *Director) completeStage() {
	if d.state != StateAwaitingWaveCompletion {
		return
	}
	d.seq.Abort()
	d.state = StateStageComplete
	log.Printf("director: stage %d %q complete", d.stageIndex, d.current.Name)
	d.events.Dispatch(Event{Kind: EventStageCompleted, Stage: d.stageIndex, Name: d.current.Name})
	d.host.SaveProgress()

	if d.stageIndex+1 >= len(d.stages) {
		d.victory()
		return
	}
	d.portalPending = true
	d.portalTimer = d.portalDelay
}

// PortalEntered moves on to the next stage once the stage is complete and
// its portal is open.
func (d *Director) PortalEntered() {
	if d.state != StateStageComplete || d.portalPending || d.portal == 0 {
		return
	}
	d.host.SaveProgress()
	d.load(d.stageIndex + 1)
}

// GameOver stops the run. Later events are ignored.
func (d *Director) GameOver() {
	if d.state == StateGameOver || d.state == StateAllStagesComplete {
		return
	}
	d.seq.Abort()
	d.loadToken++
	d.portalPending = false
	d.state = StateGameOver
	log.Printf("director: game over at stage %d wave %d", d.stageIndex, d.waveIndex)
	d.events.Dispatch(Event{Kind: EventGameOver, Stage: d.stageIndex, Wave: d.waveIndex})
	d.host.SaveProgress()
}

func (d *Director) victory() {
	d.seq.Abort()
	d.portalPending = false
	d.state = StateAllStagesComplete
	log.Printf("director: all stages complete")
	d.events.Dispatch(Event{Kind: EventVictory, Stage: d.stageIndex})
	d.host.SaveProgress()
}

func (d *Director) State() DirectorState { return d.state }

func (d *Director) StageIndex() int { return d.stageIndex }

func (d *Director) WaveIndex() int { return d.waveIndex }

func (d *Director) StageCount() int { return len(d.stages) }

// Portal is the open exit portal, or zero.
func (d *Director) Portal() ecs.Entity { return d.portal }

// Current is the stage definition in play.
func (d *Director) Current() prefabs.StageSpec { return d.current }

func (d *Director) Sequencer() *Sequencer { return d.seq }
