package encounter

import "github.com/milk9111/skyraid/ecs"

type EventKind string

const (
	EventStageStarted   EventKind = "stage_started"
	EventWaveStarted    EventKind = "wave_started"
	EventWaveCompleted  EventKind = "wave_completed"
	EventBossSpawned    EventKind = "boss_spawned"
	EventBossDefeated   EventKind = "boss_defeated"
	EventStageCompleted EventKind = "stage_completed"
	EventPortalSpawned  EventKind = "portal_spawned"
	EventVictory        EventKind = "victory"
	EventGameOver       EventKind = "game_over"
)

// Event describes an encounter milestone. Stage and Wave are zero-based.
type Event struct {
	Kind  EventKind
	Stage int
	Wave  int
	Name  string
	Actor ecs.Entity
}

// Dispatcher fans encounter events out to subscribers in subscription
// order. Kind-specific subscribers run before catch-all ones.
type Dispatcher struct {
	subs map[EventKind][]func(Event)
	all  []func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[EventKind][]func(Event))}
}

func (d *Dispatcher) Subscribe(kind EventKind, fn func(Event)) {
	if d == nil || fn == nil {
		return
	}
	d.subs[kind] = append(d.subs[kind], fn)
}

// SubscribeAll registers fn for every event kind.
func (d *Dispatcher) SubscribeAll(fn func(Event)) {
	if d == nil || fn == nil {
		return
	}
	d.all = append(d.all, fn)
}

func (d *Dispatcher) Dispatch(evt Event) {
	if d == nil {
		return
	}
	for _, fn := range d.subs[evt.Kind] {
		fn(evt)
	}
	for _, fn := range d.all {
		fn(evt)
	}
}
