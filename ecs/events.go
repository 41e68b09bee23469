package ecs

import "github.com/milk9111/skyraid/common"

// EventKind names a gameplay event raised by a system.
type EventKind string

const (
	// EventActorDestroyed fires once when an actor enters its dying state.
	EventActorDestroyed EventKind = "actor_destroyed"
	// EventActorRemoved fires when a dying actor's entity is destroyed.
	EventActorRemoved  EventKind = "actor_removed"
	EventEnemyHit      EventKind = "enemy_hit"
	EventPlayerHit     EventKind = "player_hit"
	EventPlayerDied    EventKind = "player_died"
	EventPickup        EventKind = "pickup"
	EventPortalEntered EventKind = "portal_entered"
	EventSpecialFired  EventKind = "special_fired"
	EventBossEnraged   EventKind = "boss_enraged"
)

// Event is a queued gameplay notification.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// Destroyed is the payload of EventActorDestroyed.
type Destroyed struct {
	Killed     bool
	Boss       bool
	Position   common.Vec2
	ScoreValue int
}

// Hit is the payload of EventEnemyHit and EventPlayerHit.
type Hit struct {
	Damage int
}

// Collected is the payload of EventPickup.
type Collected struct {
	Kind   string
	Amount float64
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is shorthand for w.Events().Push.
func Emit(w *World, kind EventKind, e Entity, data any) {
	w.Events().Push(Event{Kind: kind, Entity: e, Data: data})
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
