package ecs

import "github.com/milk9111/skyraid/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, and the per-tick clock.
type World struct {
	entities entityTable
	stores   map[component.ComponentID]anyStore
	events   EventQueue

	delta   float64
	elapsed float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]anyStore)}
}

// Advance sets the step length for the systems about to run.
func (w *World) Advance(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.elapsed += dt
}

// Delta is the length of the current step in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

// Elapsed is the simulated time since the world was created.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// entityFor rebuilds the live handle for a slot id.
func (w *World) entityFor(id entityID) (Entity, bool) {
	if int(id) >= len(w.entities.gens) || !w.entities.alive[id] {
		return 0, false
	}
	return makeEntity(id, w.entities.gens[id]), true
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes e and every component attached to it. It reports
// false when e was already gone.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns a snapshot of every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, len(w.entities.live))
	copy(out, w.entities.live)
	return out
}

// Clear destroys every entity.
func Clear(w *World) {
	for _, e := range Entities(w) {
		DestroyEntity(w, e)
	}
}

// RunSystems runs each system once in order.
func RunSystems(w *World, systems ...System) {
	if w == nil {
		return
	}
	for _, s := range systems {
		if s != nil {
			s.Update(w)
		}
	}
}
