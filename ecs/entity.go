package ecs

import "strconv"

// Entity packs a slot id in the low 32 bits and a generation in the high
// 32 bits. Zero is never a live entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10) + "#" + strconv.FormatUint(uint64(e.id()), 10)
}

func (e Entity) Valid() bool {
	return e.id() != 0
}

// entityTable hands out ids, recycling destroyed slots with a bumped
// generation so stale handles stop resolving.
type entityTable struct {
	gens  []generation
	alive []bool
	free  []entityID
	live  []Entity
	index map[entityID]int
}

func (t *entityTable) create() Entity {
	if t.index == nil {
		t.index = make(map[entityID]int)
		// slot 0 is reserved so the zero Entity is never valid
		t.gens = append(t.gens, 0)
		t.alive = append(t.alive, false)
	}

	var id entityID
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		id = entityID(len(t.gens))
		t.gens = append(t.gens, 1)
		t.alive = append(t.alive, false)
	}

	t.alive[id] = true
	e := makeEntity(id, t.gens[id])
	t.index[id] = len(t.live)
	t.live = append(t.live, e)
	return e
}

func (t *entityTable) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(t.gens) {
		return false
	}
	return t.alive[id] && t.gens[id] == e.generation()
}

func (t *entityTable) destroy(e Entity) bool {
	if !t.isAlive(e) {
		return false
	}
	id := e.id()
	t.alive[id] = false
	t.gens[id]++
	t.free = append(t.free, id)

	idx := t.index[id]
	last := len(t.live) - 1
	moved := t.live[last]
	t.live[idx] = moved
	t.index[moved.id()] = idx
	t.live = t.live[:last]
	delete(t.index, id)
	return true
}
