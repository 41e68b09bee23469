package ecs

// anyStore is the type-erased view the world keeps for each component kind.
type anyStore interface {
	remove(id entityID) bool
	has(id entityID) bool
	owners() []entityID
	size() int
}

// store is a sparse set of component pointers keyed by entity slot.
type store[T any] struct {
	dense  []entityID
	values []*T
	sparse map[entityID]int
}

func newStore[T any]() *store[T] {
	return &store[T]{sparse: make(map[entityID]int)}
}

func (s *store[T]) set(id entityID, v *T) {
	if idx, ok := s.sparse[id]; ok {
		s.values[idx] = v
		return
	}
	s.sparse[id] = len(s.dense)
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
}

func (s *store[T]) get(id entityID) (*T, bool) {
	idx, ok := s.sparse[id]
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *store[T]) has(id entityID) bool {
	_, ok := s.sparse[id]
	return ok
}

func (s *store[T]) remove(id entityID) bool {
	idx, ok := s.sparse[id]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	movedID := s.dense[last]
	s.dense[idx] = movedID
	s.values[idx] = s.values[last]
	s.sparse[movedID] = idx
	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	delete(s.sparse, id)
	return true
}

// owners returns a copy so callers may mutate the store while iterating.
func (s *store[T]) owners() []entityID {
	out := make([]entityID, len(s.dense))
	copy(out, s.dense)
	return out
}

func (s *store[T]) size() int {
	return len(s.dense)
}
