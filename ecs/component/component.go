package component

import (
	"errors"
	"reflect"
	"strings"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("entity not alive")
	ErrNilComponent         = errors.New("component is nil")
	ErrInvalidComponentKind = errors.New("invalid component kind")
)

// ComponentID keys a component store inside a world. Zero is never issued.
type ComponentID uint32

var lastID atomic.Uint32

// ComponentKind is a typed, named key for one component store. The name is
// the Go type name without its package, e.g. "Transform".
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

// NewComponentKind issues a fresh kind for T. Two kinds for the same type
// address separate stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{
		id:   ComponentID(lastID.Add(1)),
		name: typeName(reflect.TypeFor[T]()),
	}
}

func typeName(t reflect.Type) string {
	s := t.String()
	if i := strings.LastIndex(s, "."); i >= 0 && !strings.ContainsAny(s[i:], "[]*") {
		return s[i+1:]
	}
	return s
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) Name() string { return k.name }

func (k ComponentKind[T]) String() string {
	if !k.Valid() {
		return "unregistered"
	}
	return k.name
}

// ComponentHandle is what each component file registers at package level:
//
//	var TTLComponent = NewComponent[TTL]()
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
