package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// iComponentPool is a type-erased, unordered pool holding every component of one type.
type iComponentPool interface {
	Insert(id EntityId, item any) bool
	Remove(index uint32) bool
	Get(index uint32) any
	Has(index uint32) bool
	Len() int
	Owners() []EntityId
	Type() reflect.Type
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentPool
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentPool),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentPool {
		return newComponentPool[T](t)
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentPool {
	return r.factories[t]
}

const initialPoolCapacity = 64

// componentPool stores components of type T densely. Deletes swap the last
// element into the hole, so iteration order is not stable across deletes.
type componentPool[T any] struct {
	typ    reflect.Type
	dense  []T
	owners []EntityId
	slots  *intmap.Map[uint32, int]
}

func newComponentPool[T any](t reflect.Type) *componentPool[T] {
	return &componentPool[T]{
		typ:    t,
		dense:  make([]T, 0, initialPoolCapacity),
		owners: make([]EntityId, 0, initialPoolCapacity),
		slots:  intmap.New[uint32, int](initialPoolCapacity),
	}
}

// Insert stores item for the entity, replacing any existing component of this type.
func (p *componentPool[T]) Insert(id EntityId, item any) bool {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		if v == nil {
			return false
		}
		value = *v
	default:
		return false
	}

	if pos, ok := p.slots.Get(id.Index()); ok {
		p.dense[pos] = value
		p.owners[pos] = id
		return true
	}

	p.slots.Put(id.Index(), len(p.dense))
	p.dense = append(p.dense, value)
	p.owners = append(p.owners, id)
	return true
}

// Remove deletes the component owned by the slot index, if any.
func (p *componentPool[T]) Remove(index uint32) bool {
	pos, ok := p.slots.Get(index)
	if !ok {
		return false
	}

	last := len(p.dense) - 1
	if pos != last {
		p.dense[pos] = p.dense[last]
		p.owners[pos] = p.owners[last]
		p.slots.Put(p.owners[pos].Index(), pos)
	}

	var zero T
	p.dense[last] = zero
	p.dense = p.dense[:last]
	p.owners = p.owners[:last]
	p.slots.Del(index)
	return true
}

// Get returns a pointer to the component at the slot index, or nil.
func (p *componentPool[T]) Get(index uint32) any {
	pos, ok := p.slots.Get(index)
	if !ok {
		return nil
	}
	return &p.dense[pos]
}

func (p *componentPool[T]) Has(index uint32) bool {
	_, ok := p.slots.Get(index)
	return ok
}

func (p *componentPool[T]) Len() int {
	return len(p.dense)
}

func (p *componentPool[T]) Owners() []EntityId {
	return p.owners
}

func (p *componentPool[T]) Type() reflect.Type {
	return p.typ
}
