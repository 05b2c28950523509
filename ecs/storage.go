package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry    *ComponentRegistry
	pools       map[reflect.Type]iComponentPool
	generations []uint32
	free        []bool
	freeSlots   []uint32
	alive       int
	singletons  map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		pools:      make(map[reflect.Type]iComponentPool),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	pools := make([]iComponentPool, len(components))
	for i, comp := range components {
		pools[i] = s.poolFor(componentType(comp))
	}

	id := s.allocate()
	for i, comp := range components {
		pools[i].Insert(id, comp)
	}
	return id
}

func (s *Storage) allocate() EntityId {
	s.alive++

	if n := len(s.freeSlots); n > 0 {
		index := s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
		s.free[index] = false
		return NewEntityId(s.generations[index], index)
	}

	index := uint32(len(s.generations))
	s.generations = append(s.generations, 1)
	s.free = append(s.free, false)
	return NewEntityId(1, index)
}

// Delete removes all data related to the entity ID.
// Deleting a dead or stale id is a no-op and returns false.
func (s *Storage) Delete(id EntityId) bool {
	if !s.Alive(id) {
		return false
	}

	index := id.Index()
	for _, pool := range s.pools {
		pool.Remove(index)
	}

	gen := s.generations[index] + 1
	if gen == 0 {
		gen = 1
	}
	s.generations[index] = gen
	s.free[index] = true
	s.freeSlots = append(s.freeSlots, index)
	s.alive--
	return true
}

// Alive reports whether the id refers to a live entity
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	if id.Generation() == 0 || int(index) >= len(s.generations) {
		return false
	}
	return s.generations[index] == id.Generation()
}

// Entities returns an iterator over every live entity, in slot order
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index, gen := range s.generations {
			if s.free[index] {
				continue
			}
			if !yield(NewEntityId(gen, uint32(index))) {
				return
			}
		}
	}
}

// ComponentTypes lists the component types attached to a live entity, sorted by name
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}
	var types []reflect.Type
	for t, pool := range s.pools {
		if pool.Has(id.Index()) {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Len returns the number of live entities
func (s *Storage) Len() int {
	return s.alive
}

// AddComponent attaches (or replaces) a component on a live entity
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if !s.Alive(id) {
		return false
	}
	return s.poolFor(componentType(component)).Insert(id, component)
}

// RemoveComponent detaches a component type from a live entity.
// An entity left without components stays alive until deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	pool, ok := s.pools[compType]
	if !ok {
		return false
	}
	return pool.Remove(id.Index())
}

// GetComponent returns a pointer to the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	pool, ok := s.pools[compType]
	if !ok {
		return nil
	}
	return pool.Get(id.Index())
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	pool, ok := s.pools[compType]
	return ok && pool.Has(id.Index())
}

// Count returns how many live entities carry the component type
func (s *Storage) Count(compType reflect.Type) int {
	pool, ok := s.pools[compType]
	if !ok {
		return 0
	}
	return pool.Len()
}

// CountOf is the generic form of Count
func CountOf[T any](s *Storage) int {
	return s.Count(reflect.TypeFor[T]())
}

func (s *Storage) poolFor(t reflect.Type) iComponentPool {
	if pool, ok := s.pools[t]; ok {
		return pool
	}
	factory := s.registry.getFactory(t)
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	pool := factory()
	s.pools[t] = pool
	return pool
}

// componentType resolves the stored type of a component value.
// Pointers are dereferenced; maps, channels and functions are rejected.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("cannot use nil as a component")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// AddSingleton stores value as the singleton of its type. Replacing an
// existing singleton copies into the same memory, so Singleton handles
// already bound to it see the new value.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)

	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton fills target, which must be a **T, with the stored singleton.
// Returns false if no singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(tv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	tv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's component, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// StorageStats summarizes the contents of a Storage
type StorageStats struct {
	TotalEntityCount int
	PoolCount        int
	SingletonCount   int
	PoolBreakdown    []PoolStats
	SingletonTypes   []string
}

// PoolStats describes a single component pool
type PoolStats struct {
	ComponentType string
	EntityCount   int
}

// CollectStats gathers entity, pool and singleton counts, sorted by type name
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.alive,
		PoolCount:        len(s.pools),
		SingletonCount:   len(s.singletons),
		PoolBreakdown:    make([]PoolStats, 0, len(s.pools)),
		SingletonTypes:   make([]string, 0, len(s.singletons)),
	}

	for t, pool := range s.pools {
		stats.PoolBreakdown = append(stats.PoolBreakdown, PoolStats{
			ComponentType: t.String(),
			EntityCount:   pool.Len(),
		})
	}
	sort.Slice(stats.PoolBreakdown, func(i, j int) bool {
		return stats.PoolBreakdown[i].ComponentType < stats.PoolBreakdown[j].ComponentType
	})

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
