package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type,
// optionally embedding an EntityId that is filled with the entity's id.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	hasId    bool
	idOffset uintptr
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required; at least one component must be required.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	required := 0

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}
		if !isOptional {
			required++
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	if required == 0 {
		panic("View requires at least one non-optional component")
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is dead or missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}

	structPtr := unsafe.Pointer(ptr)
	index := id.Index()

	for i, componentType := range v.types {
		var component any
		if pool, ok := v.storage.pools[componentType]; ok {
			component = pool.Get(index)
		}

		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = reflect.ValueOf(component).UnsafePointer()
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = id
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// drivingOwners returns the owners of the smallest required pool, or nil when
// a required pool has never been created (no entity can match).
func (v *View[T]) drivingOwners() []EntityId {
	var smallest iComponentPool
	for i, t := range v.types {
		if v.optional[i] {
			continue
		}
		pool, ok := v.storage.pools[t]
		if !ok {
			return nil
		}
		if smallest == nil || pool.Len() < smallest.Len() {
			smallest = pool
		}
	}
	if smallest == nil {
		return nil
	}
	return smallest.Owners()
}

// Iter returns an iterator over every entity that has all the required components.
// It walks a snapshot of the matching ids, so deleting entities while iterating is safe.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		var result T
		for _, id := range slices.Clone(v.drivingOwners()) {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

// Ids returns an iterator over the ids of matching entities
func (v *View[T]) Ids() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		var result T
		for _, id := range slices.Clone(v.drivingOwners()) {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Count returns the number of matching entities
func (v *View[T]) Count() int {
	n := 0
	for range v.Ids() {
		n++
	}
	return n
}
