package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle on global state that belongs to no entity:
// the arena, the session, tuning values. The handle caches the address of
// the stored value, which stays fixed for the lifetime of the storage.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle on the T singleton of storage, adding it
// first (from initializer, or the zero value) when it is missing.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. The Scheduler calls it for every
// Singleton field of a registered system.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.lookup()
}

// Get returns the stored value, or nil while no T singleton exists.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil && !s.lookup() {
		return nil
	}
	return (*T)(s.ptr)
}

// Set overwrites the stored value, adding it if needed.
func (s *Singleton[T]) Set(value T) {
	if p := s.Get(); p != nil {
		*p = value
		return
	}
	s.storage.AddSingleton(value)
	s.lookup()
}

// Exists reports whether the T singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) lookup() bool {
	if s.storage == nil {
		return false
	}
	entry := s.storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return false
	}
	s.ptr = entry.dataPtr
	return true
}
