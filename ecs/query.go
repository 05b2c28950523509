package ecs

import (
	"iter"
)

// Query wraps a View with a per-frame cache of the matching entities.
// The Scheduler invalidates every query of a system before running it,
// so a system always sees the entities alive at the start of its turn.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query bound to the storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	var item T
	for _, id := range q.view.drivingOwners() {
		if !q.view.Fill(id, &item) {
			continue
		}
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

// Invalidate marks the cache stale; the next read rebuilds it.
func (q *Query[T]) Invalidate() {
	q.cacheValid = false
}

func (q *Query[T]) ensure() {
	if q.view == nil {
		panic("Query used before Init")
	}
	if !q.cacheValid {
		q.Execute()
	}
}

// Iter returns an iterator over the cached component data.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.ensure()
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Entities returns an iterator over entity IDs and component data.
func (q *Query[T]) Entities() iter.Seq2[EntityId, T] {
	q.ensure()
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of cached matches.
func (q *Query[T]) Len() int {
	q.ensure()
	return len(q.cachedEntities)
}
