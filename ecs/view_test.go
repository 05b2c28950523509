package ecs_test

import (
	"testing"

	"github.com/plus3/starfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	ecs.EntityId
	*Position
	*Velocity
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	still := storage.Spawn(Position{X: 3})

	view := ecs.NewView[movingView](storage)

	item := view.Get(moving)
	require.NotNil(t, item)
	assert.Equal(t, moving, item.EntityId)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Velocity.DX)

	assert.Nil(t, view.Get(still), "missing required component")

	storage.Delete(moving)
	assert.Nil(t, view.Get(moving), "dead entity")
}

func TestViewOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Health{Current: 5})
	b := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	itemA := view.Get(a)
	require.NotNil(t, itemA)
	require.NotNil(t, itemA.Health)
	assert.Equal(t, 5, itemA.Health.Current)

	itemB := view.Get(b)
	require.NotNil(t, itemB)
	assert.Nil(t, itemB.Health)

	assert.Equal(t, 2, view.Count())
}

func TestViewOptionalPoolNeverCreated(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct {
		*Position
		Frozen *Frozen `ecs:"optional"`
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Nil(t, item.Frozen)
}

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 1})
	storage.Spawn(Position{X: 3})
	storage.Spawn(Velocity{DX: 9})

	view := ecs.NewView[movingView](storage)

	sum := float32(0)
	for item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		sum += item.Position.X
	}
	assert.Equal(t, float32(5), sum)
	assert.Equal(t, 2, view.Count())

	sum = 0
	for item := range view.Iter() {
		sum += item.Position.X
	}
	assert.Equal(t, float32(5), sum, "writes through view pointers persist")
}

func TestViewIterDeleteDuringIteration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	for i := range 10 {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}

	view := ecs.NewView[movingView](storage)

	visited := 0
	for item := range view.Iter() {
		visited++
		storage.Delete(item.EntityId)
	}

	assert.Equal(t, 10, visited)
	assert.Equal(t, 0, storage.Len())
	assert.Equal(t, 0, view.Count())
}

func TestViewIterNoPool(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[movingView](storage)

	for range view.Iter() {
		t.Fatal("no entity should match")
	}
	assert.Equal(t, 0, view.Count())
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[int](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Health *Health `ecs:"optional"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Health *Health `ecs:"sometimes"`
		}](storage)
	})
}
