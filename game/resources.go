package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/plus3/starfall/ecs"
	"golang.org/x/image/math/f64"
)

type Mode int

const (
	ModeTitle Mode = iota
	ModeRunning
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeTitle:
		return "title"
	case ModeRunning:
		return "running"
	case ModeGameOver:
		return "game over"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// NoCharacter marks that no character has been picked.
const NoCharacter = -1

type Session struct {
	Mode      Mode
	Score     int
	GradientT float64
	Elapsed   time.Duration
	Character int
}

func (s Session) Running() bool {
	return s.Mode == ModeRunning
}

type Player struct {
	Pos   f64.Vec2
	Size  float64
	Speed float64
	Lives int

	Shield     bool
	ShieldLeft time.Duration

	// Boosting is the effective boost state of the last movement step.
	Boosting  bool
	PulseLeft time.Duration
}

type Arena struct {
	W, H float64
}

// Input is the held control state for the current frame.
type Input struct {
	Left, Right, Up, Down bool
	Boost                 bool
}

// SpawnTimers accumulate simulation time toward the next spawn of each kind.
type SpawnTimers struct {
	Bomb, Star, Shield time.Duration
}

func (t *SpawnTimers) Clear() {
	*t = SpawnTimers{}
}

type HUD struct {
	Score  string
	Lives  string
	Status string
	Final  string
}

// Random is the world's random source. It is seeded, so a given seed and
// input sequence always replays the same game.
type Random struct {
	*rand.Rand
}

func NewRandom(seed uint64) Random {
	return Random{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Range returns a float in [lo, hi).
func (r Random) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Destroyed holds the entities consumed by a collision during the current
// frame. Their deletes are queued, so later systems must skip them.
type Destroyed struct {
	ids map[ecs.EntityId]struct{}
}

func (d *Destroyed) Mark(id ecs.EntityId) {
	if d.ids == nil {
		d.ids = make(map[ecs.EntityId]struct{})
	}
	d.ids[id] = struct{}{}
}

func (d *Destroyed) Has(id ecs.EntityId) bool {
	_, ok := d.ids[id]
	return ok
}

func (d *Destroyed) Clear() {
	clear(d.ids)
}

func (d *Destroyed) Len() int {
	return len(d.ids)
}
