// Package game is the simulation: an ECS world holding the player, the
// falling entities and the session, advanced one frame at a time by Step.
// It has no rendering or input dependencies, so it runs headless.
package game

import (
	"fmt"
	"iter"
	"log"

	"github.com/plus3/starfall/ecs"
	"golang.org/x/image/math/f64"
)

// World owns the storage and the scheduler. It is not safe for concurrent
// use; a single goroutine drives it.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	session   *ecs.Singleton[Session]
	player    *ecs.Singleton[Player]
	arena     *ecs.Singleton[Arena]
	input     *ecs.Singleton[Input]
	timers    *ecs.Singleton[SpawnTimers]
	events    *ecs.Singleton[Events]
	hud       *ecs.Singleton[HUD]
	tuning    *ecs.Singleton[Tuning]
	destroyed *ecs.Singleton[Destroyed]

	bullets *ecs.View[bulletItem]
	bombs   *ecs.View[bombItem]
	stars   *ecs.View[starItem]
	pickups *ecs.View[pickupItem]
}

// NewRegistry registers every component type of the simulation.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Fall](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Bomb](registry)
	ecs.RegisterComponent[Star](registry)
	ecs.RegisterComponent[ShieldPickup](registry)
	return registry
}

// NewWorld builds a world on the title screen with systems registered in frame order.
func NewWorld(tuning Tuning, arena Arena, seed uint64) *World {
	storage := ecs.NewStorage(NewRegistry())

	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),

		session:   ecs.NewSingleton(storage, Session{Character: NoCharacter}),
		player:    ecs.NewSingleton[Player](storage),
		arena:     ecs.NewSingleton(storage, arena),
		input:     ecs.NewSingleton[Input](storage),
		timers:    ecs.NewSingleton[SpawnTimers](storage),
		events:    ecs.NewSingleton[Events](storage),
		hud:       ecs.NewSingleton[HUD](storage),
		tuning:    ecs.NewSingleton(storage, tuning),
		destroyed: ecs.NewSingleton[Destroyed](storage),

		bullets: ecs.NewView[bulletItem](storage),
		bombs:   ecs.NewView[bombItem](storage),
		stars:   ecs.NewView[starItem](storage),
		pickups: ecs.NewView[pickupItem](storage),
	}
	ecs.NewSingleton(storage, NewRandom(seed))

	w.resetPlayer()
	w.refreshHUD()

	w.Scheduler.Register(&ClearDestroyedSystem{})
	w.Scheduler.Register(&BackgroundSystem{})
	w.Scheduler.Register(&ShieldSystem{})
	w.Scheduler.Register(&PlayerSystem{})
	w.Scheduler.Register(&SpawnSystem{})
	w.Scheduler.Register(&FallSystem{})
	w.Scheduler.Register(&BulletHitSystem{})
	w.Scheduler.Register(&PlayerHitSystem{})
	w.Scheduler.Register(&CullSystem{})
	w.Scheduler.Register(&HUDSystem{})

	return w
}

func (w *World) resetPlayer() {
	t := w.tuning.Get()
	a := w.arena.Get()
	w.player.Set(Player{
		Pos:   f64.Vec2{a.W / 2, a.H - t.StartOffset},
		Size:  t.PlayerSize,
		Speed: t.PlayerSpeed,
		Lives: t.Lives,
	})
}

func (w *World) refreshHUD() {
	hud := w.hud.Get()
	hud.Score = fmt.Sprintf("Stars: %d", w.session.Get().Score)
	hud.Lives = fmt.Sprintf("Lives: %d", w.player.Get().Lives)
}

func (w *World) clearEntities() {
	var ids []ecs.EntityId
	for id := range w.Storage.Entities() {
		ids = append(ids, id)
	}
	for _, id := range ids {
		w.Storage.Delete(id)
	}
}

// Start begins a new game with the chosen character: the player is reset,
// every falling entity and bullet is removed and the spawn timers restart.
func (w *World) Start(character int) {
	w.resetPlayer()
	w.clearEntities()
	w.timers.Get().Clear()
	w.destroyed.Get().Clear()
	w.input.Set(Input{})

	session := w.session.Get()
	session.Mode = ModeRunning
	session.Score = 0
	session.Elapsed = 0
	session.Character = character

	hud := w.hud.Get()
	hud.Status = ""
	hud.Final = ""
	w.refreshHUD()

	w.events.Get().Emit(EventStarted, 0)
	log.Printf("game: started with character %d", character)
}

// Shoot fires a bullet from the top of the player. It does nothing unless a game is running.
func (w *World) Shoot() bool {
	session := w.session.Get()
	if !session.Running() {
		return false
	}
	player := w.player.Get()
	pos := f64.Vec2{player.Pos[0], player.Pos[1] - player.Size/2}
	w.Storage.Spawn(bulletComponents(pos, w.tuning.Get())...)
	w.events.Get().Emit(EventShot, session.Score)
	return true
}

// PulseBoost boosts the player for the configured pulse duration.
func (w *World) PulseBoost() {
	w.player.Get().PulseLeft = w.tuning.Get().BoostPulse
}

// SetInput replaces the held control state used by the next Step.
func (w *World) SetInput(in Input) {
	w.input.Set(in)
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Reset leaves the current game and returns to character selection.
func (w *World) Reset() {
	session := w.session.Get()
	session.Mode = ModeTitle
	session.Score = 0
	session.Character = NoCharacter
	w.timers.Get().Clear()
	w.resetPlayer()

	hud := w.hud.Get()
	hud.Status = ""
	hud.Final = ""
	w.refreshHUD()
}

// Resize updates the arena. Outside a running game the player is re-centred.
func (w *World) Resize(width, height float64) {
	a := w.arena.Get()
	if a.W == width && a.H == height {
		return
	}
	a.W, a.H = width, height

	if w.session.Get().Running() {
		return
	}
	t := w.tuning.Get()
	w.player.Get().Pos = f64.Vec2{width / 2, height - t.StartOffset}
}

// DrainEvents returns and clears the queued events.
func (w *World) DrainEvents() []Event {
	events := w.events.Get()
	out := events.Queue
	events.Queue = nil
	return out
}

func (w *World) Session() Session { return *w.session.Get() }
func (w *World) Player() Player   { return *w.player.Get() }
func (w *World) Arena() Arena     { return *w.arena.Get() }
func (w *World) HUD() HUD         { return *w.hud.Get() }
func (w *World) Tuning() Tuning   { return *w.tuning.Get() }
func (w *World) Input() Input     { return *w.input.Get() }

func bodies[T any](view *ecs.View[T], body func(T) *Body) iter.Seq[Body] {
	return func(yield func(Body) bool) {
		for item := range view.Iter() {
			if !yield(*body(item)) {
				return
			}
		}
	}
}

func (w *World) Bullets() iter.Seq[Body] {
	return bodies(w.bullets, func(i bulletItem) *Body { return i.Body })
}

func (w *World) Bombs() iter.Seq[Body] {
	return bodies(w.bombs, func(i bombItem) *Body { return i.Body })
}

func (w *World) Stars() iter.Seq[Body] {
	return bodies(w.stars, func(i starItem) *Body { return i.Body })
}

func (w *World) ShieldPickups() iter.Seq[Body] {
	return bodies(w.pickups, func(i pickupItem) *Body { return i.Body })
}

// Counts returns the number of bullets, bombs, stars and shield pickups.
func (w *World) Counts() (bullets, bombs, stars, pickups int) {
	return ecs.CountOf[Bullet](w.Storage), ecs.CountOf[Bomb](w.Storage),
		ecs.CountOf[Star](w.Storage), ecs.CountOf[ShieldPickup](w.Storage)
}
