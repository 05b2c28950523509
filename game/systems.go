package game

import (
	"fmt"
	"math"
	"time"

	"github.com/plus3/starfall/ecs"
	"golang.org/x/image/math/f64"
)

type bodyItem struct {
	ecs.EntityId
	*Body
	*Fall
}

type bulletItem struct {
	ecs.EntityId
	*Body
	*Bullet
}

type bombItem struct {
	ecs.EntityId
	*Body
	*Bomb
}

type starItem struct {
	ecs.EntityId
	*Body
	*Star
}

type pickupItem struct {
	ecs.EntityId
	*Body
	*ShieldPickup
}

// ticks converts a delta in seconds to 1/60 s frames.
func ticks(dt float64) float64 {
	return dt * FrameRate
}

func seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}

// endGame stops the session. Timers are cleared so nothing else spawns.
func endGame(session *Session, timers *SpawnTimers, hud *HUD, events *Events) {
	session.Mode = ModeGameOver
	timers.Clear()
	hud.Final = fmt.Sprintf("You collected %d stars.", session.Score)
	events.Emit(EventGameOver, session.Score)
}

type ClearDestroyedSystem struct {
	Destroyed ecs.Singleton[Destroyed]
}

func (s *ClearDestroyedSystem) Execute(frame *ecs.UpdateFrame) {
	s.Destroyed.Get().Clear()
}

// BackgroundSystem advances the background colour animation and the session clock.
type BackgroundSystem struct {
	Session ecs.Singleton[Session]
}

func (s *BackgroundSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.GradientT += GradientStep * ticks(frame.DeltaTime)
	if session.Running() {
		session.Elapsed += seconds(frame.DeltaTime)
	}
}

// ShieldSystem counts down the shield and the boost pulse.
type ShieldSystem struct {
	Session ecs.Singleton[Session]
	Player  ecs.Singleton[Player]
	HUD     ecs.Singleton[HUD]
	Events  ecs.Singleton[Events]
}

func (s *ShieldSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}
	player := s.Player.Get()
	dt := seconds(frame.DeltaTime)

	if player.PulseLeft > 0 {
		player.PulseLeft = max(player.PulseLeft-dt, 0)
	}

	if !player.Shield {
		return
	}
	player.ShieldLeft -= dt
	if player.ShieldLeft <= 0 {
		player.Shield = false
		player.ShieldLeft = 0
		s.HUD.Get().Status = ""
		s.Events.Get().Emit(EventShieldDown, session.Score)
	}
}

// PlayerSystem moves the player from the input state and keeps it inside the arena.
type PlayerSystem struct {
	Session ecs.Singleton[Session]
	Player  ecs.Singleton[Player]
	Input   ecs.Singleton[Input]
	Arena   ecs.Singleton[Arena]
	Tuning  ecs.Singleton[Tuning]
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Session.Get().Running() {
		return
	}
	player := s.Player.Get()
	input := s.Input.Get()

	player.Boosting = input.Boost || player.PulseLeft > 0
	speed := player.Speed
	if player.Boosting {
		speed *= s.Tuning.Get().BoostFactor
	}
	step := speed * ticks(frame.DeltaTime)

	if input.Left {
		player.Pos[0] -= step
	}
	if input.Right {
		player.Pos[0] += step
	}
	if input.Up {
		player.Pos[1] -= step
	}
	if input.Down {
		player.Pos[1] += step
	}

	player.Pos = ClampPlayer(player.Pos, player.Size, *s.Arena.Get())
}

// ClampPlayer keeps a player of the given size fully inside the arena. When
// the arena is smaller than the player the position is centred.
func ClampPlayer(pos f64.Vec2, size float64, arena Arena) f64.Vec2 {
	half := size / 2
	return f64.Vec2{
		clampAxis(pos[0], half, arena.W-half),
		clampAxis(pos[1], half, arena.H-half),
	}
}

func clampAxis(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// SpawnSystem fires the periodic spawns. Each timer accumulates simulation
// time and may fire more than once for a long frame.
type SpawnSystem struct {
	Session ecs.Singleton[Session]
	Timers  ecs.Singleton[SpawnTimers]
	Arena   ecs.Singleton[Arena]
	Tuning  ecs.Singleton[Tuning]
	Random  ecs.Singleton[Random]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Session.Get().Running() {
		return
	}
	timers := s.Timers.Get()
	tuning := s.Tuning.Get()
	dt := seconds(frame.DeltaTime)

	s.tick(frame, &timers.Bomb, dt, tuning.Bomb, Bomb{})
	s.tick(frame, &timers.Star, dt, tuning.Star, Star{})
	s.tick(frame, &timers.Shield, dt, tuning.ShieldPickup, ShieldPickup{})
}

func (s *SpawnSystem) tick(frame *ecs.UpdateFrame, timer *time.Duration, dt time.Duration, rule Spawner, tag any) {
	if rule.Interval <= 0 {
		return
	}
	*timer += dt
	for *timer >= rule.Interval {
		*timer -= rule.Interval

		rng := s.Random.Get()
		if rule.Chance < 1 && rng.Float64() >= rule.Chance {
			continue
		}
		x := spawnX(rng, s.Arena.Get().W, rule.Margin)
		speed := rng.Range(rule.MinSpeed, rule.MaxSpeed)
		frame.Commands.Spawn(fallingComponents(x, speed, rule, tag)...)
	}
}

// spawnX picks x in [margin, w-margin), or the centre when the arena is too narrow.
func spawnX(rng *Random, w, margin float64) float64 {
	if w-2*margin <= 0 {
		return w / 2
	}
	return rng.Range(margin, w-margin)
}

// FallSystem advances every moving body.
type FallSystem struct {
	Session ecs.Singleton[Session]
	Bodies  ecs.Query[bodyItem]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Session.Get().Running() {
		return
	}
	n := ticks(frame.DeltaTime)
	for item := range s.Bodies.Iter() {
		item.Body.Pos[1] += item.Fall.Speed * n
	}
}

// BulletHitSystem destroys a bomb and the first bullet touching it. No points are awarded.
type BulletHitSystem struct {
	Session   ecs.Singleton[Session]
	Destroyed ecs.Singleton[Destroyed]
	Events    ecs.Singleton[Events]
	Bombs     ecs.Query[bombItem]
	Bullets   ecs.Query[bulletItem]
}

func (s *BulletHitSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}
	destroyed := s.Destroyed.Get()

	for bomb := range s.Bombs.Iter() {
		for bullet := range s.Bullets.Iter() {
			if destroyed.Has(bullet.EntityId) {
				continue
			}
			if !Collides(bomb.Body.Pos, bomb.Body.Radius, bullet.Body.Pos, bullet.Body.Radius) {
				continue
			}
			destroyed.Mark(bomb.EntityId)
			destroyed.Mark(bullet.EntityId)
			frame.Commands.Delete(bomb.EntityId)
			frame.Commands.Delete(bullet.EntityId)
			s.Events.Get().Emit(EventBombDestroyed, session.Score)
			break
		}
	}
}

// PlayerHitSystem resolves player collisions: bombs cost a life unless the
// shield is up, stars score a point, shield pickups raise the shield.
type PlayerHitSystem struct {
	Session   ecs.Singleton[Session]
	Player    ecs.Singleton[Player]
	Timers    ecs.Singleton[SpawnTimers]
	Tuning    ecs.Singleton[Tuning]
	HUD       ecs.Singleton[HUD]
	Events    ecs.Singleton[Events]
	Destroyed ecs.Singleton[Destroyed]
	Bombs     ecs.Query[bombItem]
	Stars     ecs.Query[starItem]
	Pickups   ecs.Query[pickupItem]
}

func (s *PlayerHitSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if !session.Running() {
		return
	}
	player := s.Player.Get()
	tuning := s.Tuning.Get()
	events := s.Events.Get()
	destroyed := s.Destroyed.Get()
	hitRadius := player.Size * tuning.HitRadiusFactor

	consume := func(id ecs.EntityId, body *Body) bool {
		if destroyed.Has(id) || !Collides(body.Pos, body.Radius, player.Pos, hitRadius) {
			return false
		}
		destroyed.Mark(id)
		frame.Commands.Delete(id)
		return true
	}

	for bomb := range s.Bombs.Iter() {
		if !consume(bomb.EntityId, bomb.Body) {
			continue
		}
		if player.Shield {
			events.Emit(EventShieldBlocked, session.Score)
			continue
		}
		player.Lives = max(player.Lives-1, 0)
		events.Emit(EventBombHit, session.Score)
		if player.Lives == 0 {
			endGame(session, s.Timers.Get(), s.HUD.Get(), events)
			return
		}
	}

	for star := range s.Stars.Iter() {
		if consume(star.EntityId, star.Body) {
			session.Score++
			events.Emit(EventStarCollected, session.Score)
		}
	}

	for pickup := range s.Pickups.Iter() {
		if consume(pickup.EntityId, pickup.Body) {
			player.Shield = true
			player.ShieldLeft = tuning.ShieldDuration
			s.HUD.Get().Status = "Shield ON"
			events.Emit(EventShieldUp, session.Score)
		}
	}
}

// CullSystem removes entities that left the visible area.
type CullSystem struct {
	Session   ecs.Singleton[Session]
	Arena     ecs.Singleton[Arena]
	Tuning    ecs.Singleton[Tuning]
	Destroyed ecs.Singleton[Destroyed]
	Bullets   ecs.Query[bulletItem]
	Bombs     ecs.Query[bombItem]
	Stars     ecs.Query[starItem]
	Pickups   ecs.Query[pickupItem]
}

func (s *CullSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Session.Get().Running() {
		return
	}
	h := s.Arena.Get().H
	destroyed := s.Destroyed.Get()

	cull := func(id ecs.EntityId, gone bool) {
		if gone && !destroyed.Has(id) {
			destroyed.Mark(id)
			frame.Commands.Delete(id)
		}
	}

	cullY := s.Tuning.Get().BulletCullY
	for bullet := range s.Bullets.Iter() {
		cull(bullet.EntityId, bullet.Body.Pos[1] < cullY)
	}
	for bomb := range s.Bombs.Iter() {
		y := bomb.Body.Pos[1]
		cull(bomb.EntityId, y-bomb.Body.Radius > h || y > h+CullMargin)
	}
	for star := range s.Stars.Iter() {
		cull(star.EntityId, star.Body.Pos[1] > h+CullMargin)
	}
	for pickup := range s.Pickups.Iter() {
		cull(pickup.EntityId, pickup.Body.Pos[1] > h+CullMargin)
	}
}

// HUDSystem renders the score and lives text.
type HUDSystem struct {
	Session ecs.Singleton[Session]
	Player  ecs.Singleton[Player]
	HUD     ecs.Singleton[HUD]
}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	hud := s.HUD.Get()
	hud.Score = fmt.Sprintf("Stars: %d", s.Session.Get().Score)
	hud.Lives = fmt.Sprintf("Lives: %d", s.Player.Get().Lives)
}
