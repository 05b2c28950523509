package game

import (
	"testing"
	"time"

	"github.com/plus3/starfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"
)

const frame = 1.0 / 60

func newRunningWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)
	w.Start(0)
	return w
}

func spawn(w *World, tag any, pos f64.Vec2, radius, speed float64) ecs.EntityId {
	return w.Storage.Spawn(Body{Pos: pos, Radius: radius}, Fall{Speed: speed}, tag)
}

func eventKinds(events []Event) []EventKind {
	kinds := make([]EventKind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestNewWorld(t *testing.T) {
	w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)

	assert.Equal(t, ModeTitle, w.Session().Mode)
	assert.Equal(t, NoCharacter, w.Session().Character)
	assert.Equal(t, f64.Vec2{400, 480}, w.Player().Pos)
	assert.Equal(t, 6, w.Player().Lives)
	assert.Equal(t, "Stars: 0", w.HUD().Score)
	assert.Equal(t, "Lives: 6", w.HUD().Lives)

	stats := w.Scheduler.GetStats()
	names := make([]string, len(stats.Systems))
	for i, s := range stats.Systems {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"ClearDestroyedSystem", "BackgroundSystem", "ShieldSystem", "PlayerSystem",
		"SpawnSystem", "FallSystem", "BulletHitSystem", "PlayerHitSystem",
		"CullSystem", "HUDSystem",
	}, names)
}

func TestSessionRunning(t *testing.T) {
	w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)
	assert.False(t, w.Session().Running())

	w.Start(0)
	assert.True(t, w.Session().Running())

	session := w.Session()
	session.Mode = ModeGameOver
	assert.False(t, session.Running())
	assert.True(t, w.Session().Running(), "Session returns a copy")
}

func TestStarIncrementsScoreByOne(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos

	for range 3 {
		spawn(w, Star{}, pos, 20, 0)
	}
	w.Step(frame)

	assert.Equal(t, 3, w.Session().Score)
	assert.Equal(t, "Stars: 3", w.HUD().Score)
	_, _, stars, _ := w.Counts()
	assert.Equal(t, 0, stars)

	w.Step(frame)
	assert.Equal(t, 3, w.Session().Score, "a collected star is gone")
}

func TestBombCostsOneLife(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos

	spawn(w, Bomb{}, pos, 20, 0)
	spawn(w, Bomb{}, f64.Vec2{pos[0] + 80, pos[1]}, 20, 0)
	spawn(w, Bomb{}, f64.Vec2{pos[0] + 87.5, pos[1]}, 20, 0)
	w.Step(frame)

	assert.Equal(t, 4, w.Player().Lives, "the bomb exactly touching the hit circle misses")
	assert.Equal(t, "Lives: 4", w.HUD().Lives)
	assert.Equal(t, ModeRunning, w.Session().Mode)
	_, bombs, _, _ := w.Counts()
	assert.Equal(t, 1, bombs)
}

func TestGameOverWhenLivesReachZero(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos
	w.DrainEvents()

	spawn(w, Star{}, f64.Vec2{100, 100}, 20, 0)
	for range 7 {
		spawn(w, Bomb{}, pos, 20, 0)
	}
	spawn(w, Star{}, pos, 20, 0)
	w.Step(frame)

	session := w.Session()
	assert.Equal(t, ModeGameOver, session.Mode)
	assert.Equal(t, 0, w.Player().Lives)
	assert.Equal(t, 0, session.Score, "systems stop once the game is over")
	assert.Equal(t, "You collected 0 stars.", w.HUD().Final)
	assert.Equal(t, SpawnTimers{}, *w.timers.Get())

	events := w.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, EventGameOver, events[len(events)-1].Kind)

	_, bombs, _, _ := w.Counts()
	assert.Equal(t, 1, bombs, "the seventh bomb is left untouched")

	w.Step(frame)
	w.Step(1.0)
	assert.Equal(t, 0, w.Player().Lives)
	_, bombs, stars, _ := w.Counts()
	assert.Equal(t, 1, bombs, "nothing spawns after game over")
	assert.Equal(t, 2, stars)
	assert.False(t, w.Shoot())
}

func TestShieldAbsorbsBombs(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos

	spawn(w, ShieldPickup{}, pos, 55, 0)
	w.Step(frame)

	player := w.Player()
	require.True(t, player.Shield)
	assert.Equal(t, 5*time.Second, player.ShieldLeft)
	assert.Equal(t, "Shield ON", w.HUD().Status)

	for range 3 {
		spawn(w, Bomb{}, pos, 20, 0)
	}
	w.Step(frame)

	assert.Equal(t, 6, w.Player().Lives)
	_, bombs, _, _ := w.Counts()
	assert.Equal(t, 0, bombs, "absorbed bombs are destroyed")
	assert.Contains(t, eventKinds(w.DrainEvents()), EventShieldBlocked)

	for range 300 {
		w.SetInput(Input{})
		w.Step(frame)
		if !w.Player().Shield {
			break
		}
		// keep the arena clear of spawns that could drift into the player
		w.clearEntities()
	}
	assert.False(t, w.Player().Shield)
	assert.Equal(t, "", w.HUD().Status)

	w.clearEntities()
	spawn(w, Bomb{}, w.Player().Pos, 20, 0)
	w.Step(frame)
	assert.Equal(t, 5, w.Player().Lives)
}

func TestShieldPickupRefreshesDuration(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos

	spawn(w, ShieldPickup{}, pos, 55, 0)
	w.Step(frame)
	w.Step(2.0)
	w.clearEntities()
	assert.Less(t, w.Player().ShieldLeft, 4*time.Second)

	spawn(w, ShieldPickup{}, pos, 55, 0)
	w.Step(frame)
	assert.Equal(t, 5*time.Second, w.Player().ShieldLeft)
}

func TestBulletDestroysBomb(t *testing.T) {
	w := newRunningWorld(t)

	bomb := spawn(w, Bomb{}, f64.Vec2{100, 100}, 20, 0)
	bullet := spawn(w, Bullet{}, f64.Vec2{100, 125}, 6, 0)
	spare := spawn(w, Bullet{}, f64.Vec2{100, 110}, 6, 0)
	w.Step(frame)

	assert.False(t, w.Storage.Alive(bomb))
	assert.False(t, w.Storage.Alive(bullet))
	assert.True(t, w.Storage.Alive(spare), "one bullet per bomb")
	assert.Equal(t, 0, w.Session().Score, "bombs give no points")
	assert.Contains(t, eventKinds(w.DrainEvents()), EventBombDestroyed)
}

func TestBombShotOverPlayerDoesNotHurt(t *testing.T) {
	w := newRunningWorld(t)
	pos := w.Player().Pos

	spawn(w, Bomb{}, pos, 20, 0)
	spawn(w, Bullet{}, pos, 6, 0)
	w.Step(frame)

	assert.Equal(t, 6, w.Player().Lives)
}

func TestFallingEntitiesMove(t *testing.T) {
	w := newRunningWorld(t)

	star := spawn(w, Star{}, f64.Vec2{100, 0}, 20, 3)
	bullet := w.Storage.Spawn(bulletComponents(f64.Vec2{100, 300}, w.tuning.Get())...)
	w.Step(frame)

	assert.InDelta(t, 3, ecs.ReadComponent[Body](w.Storage, star).Pos[1], 1e-9)
	assert.InDelta(t, 290, ecs.ReadComponent[Body](w.Storage, bullet).Pos[1], 1e-9)
}

func TestCull(t *testing.T) {
	w := newRunningWorld(t)

	tests := []struct {
		name string
		tag  any
		y, r float64
		kept bool
	}{
		{"bullet above the cut", Bullet{}, -19, 6, true},
		{"bullet past the cut", Bullet{}, -21, 6, false},
		{"bomb fully below", Bomb{}, 621, 20, false},
		{"bomb partly visible", Bomb{}, 619, 20, true},
		{"star inside margin", Star{}, 639, 20, true},
		{"star past margin", Star{}, 641, 20, false},
		{"pickup past margin", ShieldPickup{}, 641, 55, false},
	}

	ids := make([]ecs.EntityId, len(tests))
	for i, tt := range tests {
		ids[i] = spawn(w, tt.tag, f64.Vec2{10, tt.y}, tt.r, 0)
	}
	w.Step(frame)

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kept, w.Storage.Alive(ids[i]))
		})
	}
}

func TestPlayerMovement(t *testing.T) {
	t.Run("speed per frame", func(t *testing.T) {
		w := newRunningWorld(t)
		w.SetInput(Input{Right: true})
		w.Step(frame)
		assert.InDelta(t, 405, w.Player().Pos[0], 1e-6)
	})

	t.Run("boost", func(t *testing.T) {
		w := newRunningWorld(t)
		w.SetInput(Input{Left: true, Boost: true})
		w.Step(frame)
		assert.InDelta(t, 391, w.Player().Pos[0], 1e-6)
		assert.True(t, w.Player().Boosting)
	})

	t.Run("boost pulse expires", func(t *testing.T) {
		w := newRunningWorld(t)
		w.PulseBoost()
		w.SetInput(Input{Up: true})
		w.Step(frame)
		assert.True(t, w.Player().Boosting)

		w.Step(1.0)
		w.clearEntities()
		w.Step(frame)
		assert.False(t, w.Player().Boosting)
	})

	t.Run("clamped to the arena", func(t *testing.T) {
		w := newRunningWorld(t)
		w.SetInput(Input{Left: true, Up: true})
		for range 200 {
			w.Step(frame)
			w.clearEntities()
		}
		assert.Equal(t, f64.Vec2{75, 75}, w.Player().Pos)

		w.SetInput(Input{Right: true, Down: true})
		w.Step(10)
		assert.Equal(t, f64.Vec2{725, 525}, w.Player().Pos)
	})

	t.Run("no movement outside a game", func(t *testing.T) {
		w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)
		w.SetInput(Input{Left: true})
		w.Step(frame)
		assert.Equal(t, f64.Vec2{400, 480}, w.Player().Pos)
	})
}

func TestClampPlayer(t *testing.T) {
	arena := Arena{W: 100, H: 400}
	assert.Equal(t, f64.Vec2{50, 75}, ClampPlayer(f64.Vec2{-10, -10}, 150, arena), "narrow arena centres x")
	assert.Equal(t, f64.Vec2{50, 325}, ClampPlayer(f64.Vec2{90, 1000}, 150, arena))
}

func TestSpawnTimers(t *testing.T) {
	w := newRunningWorld(t)
	w.Step(1.0)

	_, bombs, stars, pickups := w.Counts()
	assert.Equal(t, 3, bombs)
	assert.Equal(t, 1, stars)
	assert.LessOrEqual(t, pickups, 1)
	assert.Equal(t, 100*time.Millisecond, w.timers.Get().Bomb)

	tuning := w.Tuning()
	for bomb := range w.Bombs() {
		assert.Equal(t, SpawnY, bomb.Pos[1])
		assert.GreaterOrEqual(t, bomb.Pos[0], 30.0)
		assert.Less(t, bomb.Pos[0], 770.0)
		assert.Equal(t, tuning.Bomb.Radius, bomb.Radius)
	}
	for id, fall := range ecs.NewQuery[struct {
		*Fall
		*Bomb
	}](w.Storage).Entities() {
		assert.True(t, w.Storage.Alive(id))
		assert.GreaterOrEqual(t, fall.Fall.Speed, 3.1)
		assert.Less(t, fall.Fall.Speed, 5.2)
	}
}

func TestShieldSpawnChance(t *testing.T) {
	w := newRunningWorld(t)

	spawned := 0
	for range 400 {
		w.Step(1.0)
		_, _, _, pickups := w.Counts()
		spawned += pickups
		w.clearEntities()
	}

	assert.InDelta(t, 140, spawned, 50, "one roll per second at 35%")
	assert.Equal(t, ModeRunning, w.Session().Mode)
}

func TestShoot(t *testing.T) {
	w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)
	assert.False(t, w.Shoot(), "no bullets on the title screen")

	w.Start(1)
	require.True(t, w.Shoot())

	var bullets []Body
	for b := range w.Bullets() {
		bullets = append(bullets, b)
	}
	require.Len(t, bullets, 1)
	assert.Equal(t, f64.Vec2{400, 405}, bullets[0].Pos)
	assert.Equal(t, 6.0, bullets[0].Radius)
}

func TestStartClearsState(t *testing.T) {
	w := newRunningWorld(t)
	w.Step(2.0)
	w.Shoot()
	w.player.Get().Lives = 2
	w.session.Get().Score = 9

	w.Start(2)

	bullets, bombs, stars, pickups := w.Counts()
	assert.Zero(t, bullets+bombs+stars+pickups)
	assert.Equal(t, 0, w.Session().Score)
	assert.Equal(t, 6, w.Player().Lives)
	assert.Equal(t, 2, w.Session().Character)
	assert.Equal(t, SpawnTimers{}, *w.timers.Get())
	events := w.DrainEvents()
	require.NotEmpty(t, events)
	assert.Equal(t, EventStarted, events[len(events)-1].Kind)
}

func TestReset(t *testing.T) {
	w := newRunningWorld(t)
	spawn(w, Star{}, w.Player().Pos, 20, 0)
	spawn(w, Bomb{}, w.Player().Pos, 20, 0)
	w.Step(frame)
	require.Equal(t, "Stars: 1", w.HUD().Score)

	w.Reset()

	assert.Equal(t, ModeTitle, w.Session().Mode)
	assert.Equal(t, NoCharacter, w.Session().Character)
	assert.Equal(t, "Stars: 0", w.HUD().Score)
	assert.Equal(t, "Lives: 6", w.HUD().Lives)
	assert.False(t, w.Shoot())
}

func TestResize(t *testing.T) {
	w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 1)
	w.Resize(1000, 700)
	assert.Equal(t, f64.Vec2{500, 580}, w.Player().Pos)
	assert.Equal(t, Arena{W: 1000, H: 700}, w.Arena())

	w.Start(0)
	w.SetInput(Input{Right: true})
	w.Step(frame)
	moved := w.Player().Pos

	w.Resize(1200, 800)
	assert.Equal(t, moved, w.Player().Pos, "running games keep the player where it is")
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []Body {
		w := NewWorld(DefaultTuning(), Arena{W: 800, H: 600}, 42)
		w.Start(0)
		for i := range 240 {
			in, shoot := Autopilot(w)
			w.SetInput(in)
			if shoot && i%10 == 0 {
				w.Shoot()
			}
			w.Step(frame)
		}
		var out []Body
		for b := range w.Bombs() {
			out = append(out, b)
		}
		return out
	}

	assert.Equal(t, run(), run())
}
