package app

import (
	"testing"

	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *App {
	return &App{
		world:   game.NewWorld(game.DefaultTuning(), game.Arena{W: 960, H: 720}, 1),
		overlay: nopOverlay{},
	}
}

func idle() input.Action {
	return input.Action{Pick: game.NoCharacter}
}

func TestApplyModeTransitions(t *testing.T) {
	a := newTestApp()
	require.Equal(t, game.ModeTitle, a.world.Session().Mode)

	a.apply(idle(), game.ModeTitle)
	assert.Equal(t, game.ModeTitle, a.world.Session().Mode, "nothing picked")

	pick := idle()
	pick.Pick = 2
	a.apply(pick, game.ModeTitle)
	session := a.world.Session()
	assert.Equal(t, game.ModeRunning, session.Mode)
	assert.Equal(t, 2, session.Character)

	restart := idle()
	restart.Restart = true
	a.apply(restart, game.ModeRunning)
	assert.Equal(t, game.ModeRunning, a.world.Session().Mode, "restart only applies after game over")

	a.apply(restart, game.ModeGameOver)
	assert.Equal(t, game.ModeTitle, a.world.Session().Mode)
}

func TestApplyRunningControls(t *testing.T) {
	a := newTestApp()
	a.world.Start(0)
	a.world.DrainEvents()

	act := idle()
	act.Input = game.Input{Left: true, Boost: true}
	act.Shoot = true
	act.PulseBoost = true
	a.apply(act, game.ModeRunning)

	assert.Equal(t, act.Input, a.world.Input())
	bullets, _, _, _ := a.world.Counts()
	assert.Equal(t, 1, bullets)
	assert.Equal(t, a.world.Tuning().BoostPulse, a.world.Player().PulseLeft)

	events := a.world.DrainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, game.EventShot, events[0].Kind)
}

func TestApplyIgnoresPickWhileRunning(t *testing.T) {
	a := newTestApp()
	a.world.Start(1)

	pick := idle()
	pick.Pick = 0
	a.apply(pick, game.ModeRunning)
	assert.Equal(t, 1, a.world.Session().Character)
}

type capturingOverlay struct{ nopOverlay }

func (capturingOverlay) WantsInput() bool { return true }

func TestCapturedInputReleasesControls(t *testing.T) {
	a := newTestApp()
	a.world.Start(0)

	held := idle()
	held.Input = game.Input{Right: true, Boost: true}
	a.apply(held, game.ModeRunning)
	require.Equal(t, held.Input, a.world.Input())

	a.overlay = capturingOverlay{}
	a.apply(a.readInput(game.ModeRunning), game.ModeRunning)
	assert.Equal(t, game.Input{}, a.world.Input())

	a.world.Reset()
	a.apply(a.readInput(game.ModeTitle), game.ModeTitle)
	assert.Equal(t, game.ModeTitle, a.world.Session().Mode, "captured input picks nothing")
}
