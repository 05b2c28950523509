// Package app wires the world, renderer, input, sound and the optional debug
// overlay into an Ebitengine game.
package app

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/input"
	"github.com/plus3/starfall/render"
	"github.com/plus3/starfall/sound"
	"github.com/plus3/starfall/sprite"
)

type Options struct {
	// Debug opens the Dear ImGui overlay where it is supported.
	Debug bool
	Seed  uint64
}

// overlay is drawn on top of the game. The debug build wraps Dear ImGui.
type overlay interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	// WantsInput reports that the overlay is capturing mouse or keyboard.
	WantsInput() bool
}

type nopOverlay struct{}

func (nopOverlay) Update(float64)     {}
func (nopOverlay) Draw(*ebiten.Image) {}
func (nopOverlay) Layout(int, int)    {}
func (nopOverlay) WantsInput() bool   { return false }

type App struct {
	cfg      *config.Config
	world    *game.World
	sprites  *sprite.Set
	renderer *render.Renderer
	sound    *sound.Player
	overlay  overlay

	layout        render.Layout
	width, height int
	frames        uint64
}

func New(cfg *config.Config, opts Options) (*App, error) {
	sprites := sprite.Load(cfg.Characters)
	renderer, err := render.New(sprites)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a := &App{
		cfg:      cfg,
		world:    game.NewWorld(game.TuningFrom(cfg), game.Arena{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}, opts.Seed),
		sprites:  sprites,
		renderer: renderer,
		sound:    sound.NewPlayer(cfg.Audio),
		overlay:  nopOverlay{},
	}
	a.resize(cfg.Window.Width, cfg.Window.Height)

	if opts.Debug {
		a.overlay = newDebugOverlay(a.world, cfg.Window)
	}
	return a, nil
}

// Run opens the window and blocks until the game ends.
func (a *App) Run() error {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	if a.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(a.cfg.Window.Fullscreen)

	defer a.sound.Close()
	return ebiten.RunGame(a)
}

func (a *App) Update() error {
	a.frames++
	dt := 1 / float64(ebiten.TPS())

	mode := a.world.Session().Mode
	a.apply(a.readInput(mode), mode)
	a.world.Step(dt)
	a.sound.Handle(a.world.DrainEvents())

	a.overlay.Update(dt)
	return nil
}

// readInput polls the devices unless the overlay captured them, in which
// case nothing is held or pressed.
func (a *App) readInput(mode game.Mode) input.Action {
	if a.overlay.WantsInput() {
		return input.Action{Pick: game.NoCharacter}
	}
	return input.Poll(a.layout, mode)
}

// apply performs one tick's actions. Each mode only honours its own controls:
// picking starts a game, restarting returns to the title screen.
func (a *App) apply(act input.Action, mode game.Mode) {
	switch mode {
	case game.ModeTitle:
		if act.Pick != game.NoCharacter {
			a.world.Start(act.Pick)
		}
	case game.ModeRunning:
		a.world.SetInput(act.Input)
		if act.Shoot {
			a.world.Shoot()
		}
		if act.PulseBoost {
			a.world.PulseBoost()
		}
	case game.ModeGameOver:
		if act.Restart {
			a.world.Reset()
		}
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	ms := float64(a.frames) * 1000 / float64(ebiten.TPS())
	a.renderer.Draw(screen, a.world, a.layout, ms)
	a.overlay.Draw(screen)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.overlay.Layout(outsideWidth, outsideHeight)
	if outsideWidth != a.width || outsideHeight != a.height {
		a.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.world.Resize(float64(width), float64(height))
	a.layout = render.NewLayout(float64(width), float64(height), len(a.sprites.Characters))
	log.Printf("app: arena resized to %dx%d", width, height)
}
