//go:build !js

package app

import (
	"fmt"
	"log"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/ecs"
	"github.com/plus3/starfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/starfall/ecs/debugui/ebiten"
	"github.com/plus3/starfall/game"
)

// debugOverlay runs the ImGui windows on their own scheduler and storage.
// They inspect the world's scheduler without adding components to it.
type debugOverlay struct {
	backend   *debugui_ebiten.ImguiBackend
	scheduler *ecs.Scheduler
	capture   *ecs.Singleton[debugui.ImguiInputState]
}

func newDebugOverlay(world *game.World, win config.Window) overlay {
	backend := debugui_ebiten.NewImguiBackend(win.Title, win.Width, win.Height)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	scheduler := ecs.NewScheduler(ecs.NewStorage(registry))
	debugui.Install(scheduler, world.Scheduler)

	scheduler.Storage().Spawn(debugui.ImguiItem{
		Title:  "Game",
		Render: func() { renderGameWindow(world) },
	})

	log.Println("app: debug overlay enabled")
	return &debugOverlay{
		backend:   backend,
		scheduler: scheduler,
		capture:   ecs.NewSingleton[debugui.ImguiInputState](scheduler.Storage()),
	}
}

func (d *debugOverlay) Update(dt float64) {
	d.backend.BeginFrame()
	d.scheduler.Once(dt)
	d.backend.EndFrame()
}

func (d *debugOverlay) Draw(screen *ebiten.Image) {
	d.backend.Draw(screen)
}

func (d *debugOverlay) Layout(width, height int) {
	d.backend.Layout(width, height)
}

func (d *debugOverlay) WantsInput() bool {
	state := d.capture.Get()
	return state.WantCaptureMouse || state.WantCaptureKeyboard
}

func renderGameWindow(world *game.World) {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	session := world.Session()
	player := world.Player()
	hud := world.HUD()
	bullets, bombs, stars, pickups := world.Counts()

	imgui.Text(fmt.Sprintf("Mode: %s", session.Mode))
	imgui.Text(fmt.Sprintf("Elapsed: %s", session.Elapsed.Round(10*time.Millisecond)))
	imgui.Text(fmt.Sprintf("%s  %s  %s", hud.Score, hud.Lives, hud.Status))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Player: (%.0f, %.0f) size %.0f", player.Pos[0], player.Pos[1], player.Size))
	imgui.Text(fmt.Sprintf("Shield: %v (%s left)", player.Shield, player.ShieldLeft.Round(10*time.Millisecond)))
	imgui.Text(fmt.Sprintf("Boosting: %v", player.Boosting))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Bullets %d  Bombs %d  Stars %d  Shields %d", bullets, bombs, stars, pickups))

	if session.Running() {
		if imgui.Button("Pulse boost") {
			world.PulseBoost()
		}
		imgui.SameLine()
		if imgui.Button("Quit to title") {
			world.Reset()
		}
	}

	imgui.End()
}
