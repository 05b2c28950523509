//go:build !js

// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Windows are entities carrying an ImguiItem; ImguiSystem renders the visible ones each frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfall/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Hidden items stay registered but are skipped until shown again.
type ImguiItem struct {
	Title  string
	Hidden bool
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Game input should be ignored while ImGui wants the mouse or keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers the render functions of
// every visible ImguiItem, so they run after the frame's commands were applied.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Iter() {
		if item.Hidden || item.Render == nil {
			continue
		}
		frame.Commands.Defer(item.Render)
	}
}

// RegisterComponents registers the component types used by the overlay.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Install spawns the standard windows (performance, entity inspector and a
// window list) into the overlay's own storage and registers ImguiSystem on
// its scheduler. The windows inspect target, the scheduler of the world
// being debugged.
func Install(scheduler *ecs.Scheduler, target *ecs.Scheduler) {
	storage := scheduler.Storage()
	ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceWindow(120)
	inspector := NewEntityInspector(100)
	timer := NewFrameTimer()

	storage.Spawn(ImguiItem{
		Title: "Performance",
		Render: func() {
			perf.Render(target.Storage(), target, timer.DeltaTime())
		},
	})
	storage.Spawn(ImguiItem{
		Title: "Entities",
		Render: func() {
			inspector.Render(target.Storage())
		},
	})
	storage.Spawn(ImguiItem{
		Title: "Windows",
		Render: func() {
			renderWindowList(storage)
		},
	})

	scheduler.Register(&ImguiSystem{})
}

func renderWindowList(storage *ecs.Storage) {
	if !imgui.BeginV("Windows", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	view := ecs.NewView[struct{ *ImguiItem }](storage)
	for item := range view.Iter() {
		if item.Title == "Windows" {
			continue
		}
		visible := !item.Hidden
		if imgui.Checkbox(item.Title, &visible) {
			item.Hidden = !visible
		}
	}

	imgui.End()
}
