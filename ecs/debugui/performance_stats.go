//go:build !js

package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starfall/ecs"
)

// PerformanceWindow shows entity and pool counts, per-system timings
// and a rolling frame-time graph.
type PerformanceWindow struct {
	history []float32
	next    int
}

func NewPerformanceWindow(historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		history: make([]float32, max(historyFrames, 1)),
	}
}

// Push records a frame time in seconds.
func (pw *PerformanceWindow) Push(deltaTime float32) {
	pw.history[pw.next] = deltaTime * 1000.0
	pw.next = (pw.next + 1) % len(pw.history)
}

// Average returns the mean recorded frame time in milliseconds.
func (pw *PerformanceWindow) Average() float32 {
	var sum float32
	for _, ft := range pw.history {
		sum += ft
	}
	return sum / float32(len(pw.history))
}

func (pw *PerformanceWindow) Render(storage *ecs.Storage, scheduler *ecs.Scheduler, deltaTime float32) {
	pw.Push(deltaTime)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Pools: %d  Singletons: %d", stats.PoolCount, stats.SingletonCount))

	avg := pw.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &pw.history[0], int32(len(pw.history)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg

	if imgui.TreeNodeStr("Systems") {
		if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, system := range scheduler.GetStats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(system.Name)
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.LastDuration))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(formatDuration(system.MaxDuration))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Pools") {
		if imgui.BeginTableV("PoolTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Component")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, pool := range stats.PoolBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(pool.ComponentType)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", pool.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d.Microseconds())/1000.0)
}

type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// DeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) DeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.last).Seconds())
	ft.last = now
	return delta
}
