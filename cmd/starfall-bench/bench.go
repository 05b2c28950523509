package main

import (
	"context"
	"math"
	"runtime"
	"time"

	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
)

type Options struct {
	Seed           uint64
	MaxFrames      int64
	GCPauseMetrics bool
}

// Run plays autopilot games back to back with a fixed 1/60 s step until ctx
// is done or MaxFrames frames were simulated. Each new game picks the next
// character in turn.
func Run(ctx context.Context, cfg *config.Config, opts Options) *Report {
	const dt = 1.0 / game.FrameRate

	arena := game.Arena{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}
	world := game.NewWorld(game.TuningFrom(cfg), arena, opts.Seed)

	report := &Report{
		Seed:           opts.Seed,
		Arena:          arena,
		GCPauseMetrics: opts.GCPauseMetrics,
		Events:         make(map[string]int),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	characters := max(len(cfg.Characters), 1)
	start := time.Now()

Loop:
	for opts.MaxFrames == 0 || report.Frames < opts.MaxFrames {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		switch world.Session().Mode {
		case game.ModeTitle:
			world.Start(report.Games % characters)
		case game.ModeGameOver:
			report.addGame(world.Session().Score)
			world.Reset()
			continue
		}

		in, shoot := game.Autopilot(world)
		world.SetInput(in)
		if shoot {
			world.Shoot()
		}

		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Add(time.Since(updateStart))
		report.Frames++

		for _, ev := range world.DrainEvents() {
			report.Events[ev.Kind.String()]++
		}
	}

	if session := world.Session(); session.Running() {
		report.Unfinished = session.Score
	}
	report.TotalTime = time.Since(start)
	report.Simulated = time.Duration(math.Round(float64(report.Frames) * dt * float64(time.Second)))
	report.UpdateTime.Finalize()
	report.Systems = world.Scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report
}
