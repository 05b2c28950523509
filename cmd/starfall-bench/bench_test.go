package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/starfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	for _, d := range []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond} {
		s.Add(d)
	}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, int64(3), s.Count)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestRunFrameLimit(t *testing.T) {
	report := Run(context.Background(), config.Default(), Options{Seed: 7, MaxFrames: 600})

	assert.Equal(t, int64(600), report.Frames)
	assert.Equal(t, int64(600), report.UpdateTime.Count)
	assert.Equal(t, 10*time.Second, report.Simulated)
	assert.GreaterOrEqual(t, report.Events["Started"], 1)
	assert.GreaterOrEqual(t, report.Events["GameOver"], report.Games)
	assert.Positive(t, report.Events["Shot"]+report.Events["StarCollected"]+report.Events["BombHit"]+report.Events["BombDestroyed"])

	require.NotEmpty(t, report.Systems)
	for _, s := range report.Systems {
		assert.Equal(t, int64(600), s.ExecutionCount, s.Name)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := Run(ctx, config.Default(), Options{Seed: 1})
	assert.Zero(t, report.Frames)
	assert.Zero(t, report.Games)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{Seed: 3, Events: map[string]int{"Shot": 4, "BombHit": 2}}
	r.addGame(5)
	r.addGame(9)
	r.UpdateTime.Add(time.Millisecond)
	r.UpdateTime.Finalize()

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "# Starfall Soak Report")
	assert.Contains(t, out, "- **Finished Games:** 2")
	assert.Contains(t, out, "- **Average Score:** 7.00")
	assert.Contains(t, out, "- **Best Score:** 9")
	assert.Contains(t, out, "| BombHit | 2 |\n| Shot | 4 |")
	assert.NotContains(t, out, "unfinished")
	assert.NotContains(t, out, "GC Pause")
}
