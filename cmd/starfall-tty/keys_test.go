package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starfall/game"
	"github.com/stretchr/testify/assert"
)

func TestHeldKeysDecay(t *testing.T) {
	h := heldKeys{timeout: 200 * time.Millisecond}
	now := time.Unix(100, 0)

	assert.False(t, h.held(controlLeft, now), "never pressed")

	h.press(controlLeft, now)
	assert.True(t, h.held(controlLeft, now))
	assert.True(t, h.held(controlLeft, now.Add(199*time.Millisecond)))
	assert.False(t, h.held(controlLeft, now.Add(200*time.Millisecond)))
	assert.False(t, h.held(controlRight, now))

	// Auto-repeat keeps the key held.
	h.press(controlLeft, now.Add(150*time.Millisecond))
	assert.True(t, h.held(controlLeft, now.Add(300*time.Millisecond)))

	h.release()
	assert.False(t, h.held(controlLeft, now.Add(300*time.Millisecond)))
}

func TestCell(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 0, 1},
		{"centre", 480, 360, 40, 13},
		{"bottom right", 959, 719, 79, 24},
		{"above the arena", 100, -30, 8, -1},
		{"left of the arena", -5, 100, -1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := cell(tt.x, tt.y, 960, 720, 80, 25)
			assert.Equal(t, tt.cx, cx)
			assert.Equal(t, tt.cy, cy)
		})
	}

	cx, cy := cell(10, 10, 0, 720, 80, 25)
	assert.Equal(t, -1, cx)
	assert.Equal(t, -1, cy)
}

func TestRuneControls(t *testing.T) {
	assert.Equal(t, []control{controlLeft}, runeControls('a'))
	assert.Equal(t, []control{controlLeft, controlBoost}, runeControls('A'))
	assert.Equal(t, []control{controlDown, controlBoost}, runeControls('S'))
	assert.Nil(t, runeControls('b'))
	assert.Nil(t, runeControls(' '))
}

func TestHeldKeysInput(t *testing.T) {
	h := heldKeys{timeout: 200 * time.Millisecond}
	now := time.Unix(100, 0)

	for _, c := range runeControls('D') {
		h.press(c, now)
	}
	assert.Equal(t, game.Input{Right: true, Boost: true}, h.input(now.Add(50*time.Millisecond)))

	h.press(controlRight, now.Add(150*time.Millisecond))
	assert.Equal(t, game.Input{Right: true}, h.input(now.Add(250*time.Millisecond)), "boost decays once shift is let go")
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	out := make(chan tcell.Event)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		pumpEvents(func() tcell.Event { return tcell.NewEventInterrupt(nil) }, out, done)
		close(finished)
	}()

	<-out
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump still blocked after done was closed")
	}
}

func TestPumpEventsStopsOnNilEvent(t *testing.T) {
	out := make(chan tcell.Event, 1)
	pumpEvents(func() tcell.Event { return nil }, out, make(chan struct{}))
	assert.Empty(t, out)
}
