package main

import (
	"time"

	"github.com/plus3/starfall/game"
)

type control int

const (
	controlLeft control = iota
	controlRight
	controlUp
	controlDown
	controlBoost
	controlCount
)

// heldKeys approximates held keys from key-down events alone. Terminals
// report auto-repeat but no releases, so a key counts as held until timeout
// passes without another press.
type heldKeys struct {
	timeout time.Duration
	last    [controlCount]time.Time
}

func (h *heldKeys) press(c control, now time.Time) {
	h.last[c] = now
}

func (h *heldKeys) held(c control, now time.Time) bool {
	last := h.last[c]
	return !last.IsZero() && now.Sub(last) < h.timeout
}

// input reports the controls held at now.
func (h *heldKeys) input(now time.Time) game.Input {
	return game.Input{
		Left:  h.held(controlLeft, now),
		Right: h.held(controlRight, now),
		Up:    h.held(controlUp, now),
		Down:  h.held(controlDown, now),
		Boost: h.held(controlBoost, now),
	}
}

// runeControls maps a movement letter to the controls it presses. Terminals
// deliver Shift+letter as the upper-case rune, which boosts.
func runeControls(r rune) []control {
	var dir control
	switch r {
	case 'a', 'A':
		dir = controlLeft
	case 'd', 'D':
		dir = controlRight
	case 'w', 'W':
		dir = controlUp
	case 's', 'S':
		dir = controlDown
	default:
		return nil
	}
	if r >= 'A' && r <= 'Z' {
		return []control{dir, controlBoost}
	}
	return []control{dir}
}

func (h *heldKeys) release() {
	h.last = [controlCount]time.Time{}
}

// cell maps an arena position to a terminal cell. Row 0 holds the HUD, so
// the arena spans rows 1 to rows-1.
func cell(x, y, arenaW, arenaH float64, cols, rows int) (int, int) {
	if arenaW <= 0 || arenaH <= 0 || cols <= 0 || rows <= 1 {
		return -1, -1
	}
	cx := int(x / arenaW * float64(cols))
	cy := 1 + int(y/arenaH*float64(rows-1))
	if x < 0 {
		cx = -1
	}
	if y < 0 {
		cy = -1
	}
	return cx, cy
}
