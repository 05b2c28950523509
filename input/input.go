// Package input turns keyboard, mouse and touch state into game actions.
// Polling is split from resolution so the mapping can be tested without a
// window.
package input

import (
	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/render"
)

// Keys is the keyboard state relevant to one tick. Shoot and Confirm are
// edge-triggered; the rest are held.
type Keys struct {
	Left, Right, Up, Down bool
	Boost                 bool
	Shoot                 bool
	Confirm               bool
	// Digit is the zero-based number key pressed this tick, or -1.
	Digit int
}

// Pointer is a held mouse button or touch.
type Pointer struct {
	X, Y        float64
	JustPressed bool
}

// Action is what the app applies to the world for one tick.
type Action struct {
	Input      game.Input
	Shoot      bool
	PulseBoost bool
	// Pick is the character chosen on the title screen, or game.NoCharacter.
	Pick    int
	Restart bool
}

// Resolve maps raw keyboard and pointer state onto actions for the current mode.
func Resolve(l render.Layout, mode game.Mode, keys Keys, pointers []Pointer) Action {
	a := Action{Pick: game.NoCharacter}

	switch mode {
	case game.ModeTitle:
		if keys.Digit >= 0 && keys.Digit < len(l.Portraits) {
			a.Pick = keys.Digit
		} else if keys.Confirm && len(l.Portraits) > 0 {
			a.Pick = 0
		}
		for _, p := range pointers {
			if !p.JustPressed {
				continue
			}
			if i := l.PortraitAt(p.X, p.Y); i >= 0 {
				a.Pick = i
			}
		}

	case game.ModeRunning:
		a.Input = game.Input{
			Left:  keys.Left,
			Right: keys.Right,
			Up:    keys.Up,
			Down:  keys.Down,
			Boost: keys.Boost,
		}
		a.Shoot = keys.Shoot
		for _, p := range pointers {
			switch {
			case l.Left.Contains(p.X, p.Y):
				a.Input.Left = true
			case l.Right.Contains(p.X, p.Y):
				a.Input.Right = true
			case l.Boost.Contains(p.X, p.Y):
				a.Input.Boost = true
			case p.JustPressed && l.Shoot.Contains(p.X, p.Y):
				a.Shoot = true
			case p.JustPressed && l.HUDBoost.Contains(p.X, p.Y):
				a.PulseBoost = true
			}
		}

	case game.ModeGameOver:
		a.Restart = keys.Confirm
		for _, p := range pointers {
			if p.JustPressed && l.Restart.Contains(p.X, p.Y) {
				a.Restart = true
			}
		}
	}
	return a
}
