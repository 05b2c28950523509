package render

import "math"

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Layout positions every clickable element for one screen size. Input hit
// tests against the same Layout the renderer draws.
type Layout struct {
	W, H float64

	Left, Right, Shoot, Boost Rect
	HUDBoost                  Rect
	Portraits                 []Rect
	Restart                   Rect
}

const (
	touchButton = 80.0
	padding     = 16.0
	portraitGap = 20.0
	maxPortrait = 160.0
)

// NewLayout lays out a w×h screen with n character portraits.
func NewLayout(w, h float64, n int) Layout {
	bottom := h - padding - touchButton
	l := Layout{
		W: w, H: h,
		Left:     Rect{padding, bottom, touchButton, touchButton},
		Right:    Rect{2*padding + touchButton, bottom, touchButton, touchButton},
		Shoot:    Rect{w - padding - touchButton, bottom, touchButton, touchButton},
		Boost:    Rect{w - 2*padding - 2*touchButton, bottom, touchButton, touchButton},
		HUDBoost: Rect{w - padding - 88, padding, 88, 32},
		Restart:  Rect{w/2 - 110, h/2 + 40, 220, 56},
	}

	if n > 0 {
		size := math.Min(maxPortrait, (w-2*padding)/float64(n)-portraitGap)
		size = math.Max(size, 24)
		total := float64(n)*size + float64(n-1)*portraitGap
		x := (w - total) / 2
		y := h/2 - size/2
		for i := 0; i < n; i++ {
			l.Portraits = append(l.Portraits, Rect{x + float64(i)*(size+portraitGap), y, size, size})
		}
	}
	return l
}

// PortraitAt returns the index of the portrait under (x, y), or -1.
func (l Layout) PortraitAt(x, y float64) int {
	for i, r := range l.Portraits {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
