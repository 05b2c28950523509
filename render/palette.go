package render

import (
	"image/color"
	"math"
)

var (
	playerFallback = color.RGBA{0x66, 0xf0, 0xff, 0xff}
	bulletColor    = color.NRGBA{255, 230, 100, 242}
	starColor      = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	shieldRing     = color.NRGBA{241, 226, 13, 222}
	shieldGlow     = color.NRGBA{179, 179, 8, 60}
	panelColor     = color.NRGBA{0, 0, 0, 110}
	buttonColor    = color.NRGBA{255, 255, 255, 40}
	dimColor       = color.NRGBA{0, 0, 0, 140}
	statusColor    = color.RGBA{0xf1, 0xe2, 0x0d, 0xff}
)

// HSL converts a CSS-style hsl(h, s, l) colour to RGBA. h is in degrees and
// may be outside [0, 360); s and l are fractions in [0, 1].
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(v float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, v+m)) * 255))
	}
	return color.RGBA{to8(r), to8(g), to8(b), 0xff}
}

// Gradient returns the two stops of the animated background for the session's
// gradient parameter t: the hue turns 60 degrees per unit of t and the end
// stop trails the start by 140 degrees.
func Gradient(t float64) (from, to color.RGBA) {
	h1 := math.Mod(t*60, 360)
	h2 := math.Mod(t*60+140, 360)
	return HSL(h1, 0.65, 0.40), HSL(h2, 0.65, 0.25)
}

func lerp(a, b uint8, t float64) float32 {
	return float32((float64(a) + (float64(b)-float64(a))*t) / 255)
}
