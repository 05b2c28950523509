package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PulseScale is the player's breathing scale at ms milliseconds.
func PulseScale(ms float64) float64 {
	return 1 + 0.06*math.Sin(ms/180)
}

// StarAngle is the slow spin applied to every star at ms milliseconds.
func StarAngle(ms float64) float64 {
	return math.Mod(ms, 360) / 360 * 2 * math.Pi * 0.03
}

// GradientVertices covers a w×h rectangle with a linear gradient running
// from the top-left corner (from) to the bottom-right corner (to).
func GradientVertices(w, h float64, from, to color.RGBA) ([]ebiten.Vertex, []uint16) {
	d := w*w + h*h
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}

	vs := make([]ebiten.Vertex, 4)
	for i, p := range corners {
		t := 0.0
		if d > 0 {
			t = (p[0]*w + p[1]*h) / d
		}
		vs[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: lerp(from.R, to.R, t),
			ColorG: lerp(from.G, to.G, t),
			ColorB: lerp(from.B, to.B, t),
			ColorA: 1,
		}
	}
	return vs, []uint16{0, 1, 2, 1, 3, 2}
}

// StarOutline returns the ten vertices of a five-pointed star of outer
// radius r and inner radius r/2, turned by angle radians.
func StarOutline(cx, cy, r, angle float64) [10][2]float64 {
	var pts [10][2]float64
	for i := 0; i < 5; i++ {
		for j, radius := range []float64{r, r * 0.5} {
			a := (18+72*float64(i)+36*float64(j))*math.Pi/180 + angle
			pts[2*i+j] = [2]float64{cx + math.Cos(a)*radius, cy - math.Sin(a)*radius}
		}
	}
	return pts
}

// StarVertices fans a filled star out of its centre.
func StarVertices(cx, cy, r, angle float64, clr color.Color) ([]ebiten.Vertex, []uint16) {
	cr, cg, cb, ca := clr.RGBA()
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 1, SrcY: 1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		}
	}

	outline := StarOutline(cx, cy, r, angle)
	vs := make([]ebiten.Vertex, 0, len(outline)+1)
	vs = append(vs, vertex(cx, cy))
	for _, p := range outline {
		vs = append(vs, vertex(p[0], p[1]))
	}

	is := make([]uint16, 0, 3*len(outline))
	for i := range outline {
		next := (i+1)%len(outline) + 1
		is = append(is, 0, uint16(i+1), uint16(next))
	}
	return vs, is
}
