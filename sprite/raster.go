package sprite

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// canvas is an RGBA image with anti-aliased shape filling.
type canvas struct {
	*image.RGBA
	r *vector.Rasterizer
}

func newCanvas(size int) *canvas {
	return &canvas{
		RGBA: image.NewRGBA(image.Rect(0, 0, size, size)),
		r:    vector.NewRasterizer(size, size),
	}
}

func (c *canvas) fill(clr color.Color) {
	c.r.DrawOp = draw.Over
	c.r.Draw(c.RGBA, c.Bounds(), image.NewUniform(clr), image.Point{})
	c.r.Reset(c.Bounds().Dx(), c.Bounds().Dy())
}

func (c *canvas) polygon(pts []f32.Vec2, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	c.r.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		c.r.LineTo(p[0], p[1])
	}
	c.r.ClosePath()
	c.fill(clr)
}

func (c *canvas) circle(cx, cy, radius float32, clr color.Color) {
	c.polygon(circlePoints(cx, cy, radius, 48), clr)
}

// line strokes a segment as a quad of the given width.
func (c *canvas) line(x0, y0, x1, y1, width float32, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.polygon([]f32.Vec2{
		{x0 + nx, y0 + ny}, {x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny}, {x0 - nx, y0 - ny},
	}, clr)
}

func circlePoints(cx, cy, radius float32, segments int) []f32.Vec2 {
	pts := make([]f32.Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = f32.Vec2{cx + radius*float32(math.Cos(a)), cy + radius*float32(math.Sin(a))}
	}
	return pts
}

func shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}

// DrawCharacter draws the procedural player: a round body in body colour with a
// darker rim, a highlight and two eyes looking up.
func DrawCharacter(body color.RGBA, size int) *image.RGBA {
	c := newCanvas(size)
	s := float32(size)
	mid := s / 2

	c.circle(mid, mid, s*0.48, shade(body, 0.6))
	c.circle(mid, mid, s*0.43, body)
	c.circle(mid-s*0.12, mid-s*0.16, s*0.12, shade(body, 1.35))

	for _, side := range []float32{-1, 1} {
		ex := mid + side*s*0.14
		c.circle(ex, mid-s*0.02, s*0.085, colornames.White)
		c.circle(ex, mid-s*0.05, s*0.04, colornames.Midnightblue)
	}
	return c.RGBA
}

// DrawBomb draws a dark sphere with a fuse and a spark at its tip.
func DrawBomb(size int) *image.RGBA {
	c := newCanvas(size)
	s := float32(size)
	cx, cy := s*0.46, s*0.56

	c.line(cx+s*0.18, cy-s*0.3, cx+s*0.3, cy-s*0.42, s*0.05, colornames.Burlywood)
	c.polygon([]f32.Vec2{
		{cx + s*0.1, cy - s*0.22}, {cx + s*0.24, cy - s*0.36},
		{cx + s*0.3, cy - s*0.3}, {cx + s*0.16, cy - s*0.16},
	}, colornames.Dimgray)
	c.circle(cx, cy, s*0.38, colornames.Black)
	c.circle(cx, cy, s*0.34, color.RGBA{0x2b, 0x2b, 0x36, 0xff})
	c.circle(cx-s*0.12, cy-s*0.12, s*0.08, color.RGBA{0x70, 0x70, 0x80, 0xff})

	tipX, tipY := cx+s*0.32, cy-s*0.44
	c.polygon(starPoints(tipX, tipY, s*0.1, s*0.04, 0), colornames.Orange)
	c.circle(tipX, tipY, s*0.03, colornames.Lightyellow)
	return c.RGBA
}

// DrawShield draws a heater shield badge with a gold border.
func DrawShield(size int) *image.RGBA {
	c := newCanvas(size)
	s := float32(size)
	outline := func(inset float32) []f32.Vec2 {
		return []f32.Vec2{
			{s*0.14 + inset, s*0.12 + inset}, {s*0.5, s*0.04 + inset*0.8}, {s*0.86 - inset, s*0.12 + inset},
			{s*0.84 - inset, s*0.5}, {s*0.72 - inset*0.6, s*0.74 - inset*0.4},
			{s*0.5, s*0.94 - inset*1.2},
			{s*0.28 + inset*0.6, s*0.74 - inset*0.4}, {s*0.16 + inset, s*0.5},
		}
	}
	c.polygon(outline(0), colornames.Gold)
	c.polygon(outline(s*0.06), color.RGBA{0x1e, 0x5a, 0xc8, 0xff})
	c.polygon(starPoints(s*0.5, s*0.46, s*0.18, s*0.08, 0), colornames.Gold)
	return c.RGBA
}

// DrawShadow is a soft black disc whose alpha falls off toward the rim.
func DrawShadow(size int, alpha float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	mid := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-mid, float64(y)+0.5-mid) / mid
			if d >= 1 {
				continue
			}
			a := alpha * (1 - d*d)
			img.SetRGBA(x, y, color.RGBA{A: uint8(a * 255)})
		}
	}
	return img
}

func starPoints(cx, cy, outer, inner float32, rotation float64) []f32.Vec2 {
	pts := make([]f32.Vec2, 0, 10)
	for i := 0; i < 5; i++ {
		for j, r := range []float32{outer, inner} {
			a := (18+72*float64(i)+36*float64(j))*math.Pi/180 + rotation
			pts = append(pts, f32.Vec2{cx + r*float32(math.Cos(a)), cy - r*float32(math.Sin(a))})
		}
	}
	return pts
}
