package game

import (
	"golang.org/x/image/math/f64"
)

// Body is the position and collision radius of every moving entity.
type Body struct {
	Pos    f64.Vec2
	Radius float64
}

// Fall is the vertical speed in pixels per 1/60 s frame. Bullets carry a
// negative speed and move up.
type Fall struct {
	Speed float64
}

type Bullet struct{}

type Bomb struct{}

type Star struct{}

type ShieldPickup struct{}

// Collides reports whether two circles overlap. Touching circles do not collide.
func Collides(a f64.Vec2, ar float64, b f64.Vec2, br float64) bool {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	r := ar + br
	return dx*dx+dy*dy < r*r
}

func bulletComponents(pos f64.Vec2, t *Tuning) []any {
	return []any{
		Body{Pos: pos, Radius: t.BulletRadius},
		Fall{Speed: -t.BulletSpeed},
		Bullet{},
	}
}

func fallingComponents(x, speed float64, s Spawner, tag any) []any {
	return []any{
		Body{Pos: f64.Vec2{x, SpawnY}, Radius: s.Radius},
		Fall{Speed: speed},
		tag,
	}
}
