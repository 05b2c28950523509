// Package render draws a game.World with Ebitengine: the animated gradient
// background, the player, bullets and falling entities, the HUD, on-screen
// touch controls and the title and game-over screens.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/sprite"
	"golang.org/x/image/colornames"
)

type Renderer struct {
	sprites *sprite.Set
	faces   *faces
	white   *ebiten.Image
}

func New(sprites *sprite.Set) (*Renderer, error) {
	f, err := loadFaces()
	if err != nil {
		return nil, err
	}
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Renderer{
		sprites: sprites,
		faces:   f,
		white:   white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}, nil
}

// Draw renders one frame. ms is the animation clock in milliseconds.
func (r *Renderer) Draw(screen *ebiten.Image, w *game.World, l Layout, ms float64) {
	session := w.Session()
	r.drawBackground(screen, l, session.GradientT)

	switch session.Mode {
	case game.ModeTitle:
		r.drawTitle(screen, l)
	case game.ModeRunning:
		r.drawPlayfield(screen, w, session, ms)
		r.drawHUD(screen, w.HUD(), l)
		r.drawControls(screen, l, w.Input())
	case game.ModeGameOver:
		r.drawPlayfield(screen, w, session, ms)
		r.drawHUD(screen, w.HUD(), l)
		r.drawGameOver(screen, w.HUD(), l)
	}
}

func (r *Renderer) drawBackground(screen *ebiten.Image, l Layout, t float64) {
	from, to := Gradient(t)
	vs, is := GradientVertices(l.W, l.H, from, to)
	screen.DrawTriangles(vs, is, r.white, &ebiten.DrawTrianglesOptions{})
}

func (r *Renderer) drawPlayfield(screen *ebiten.Image, w *game.World, session game.Session, ms float64) {
	r.drawPlayer(screen, w.Player(), session.Character, ms)

	for b := range w.Bullets() {
		vector.DrawFilledCircle(screen, float32(b.Pos[0]), float32(b.Pos[1]), float32(b.Radius), bulletColor, true)
	}
	for b := range w.Bombs() {
		size := b.Radius * 2.5
		drawCentered(screen, r.sprites.Bomb, b.Pos[0], b.Pos[1], size, size, 1)
	}
	angle := StarAngle(ms)
	for s := range w.Stars() {
		vs, is := StarVertices(s.Pos[0], s.Pos[1], s.Radius, angle, starColor)
		screen.DrawTriangles(vs, is, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
	for p := range w.ShieldPickups() {
		drawCentered(screen, r.sprites.Shield, p.Pos[0], p.Pos[1], p.Radius*2, p.Radius*2, 1)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, p game.Player, character int, ms float64) {
	size := p.Size * PulseScale(ms)
	x, y := p.Pos[0], p.Pos[1]

	drawCentered(screen, r.sprites.Shadow, x, y+8, size*1.15, size*1.15, 1)

	if c, ok := r.sprites.Character(character); ok && !c.Missing {
		drawCentered(screen, c.Image, x, y, size, size, 1)
	} else {
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(size/2), playerFallback, true)
	}

	if p.Shield {
		vector.StrokeCircle(screen, float32(x), float32(y), float32(size*0.5), 16, shieldGlow, true)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(size*0.5), 6, shieldRing, true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, hud game.HUD, l Layout) {
	vector.DrawFilledRect(screen, 8, 8, 140, 60, panelColor, false)
	drawText(screen, hud.Score, r.faces.hud, 16, 14, text.AlignStart, color.White)
	drawText(screen, hud.Lives, r.faces.hud, 16, 32, text.AlignStart, color.White)
	if hud.Status != "" {
		drawText(screen, hud.Status, r.faces.hud, 16, 50, text.AlignStart, statusColor)
	}
	r.drawButton(screen, l.HUDBoost, "BOOST", false)
}

func (r *Renderer) drawControls(screen *ebiten.Image, l Layout, in game.Input) {
	r.drawButton(screen, l.Left, "<", in.Left)
	r.drawButton(screen, l.Right, ">", in.Right)
	r.drawButton(screen, l.Boost, "BOOST", in.Boost)
	r.drawButton(screen, l.Shoot, "FIRE", false)
}

func (r *Renderer) drawButton(screen *ebiten.Image, b Rect, label string, held bool) {
	fill := buttonColor
	if held {
		fill = color.NRGBA{255, 255, 255, 90}
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, colornames.White, false)
	cx, cy := b.Center()
	drawText(screen, label, r.faces.hud, cx, cy-8, text.AlignCenter, color.White)
}

func (r *Renderer) drawTitle(screen *ebiten.Image, l Layout) {
	top := l.H/2 - maxPortrait/2 - 120
	if len(l.Portraits) > 0 {
		top = l.Portraits[0].Y - 120
	}
	drawText(screen, "STARFALL", r.faces.title, l.W/2, top, text.AlignCenter, color.White)
	drawText(screen, "Choose your pilot", r.faces.hud, l.W/2, top+64, text.AlignCenter, color.White)

	for i, rect := range l.Portraits {
		c, ok := r.sprites.Character(i)
		if !ok {
			continue
		}
		vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), panelColor, false)
		vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), 3, c.Color, false)

		cx, cy := rect.Center()
		alpha := float32(1)
		if c.Missing {
			alpha = 0.5
		}
		drawCentered(screen, c.Image, cx, cy, rect.W*0.85, rect.H*0.85, alpha)

		label := fmt.Sprintf("%d  %s", i+1, c.Name)
		drawText(screen, label, r.faces.hud, cx, rect.Y+rect.H+8, text.AlignCenter, color.White)
		if c.Missing {
			drawText(screen, "missing image", r.faces.hud, cx, rect.Y+rect.H+26, text.AlignCenter, colornames.Lightcoral)
		}
	}

	hintY := l.H/2 + maxPortrait/2 + 60
	if len(l.Portraits) > 0 {
		last := l.Portraits[len(l.Portraits)-1]
		hintY = last.Y + last.H + 56
	}
	drawText(screen, "Arrows/WASD move, Space shoots, Shift boosts", r.faces.hud, l.W/2, hintY, text.AlignCenter, colornames.Lightgray)
}

func (r *Renderer) drawGameOver(screen *ebiten.Image, hud game.HUD, l Layout) {
	vector.DrawFilledRect(screen, 0, 0, float32(l.W), float32(l.H), dimColor, false)
	drawText(screen, "GAME OVER", r.faces.title, l.W/2, l.H/2-90, text.AlignCenter, color.White)
	drawText(screen, hud.Final, r.faces.banner, l.W/2, l.H/2-20, text.AlignCenter, statusColor)
	r.drawButton(screen, l.Restart, "Play again", false)
}

// drawCentered draws img scaled to w×h around (cx, cy).
func drawCentered(dst, img *ebiten.Image, cx, cy, w, h float64, alpha float32) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
