package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/render"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// ReadKeys samples the keyboard.
func ReadKeys() Keys {
	k := Keys{
		Left:    anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   anyPressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:      anyPressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:    anyPressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Boost:   anyPressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
		Shoot:   inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Confirm: inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR),
		Digit:   -1,
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			k.Digit = i
			break
		}
	}
	return k
}

// ReadPointers samples touches and the left mouse button.
func ReadPointers() []Pointer {
	var pointers []Pointer
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		pointers = append(pointers, Pointer{
			X:           float64(x),
			Y:           float64(y),
			JustPressed: inpututil.TouchPressDuration(id) == 1,
		})
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		pointers = append(pointers, Pointer{
			X:           float64(x),
			Y:           float64(y),
			JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		})
	}
	return pointers
}

// Poll reads the devices and resolves them for the current mode.
func Poll(l render.Layout, mode game.Mode) Action {
	return Resolve(l, mode, ReadKeys(), ReadPointers())
}
