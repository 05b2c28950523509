package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    color.RGBA
	}{
		{"red", 0, 1, 0.5, color.RGBA{255, 0, 0, 255}},
		{"green", 120, 1, 0.5, color.RGBA{0, 255, 0, 255}},
		{"blue", 240, 1, 0.5, color.RGBA{0, 0, 255, 255}},
		{"grey", 77, 0, 0.5, color.RGBA{128, 128, 128, 255}},
		{"white", 0, 0.65, 1, color.RGBA{255, 255, 255, 255}},
		{"background start", 0, 0.65, 0.40, color.RGBA{168, 36, 36, 255}},
		{"wraps", 480, 1, 0.5, color.RGBA{0, 255, 0, 255}},
		{"negative", -240, 1, 0.5, color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSL(tt.h, tt.s, tt.l); got != tt.want {
				t.Errorf("HSL(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
			}
		})
	}
}

func TestGradient(t *testing.T) {
	from, to := Gradient(0)
	assert.Equal(t, HSL(0, 0.65, 0.40), from)
	assert.Equal(t, HSL(140, 0.65, 0.25), to)

	// One full turn of the hue wheel every 6 units of t.
	from6, to6 := Gradient(6)
	assert.Equal(t, from, from6)
	assert.Equal(t, to, to6)

	from1, _ := Gradient(1)
	assert.Equal(t, HSL(60, 0.65, 0.40), from1)
}
