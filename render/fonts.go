package render

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

type faces struct {
	hud    text.Face
	title  *text.GoTextFace
	banner *text.GoTextFace
}

func loadFaces() (*faces, error) {
	arcade, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("loading arcade font: %w", err)
	}
	return &faces{
		hud:    text.NewGoXFace(bitmapfont.Face),
		title:  &text.GoTextFace{Source: arcade, Size: 40},
		banner: &text.GoTextFace{Source: arcade, Size: 20},
	}, nil
}
