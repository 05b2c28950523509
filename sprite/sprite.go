// Package sprite builds the images drawn by the renderer: procedural
// characters, bombs, shield pickups and the player's drop shadow, plus
// optional character PNGs loaded from disk.
package sprite

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/starfall/config"
)

// Resolution of procedurally drawn sprites. They are scaled when drawn.
const Resolution = 256

// Character is a selectable player sprite.
type Character struct {
	Name  string
	Color color.RGBA
	Image *ebiten.Image
	// Custom is set when Image came from the configured PNG.
	Custom bool
	// Missing is set when a configured PNG failed to load; Image then holds
	// the procedural fallback.
	Missing bool
}

type Set struct {
	Characters []Character
	Bomb       *ebiten.Image
	Shield     *ebiten.Image
	Shadow     *ebiten.Image
}

// Load builds the sprite set. Character images that fail to load are logged
// and replaced by the procedural sprite.
func Load(chars []config.Character) *Set {
	set := &Set{
		Bomb:   ebiten.NewImageFromImage(DrawBomb(Resolution)),
		Shield: ebiten.NewImageFromImage(DrawShield(Resolution)),
		Shadow: ebiten.NewImageFromImage(DrawShadow(Resolution/2, 0.6)),
	}

	for _, ch := range chars {
		c, img := resolveCharacter(ch, Resolution)
		c.Image = ebiten.NewImageFromImage(img)
		set.Characters = append(set.Characters, c)
	}
	return set
}

// fallbackColor is used for characters with an unparsable colour.
var fallbackColor = color.RGBA{0x66, 0xf0, 0xff, 0xff}

// resolveCharacter picks the source image of a character: the configured
// PNG when it decodes, otherwise a procedural sprite of the given size.
// The returned Character has no Image yet.
func resolveCharacter(ch config.Character, size int) (Character, image.Image) {
	rgba, err := ch.RGBA()
	if err != nil {
		log.Printf("sprite: character %q: %v", ch.Name, err)
		rgba = fallbackColor
	}
	c := Character{Name: ch.Name, Color: rgba}

	if ch.Image != "" {
		img, err := decodeFile(ch.Image)
		if err == nil {
			c.Custom = true
			return c, img
		}
		log.Printf("sprite: character %q: %v", ch.Name, err)
		c.Missing = true
	}
	return c, DrawCharacter(rgba, size)
}

// Character returns the sprite for index i, or false for an unknown index.
func (s *Set) Character(i int) (Character, bool) {
	if i < 0 || i >= len(s.Characters) {
		return Character{}, false
	}
	return s.Characters[i], true
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
