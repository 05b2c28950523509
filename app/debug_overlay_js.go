//go:build js

package app

import (
	"log"

	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
)

func newDebugOverlay(*game.World, config.Window) overlay {
	log.Println("app: debug overlay is not available in the browser")
	return nopOverlay{}
}
