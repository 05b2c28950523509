// Command starfall runs the game in a window, or in the browser when built
// with GOOS=js GOARCH=wasm.
package main

import (
	"flag"
	"log"
	"time"

	_ "github.com/ebitengine/hideconsole"
	"github.com/plus3/starfall/app"
	"github.com/plus3/starfall/config"
)

func main() {
	configPath := flag.String("config", "", "Optional TOML file overriding the default settings.")
	debug := flag.Bool("debug", false, "Open the Dear ImGui debug overlay.")
	seed := flag.Uint64("seed", 0, "Seed for spawn randomness (0 picks one from the clock).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	game, err := app.New(cfg, app.Options{Debug: *debug, Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
