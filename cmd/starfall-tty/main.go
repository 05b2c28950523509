// Command starfall-tty plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
	"github.com/plus3/starfall/sound"
)

const holdTimeout = 200 * time.Millisecond

type frontend struct {
	screen  tcell.Screen
	world   *game.World
	cfg     *config.Config
	speaker *sound.Speaker
	keys    heldKeys
	styles  []tcell.Style
}

func main() {
	configPath := flag.String("config", "", "Optional TOML file overriding the default settings.")
	seed := flag.Uint64("seed", 0, "Seed for spawn randomness (0 picks one from the clock).")
	logPath := flag.String("log", "", "Write log output to this file instead of discarding it.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	arena := game.Arena{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}
	f := &frontend{
		screen:  screen,
		world:   game.NewWorld(game.TuningFrom(cfg), arena, *seed),
		cfg:     cfg,
		speaker: sound.NewSpeaker(cfg.Audio),
		keys:    heldKeys{timeout: holdTimeout},
	}
	for _, ch := range cfg.Characters {
		style := tcell.StyleDefault.Foreground(tcell.ColorAqua)
		if c, err := ch.RGBA(); err == nil {
			style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
		f.styles = append(f.styles, style.Bold(true))
	}

	f.run()
	f.speaker.Close()
	screen.Fini()
}

func (f *frontend) run() {
	ticker := time.NewTicker(time.Second / game.FrameRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(f.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !f.handleEvent(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			f.tick(now)
			f.draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent returns false when the player quits.
func (f *frontend) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		f.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			f.keys.press(controlLeft, now)
		case tcell.KeyRight:
			f.keys.press(controlRight, now)
		case tcell.KeyUp:
			f.keys.press(controlUp, now)
		case tcell.KeyDown:
			f.keys.press(controlDown, now)
		case tcell.KeyEnter:
			f.confirm(0)
		case tcell.KeyRune:
			return f.handleRune(ev.Rune(), now)
		}
	}
	return true
}

func (f *frontend) handleRune(r rune, now time.Time) bool {
	if controls := runeControls(r); controls != nil {
		for _, c := range controls {
			f.keys.press(c, now)
		}
		return true
	}

	switch r {
	case 'q':
		return false
	case 'b', 'B':
		f.world.PulseBoost()
	case ' ':
		f.world.Shoot()
	case 'r', 'R':
		f.confirm(0)
	default:
		if r >= '1' && r <= '9' {
			f.confirm(int(r - '1'))
		}
	}
	return true
}

// confirm starts a game with character i from the title screen, or returns
// to the title screen after a game over.
func (f *frontend) confirm(i int) {
	switch f.world.Session().Mode {
	case game.ModeTitle:
		if i < len(f.cfg.Characters) {
			f.keys.release()
			f.world.Start(i)
		}
	case game.ModeGameOver:
		f.world.Reset()
	}
}

func (f *frontend) tick(now time.Time) {
	if f.world.Session().Running() {
		f.world.SetInput(f.keys.input(now))
	}
	f.world.Step(1 / game.FrameRate)
	f.speaker.Handle(f.world.DrainEvents())
}
