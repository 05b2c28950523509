package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/starfall/game"
)

const (
	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	g4 = 392.00
	a4 = 440.00
	c5 = 523.25
	d5 = 587.33
	e5 = 659.25
	g5 = 783.99
	a5 = 880.00
	b5 = 987.77
	e6 = 1318.51

	c3 = 130.81
	f3 = 174.61
	g3 = 196.00
	a2 = 110.00
)

const musicBeat = 200 * time.Millisecond

// Music is an eight-bar chiptune loop: a square-wave lead over a triangle bass.
func Music() beep.Streamer {
	lead := Phrase(WaveSquare, musicBeat,
		Step{e5, 1}, Step{g5, 1}, Step{a5, 2}, Step{g5, 1}, Step{e5, 1}, Step{d5, 2},
		Step{c5, 1}, Step{d5, 1}, Step{e5, 2}, Step{d5, 1}, Step{c5, 1}, Step{a4, 2},
		Step{e5, 1}, Step{g5, 1}, Step{a5, 2}, Step{b5, 1}, Step{a5, 1}, Step{g5, 2},
		Step{e5, 1}, Step{d5, 1}, Step{c5, 2}, Step{0, 2}, Step{c5, 2},
	)
	bass := Phrase(WaveTriangle, musicBeat,
		Step{c3, 4}, Step{c3, 4},
		Step{f3, 4}, Step{a2, 4},
		Step{c3, 4}, Step{g3, 4},
		Step{f3, 4}, Step{c3, 4},
	)
	return beep.Take(SampleRate.N(32*musicBeat), beep.Mix(Volume(lead, 0.25), Volume(bass, 0.45)))
}

// Effect returns the clip for an event, or nil when the event is silent.
func Effect(kind game.EventKind) beep.Streamer {
	ms := time.Millisecond
	switch kind {
	case game.EventShot:
		return Volume(Note(WaveSquare, a5, 50*ms), 0.3)
	case game.EventStarCollected:
		return Phrase(WaveSine, 70*ms, Step{b5, 1}, Step{e6, 2})
	case game.EventBombHit:
		return Phrase(WaveSaw, 90*ms, Step{g3, 1}, Step{a2, 2})
	case game.EventBombDestroyed:
		return Volume(Note(WaveSquare, c4, 110*ms), 0.5)
	case game.EventShieldUp:
		return Phrase(WaveTriangle, 60*ms, Step{c5, 1}, Step{e5, 1}, Step{g5, 1}, Step{c5 * 2, 2})
	case game.EventShieldBlocked:
		return Note(WaveSine, e5, 90*ms)
	case game.EventShieldDown:
		return Phrase(WaveTriangle, 80*ms, Step{g4, 1}, Step{e4, 2})
	case game.EventGameOver:
		return Phrase(WaveSquare, 160*ms, Step{g4, 1}, Step{e4, 1}, Step{d4, 1}, Step{c4, 3})
	}
	return nil
}
