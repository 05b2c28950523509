package sound

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is shared by every generated clip and the audio context.
const SampleRate = beep.SampleRate(44100)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// oscillator produces an endless periodic wave in [-1, 1].
type oscillator struct {
	wave  Wave
	step  float64
	phase float64
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case WaveSquare:
			if o.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			v = 2*o.phase - 1
		default:
			v = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// Tone returns an endless wave at freq. A non-positive freq is silence.
func Tone(wave Wave, freq float64) beep.Streamer {
	if freq <= 0 {
		return generators.Silence(-1)
	}
	if wave == WaveSine {
		s, err := generators.SineTone(SampleRate, freq)
		if err != nil {
			log.Printf("sound: sine %.1f Hz: %v", freq, err)
			return generators.Silence(-1)
		}
		return s
	}
	return &oscillator{wave: wave, step: freq / float64(SampleRate)}
}

// envelope fades a clip in over attack samples and out over its last release samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, math.Max(float64(left)/float64(e.release), 0))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Note is a clip of d at freq with a short attack and a release over the last third.
func Note(wave Wave, freq float64, d time.Duration) beep.Streamer {
	total := SampleRate.N(d)
	return &envelope{
		streamer: beep.Take(total, Tone(wave, freq)),
		total:    total,
		attack:   SampleRate.N(4 * time.Millisecond),
		release:  total / 3,
	}
}

// Volume scales a streamer linearly; zero is silent.
func Volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Phrase plays notes back to back, each lasting beats × beat.
func Phrase(wave Wave, beat time.Duration, notes ...Step) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = Note(wave, n.Freq, time.Duration(float64(beat)*n.Beats))
	}
	return beep.Seq(streamers...)
}

// Step is one note of a phrase. Freq 0 is a rest.
type Step struct {
	Freq  float64
	Beats float64
}

// Render drains s into signed 16-bit little-endian stereo PCM, the format
// Ebitengine's audio players read. Samples are clipped to [-1, 1].
func Render(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 1024)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}
