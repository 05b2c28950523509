package sound

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/starfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOscillatorRange(t *testing.T) {
	for _, wave := range []Wave{WaveSine, WaveSquare, WaveTriangle, WaveSaw} {
		samples := make([][2]float64, 500)
		n, ok := Tone(wave, 440).Stream(samples)
		require.True(t, ok)
		require.Equal(t, 500, n)

		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("wave %d: sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Errorf("wave %d: channels differ at %d", wave, i)
			}
		}
	}
}

func TestNoteLengthAndEnvelope(t *testing.T) {
	d := 100 * time.Millisecond
	pcm := Render(Note(WaveSquare, 440, d))

	assert.Equal(t, SampleRate.N(d)*4, len(pcm), "16-bit stereo")

	first := int16(binary.LittleEndian.Uint16(pcm[0:2]))
	assert.Zero(t, first, "attack starts from silence")
}

func TestRestIsSilent(t *testing.T) {
	pcm := Render(beep.Take(100, Tone(WaveSquare, 0)))
	require.Len(t, pcm, 400)
	for _, b := range pcm {
		if b != 0 {
			t.Fatal("rest produced sound")
		}
	}
}

func TestPhraseDuration(t *testing.T) {
	beat := 50 * time.Millisecond
	pcm := Render(Phrase(WaveTriangle, beat, Step{440, 1}, Step{0, 2}, Step{880, 1}))
	assert.Equal(t, SampleRate.N(beat)*4*4, len(pcm))
}

func TestMusicLoopLength(t *testing.T) {
	pcm := Render(Music())
	assert.Equal(t, SampleRate.N(32*musicBeat)*4, len(pcm), "lead and bass are both 32 beats")
}

func TestEffects(t *testing.T) {
	audible := []game.EventKind{
		game.EventShot, game.EventStarCollected, game.EventBombHit, game.EventBombDestroyed,
		game.EventShieldUp, game.EventShieldBlocked, game.EventShieldDown, game.EventGameOver,
	}
	for _, kind := range audible {
		t.Run(kind.String(), func(t *testing.T) {
			clip := Effect(kind)
			require.NotNil(t, clip)
			pcm := Render(clip)
			assert.NotEmpty(t, pcm)
			assert.Less(t, len(pcm), SampleRate.N(time.Second)*4)
		})
	}

	assert.Nil(t, Effect(game.EventStarted), "music covers the start")
}

func TestVolumeSilent(t *testing.T) {
	pcm := Render(Volume(Note(WaveSine, 440, 10*time.Millisecond), 0))
	for _, b := range pcm {
		if b != 0 {
			t.Fatal("zero volume produced sound")
		}
	}
}
