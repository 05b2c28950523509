package sound

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMusic struct {
	playing   bool
	plays     int
	rewinds   int
	rewindErr error
	closed    bool
}

func (m *fakeMusic) Play()           { m.playing = true; m.plays++ }
func (m *fakeMusic) Pause()          { m.playing = false }
func (m *fakeMusic) IsPlaying() bool { return m.playing }
func (m *fakeMusic) Close() error    { m.closed = true; return nil }

func (m *fakeMusic) Rewind() error {
	m.rewinds++
	return m.rewindErr
}

func newTestPlayer(m *fakeMusic) (*Player, *[]int) {
	var played []int
	p := &Player{
		music: m,
		effects: map[game.EventKind][]byte{
			game.EventShot:     {1},
			game.EventGameOver: {1, 2},
		},
		play: func(pcm []byte) { played = append(played, len(pcm)) },
	}
	return p, &played
}

func TestPlayerHandle(t *testing.T) {
	tests := []struct {
		name        string
		playing     bool
		events      []game.Event
		wantPlaying bool
		wantPlays   int
		wantRewinds int
		wantEffects []int
	}{
		{
			name:        "start plays music",
			events:      []game.Event{{Kind: game.EventStarted}},
			wantPlaying: true,
			wantPlays:   1,
		},
		{
			name:        "start while playing keeps the position",
			playing:     true,
			events:      []game.Event{{Kind: game.EventStarted}},
			wantPlaying: true,
		},
		{
			name:        "game over pauses and rewinds",
			playing:     true,
			events:      []game.Event{{Kind: game.EventGameOver, Score: 4}},
			wantRewinds: 1,
			wantEffects: []int{2},
		},
		{
			name:        "effects play in event order",
			playing:     true,
			events:      []game.Event{{Kind: game.EventShot}, {Kind: game.EventStarCollected}, {Kind: game.EventShot}},
			wantPlaying: true,
			wantEffects: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMusic{playing: tt.playing}
			p, played := newTestPlayer(m)

			p.Handle(tt.events)

			assert.Equal(t, tt.wantPlaying, m.playing)
			assert.Equal(t, tt.wantPlays, m.plays)
			assert.Equal(t, tt.wantRewinds, m.rewinds)
			assert.Equal(t, tt.wantEffects, *played)
		})
	}
}

func TestPlayerRewindFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&logs)
	defer log.SetOutput(prev)

	m := &fakeMusic{playing: true, rewindErr: errors.New("device lost")}
	p, played := newTestPlayer(m)

	p.Handle([]game.Event{{Kind: game.EventGameOver}, {Kind: game.EventStarted}})

	assert.Contains(t, logs.String(), "device lost")
	assert.True(t, m.playing, "music restarts after a failed rewind")
	assert.Equal(t, []int{2}, *played)

	p.Close()
	assert.True(t, m.closed)
}

func TestPlayerWithoutMusic(t *testing.T) {
	p := &Player{effects: map[game.EventKind][]byte{}}
	assert.NotPanics(t, func() {
		p.Handle([]game.Event{{Kind: game.EventStarted}, {Kind: game.EventGameOver}})
		p.Close()
	})
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := NewPlayer(config.Audio{Enabled: false, MusicVolume: 0.5})
	assert.Nil(t, p)

	assert.NotPanics(t, func() {
		p.Handle([]game.Event{{Kind: game.EventStarted}, {Kind: game.EventGameOver}})
		p.Close()
	})
}

func TestSpeakerMusicFollowsSession(t *testing.T) {
	s := newSpeaker(config.Audio{Enabled: true, MusicVolume: 0.5, SFXVolume: 0.5})
	require.True(t, s.music.Paused)
	require.Equal(t, 1, s.mixer.Len())

	s.apply([]game.Event{{Kind: game.EventStarted}})
	assert.False(t, s.music.Paused)

	samples := make([][2]float64, 512)
	s.mixer.Stream(samples)
	assert.Equal(t, 512, s.track.Position())

	s.apply([]game.Event{{Kind: game.EventShot}, {Kind: game.EventGameOver}})
	assert.True(t, s.music.Paused)
	assert.Zero(t, s.track.Position())
	assert.Equal(t, 3, s.mixer.Len(), "music plus two effects")

	var nilSpeaker *Speaker
	assert.NotPanics(t, func() { nilSpeaker.Handle([]game.Event{{Kind: game.EventStarted}}) })
}
