package sound

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
)

// Speaker plays the same clips straight through beep's speaker, for
// frontends that run without an Ebitengine audio context. A nil *Speaker is
// valid and plays nothing.
type Speaker struct {
	mixer *beep.Mixer
	music *beep.Ctrl
	track beep.StreamSeeker
	sfx   float64
}

// NewSpeaker opens the default output device. It returns nil when audio is
// disabled or the device cannot be opened.
func NewSpeaker(cfg config.Audio) *Speaker {
	if !cfg.Enabled {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("sound: no audio device: %v", err)
		return nil
	}

	s := newSpeaker(cfg)
	speaker.Play(s.mixer)
	return s
}

// newSpeaker builds the mixer without touching the output device.
func newSpeaker(cfg config.Audio) *Speaker {
	buf := beep.NewBuffer(beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2})
	buf.Append(Music())
	track := buf.Streamer(0, buf.Len())

	s := &Speaker{
		mixer: &beep.Mixer{},
		music: &beep.Ctrl{Streamer: Volume(beep.Loop(-1, track), cfg.MusicVolume), Paused: true},
		track: track,
		sfx:   cfg.SFXVolume,
	}
	s.mixer.Add(s.music)
	return s
}

// Handle reacts to one frame's events in order.
func (s *Speaker) Handle(events []game.Event) {
	if s == nil || len(events) == 0 {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()
	s.apply(events)
}

// apply must run with the speaker locked.
func (s *Speaker) apply(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventStarted:
			s.music.Paused = false
		case game.EventGameOver:
			s.music.Paused = true
			if err := s.track.Seek(0); err != nil {
				log.Printf("sound: rewinding music: %v", err)
			}
		}
		if clip := Effect(ev.Kind); clip != nil {
			s.mixer.Add(Volume(clip, s.sfx))
		}
	}
}

func (s *Speaker) Close() {
	if s == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
