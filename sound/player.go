package sound

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/starfall/config"
	"github.com/plus3/starfall/game"
)

// Player turns game events into sound. Music starts with a round and is
// paused and rewound when it ends. Failures are logged and the game goes on
// silently. A nil *Player is valid and plays nothing.
type Player struct {
	music   music
	effects map[game.EventKind][]byte
	play    func(pcm []byte)
}

// music is the looping background track. *audio.Player implements it.
type music interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	Close() error
}

// NewPlayer renders every clip up front. It returns nil when audio is disabled.
func NewPlayer(cfg config.Audio) *Player {
	if !cfg.Enabled {
		return nil
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}

	p := &Player{
		effects: make(map[game.EventKind][]byte),
		play: func(pcm []byte) {
			sfx := ctx.NewPlayerFromBytes(pcm)
			sfx.SetVolume(cfg.SFXVolume)
			sfx.Play()
		},
	}

	pcm := Render(Music())
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	track, err := ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("sound: music unavailable: %v", err)
	} else {
		track.SetVolume(cfg.MusicVolume)
		p.music = track
	}

	for kind := game.EventStarted; kind <= game.EventShieldDown; kind++ {
		if clip := Effect(kind); clip != nil {
			p.effects[kind] = Render(clip)
		}
	}

	return p
}

// Handle reacts to one frame's events in order.
func (p *Player) Handle(events []game.Event) {
	if p == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case game.EventStarted:
			p.startMusic()
		case game.EventGameOver:
			p.stopMusic()
		}
		p.playEffect(ev.Kind)
	}
}

func (p *Player) startMusic() {
	if p.music == nil || p.music.IsPlaying() {
		return
	}
	p.music.Play()
}

func (p *Player) stopMusic() {
	if p.music == nil {
		return
	}
	p.music.Pause()
	if err := p.music.Rewind(); err != nil {
		log.Printf("sound: rewinding music: %v", err)
	}
}

func (p *Player) playEffect(kind game.EventKind) {
	pcm, ok := p.effects[kind]
	if !ok {
		return
	}
	p.play(pcm)
}

// Close stops the music.
func (p *Player) Close() {
	if p == nil || p.music == nil {
		return
	}
	p.music.Pause()
	if err := p.music.Close(); err != nil {
		log.Printf("sound: closing music: %v", err)
	}
}
