// Package config loads gameplay and runtime settings from TOML. The embedded
// defaults are decoded first; a user file only needs the keys it overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultTOML string

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Duration is a time.Duration written as a string ("300ms", "5s") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	Window     Window      `toml:"window"`
	Player     Player      `toml:"player"`
	Bullet     Bullet      `toml:"bullet"`
	Spawn      Spawn       `toml:"spawn"`
	Shield     Shield      `toml:"shield"`
	Audio      Audio       `toml:"audio"`
	Characters []Character `toml:"characters"`
}

type Window struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
	Resizable  bool   `toml:"resizable"`
}

type Player struct {
	Size            float64  `toml:"size"`
	Speed           float64  `toml:"speed"`
	Lives           int      `toml:"lives"`
	BoostFactor     float64  `toml:"boost_factor"`
	BoostPulse      Duration `toml:"boost_pulse"`
	StartOffset     float64  `toml:"start_offset"`
	HitRadiusFactor float64  `toml:"hit_radius_factor"`
}

type Bullet struct {
	Radius float64 `toml:"radius"`
	Speed  float64 `toml:"speed"`
	CullY  float64 `toml:"cull_y"`
}

// Spawner describes one periodic spawn: every Interval, with probability
// Chance, an entity of Radius appears at x in [Margin, W-Margin) falling at
// a speed in [MinSpeed, MaxSpeed).
type Spawner struct {
	Interval Duration `toml:"interval"`
	Chance   float64  `toml:"chance"`
	Radius   float64  `toml:"radius"`
	Margin   float64  `toml:"margin"`
	MinSpeed float64  `toml:"min_speed"`
	MaxSpeed float64  `toml:"max_speed"`
}

type Spawn struct {
	Bomb   Spawner `toml:"bomb"`
	Star   Spawner `toml:"star"`
	Shield Spawner `toml:"shield"`
}

type Shield struct {
	Duration Duration `toml:"duration"`
}

type Audio struct {
	Enabled     bool    `toml:"enabled"`
	MusicVolume float64 `toml:"music_volume"`
	SFXVolume   float64 `toml:"sfx_volume"`
}

// Character is a selectable player. Image is an optional PNG path; without
// one the sprite is drawn procedurally in Color.
type Character struct {
	Name  string `toml:"name"`
	Image string `toml:"image"`
	Color string `toml:"color"`
}

// RGBA parses the character colour.
func (c Character) RGBA() (color.RGBA, error) {
	return ParseHexColor(c.Color)
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg := &Config{}
	if _, err := toml.Decode(defaultTOML, cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// Parse decodes a TOML document over the embedded defaults and validates
// the result. A document that lists characters replaces the default roster.
func Parse(doc string) (*Config, error) {
	cfg := Default()
	defaults := cfg.Characters
	cfg.Characters = nil

	md, err := toml.Decode(doc, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	warnUndecoded(md)
	if len(cfg.Characters) == 0 {
		cfg.Characters = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path over the embedded defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(string(doc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func warnUndecoded(md toml.MetaData) {
	for _, key := range md.Undecoded() {
		log.Printf("config: ignoring unknown key %q", key.String())
	}
}

// Validate reports every problem at once, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Player.Size > 0, "player.size must be positive")
	check(c.Player.Speed > 0, "player.speed must be positive")
	check(c.Player.Lives > 0, "player.lives must be positive")
	check(c.Player.BoostFactor >= 1, "player.boost_factor must be at least 1")
	check(c.Player.HitRadiusFactor > 0, "player.hit_radius_factor must be positive")
	check(c.Bullet.Radius > 0 && c.Bullet.Speed > 0, "bullet radius and speed must be positive")
	check(c.Shield.Duration.Duration > 0, "shield.duration must be positive")
	check(c.Audio.MusicVolume >= 0 && c.Audio.MusicVolume <= 1, "audio.music_volume must be within [0, 1]")
	check(c.Audio.SFXVolume >= 0 && c.Audio.SFXVolume <= 1, "audio.sfx_volume must be within [0, 1]")

	for name, s := range map[string]Spawner{"bomb": c.Spawn.Bomb, "star": c.Spawn.Star, "shield": c.Spawn.Shield} {
		check(s.Interval.Duration > 0, "spawn.%s.interval must be positive", name)
		check(s.Chance >= 0 && s.Chance <= 1, "spawn.%s.chance must be within [0, 1]", name)
		check(s.Radius > 0, "spawn.%s.radius must be positive", name)
		check(s.MinSpeed > 0 && s.MinSpeed <= s.MaxSpeed, "spawn.%s speed range [%g, %g)", name, s.MinSpeed, s.MaxSpeed)
		check(s.Margin >= 0, "spawn.%s.margin must not be negative", name)
	}

	check(len(c.Characters) > 0, "at least one character is required")
	for i, ch := range c.Characters {
		check(ch.Name != "", "characters[%d].name is empty", i)
		if _, err := ch.RGBA(); err != nil {
			errs = append(errs, fmt.Errorf("%w: characters[%d].color: %v", ErrInvalid, i, err))
		}
	}

	return errors.Join(errs...)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
