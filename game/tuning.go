package game

import (
	"time"

	"github.com/plus3/starfall/config"
)

const (
	// SpawnY is where falling entities appear, above the visible area.
	SpawnY = -30.0
	// CullMargin is how far below the arena falling entities are removed.
	CullMargin = 40.0
	// GradientStep advances the background animation once per frame.
	GradientStep = 0.008
	// FrameRate is the rate speeds are expressed against.
	FrameRate = 60.0
)

// Spawner is a periodic spawn rule for one kind of falling entity.
type Spawner struct {
	Interval time.Duration
	Chance   float64
	Radius   float64
	Margin   float64
	MinSpeed float64
	MaxSpeed float64
}

// Tuning holds every gameplay constant.
type Tuning struct {
	PlayerSize      float64
	PlayerSpeed     float64
	Lives           int
	BoostFactor     float64
	BoostPulse      time.Duration
	StartOffset     float64
	HitRadiusFactor float64

	BulletRadius float64
	BulletSpeed  float64
	BulletCullY  float64

	Bomb         Spawner
	Star         Spawner
	ShieldPickup Spawner

	ShieldDuration time.Duration
}

func spawnerFrom(s config.Spawner) Spawner {
	return Spawner{
		Interval: s.Interval.Duration,
		Chance:   s.Chance,
		Radius:   s.Radius,
		Margin:   s.Margin,
		MinSpeed: s.MinSpeed,
		MaxSpeed: s.MaxSpeed,
	}
}

// TuningFrom copies the gameplay sections of a configuration.
func TuningFrom(cfg *config.Config) Tuning {
	return Tuning{
		PlayerSize:      cfg.Player.Size,
		PlayerSpeed:     cfg.Player.Speed,
		Lives:           cfg.Player.Lives,
		BoostFactor:     cfg.Player.BoostFactor,
		BoostPulse:      cfg.Player.BoostPulse.Duration,
		StartOffset:     cfg.Player.StartOffset,
		HitRadiusFactor: cfg.Player.HitRadiusFactor,

		BulletRadius: cfg.Bullet.Radius,
		BulletSpeed:  cfg.Bullet.Speed,
		BulletCullY:  cfg.Bullet.CullY,

		Bomb:         spawnerFrom(cfg.Spawn.Bomb),
		Star:         spawnerFrom(cfg.Spawn.Star),
		ShieldPickup: spawnerFrom(cfg.Spawn.Shield),

		ShieldDuration: cfg.Shield.Duration.Duration,
	}
}

// DefaultTuning returns the tuning of the embedded default configuration.
func DefaultTuning() Tuning {
	return TuningFrom(config.Default())
}

// HitRadius is the player's collision radius.
func (t *Tuning) HitRadius() float64 {
	return t.PlayerSize * t.HitRadiusFactor
}
