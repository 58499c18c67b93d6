package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"
)

// ErrInvalidConfig is wrapped by every SimConfig validation failure
var ErrInvalidConfig = errors.New("invalid config")

// SimConfig holds all simulation tuning. Times are in seconds unless the
// field name says otherwise.
type SimConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	TickRate        int `json:"tick_rate"`          // fixed steps per second
	MaxFrameDeltaMs int `json:"max_frame_delta_ms"` // catch-up clamp per callback
	RenderEvery     int `json:"render_every"`       // 1 = render every callback

	Lives        int     `json:"lives"`
	PlayerWidth  float64 `json:"player_width"`
	PlayerHeight float64 `json:"player_height"`
	PlayerSpeed  float64 `json:"player_speed"` // pixels/s

	FireCooldown      float64 `json:"fire_cooldown"`
	RapidFireCooldown float64 `json:"rapid_fire_cooldown"`
	ProjectileSpeed   float64 `json:"projectile_speed"`
	ProjectileRadius  float64 `json:"projectile_radius"`
	MaxProjectiles    int     `json:"max_projectiles"`

	SpawnInterval    float64 `json:"spawn_interval"`
	ObstacleMinSpeed float64 `json:"obstacle_min_speed"`
	ObstacleMaxSpeed float64 `json:"obstacle_max_speed"`
	FragmentMinSpeed float64 `json:"fragment_min_speed"`
	FragmentMaxSpeed float64 `json:"fragment_max_speed"`

	LevelSpawnBase int     `json:"level_spawn_base"` // level quota is base * (level+1)
	SettleDelay    float64 `json:"settle_delay"`
	ClearCeiling   float64 `json:"clear_ceiling"`

	CollectibleInterval float64 `json:"collectible_interval"`
	CollectibleChance   float64 `json:"collectible_chance"`
	CollectibleSize     float64 `json:"collectible_size"`
	CollectibleSpeed    float64 `json:"collectible_speed"`

	PowerupDurations map[Capability]float64 `json:"powerup_durations"`
}

// DefaultSimConfig returns the tuning used when no config file is given
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Width:  800,
		Height: 600,

		TickRate:        60,
		MaxFrameDeltaMs: 250,
		RenderEvery:     1,

		Lives:        3,
		PlayerWidth:  32,
		PlayerHeight: 24,
		PlayerSpeed:  320,

		FireCooldown:      0.25,
		RapidFireCooldown: 0.1,
		ProjectileSpeed:   600,
		ProjectileRadius:  3,
		MaxProjectiles:    200,

		SpawnInterval:    1.0,
		ObstacleMinSpeed: 60,
		ObstacleMaxSpeed: 140,
		FragmentMinSpeed: 40,
		FragmentMaxSpeed: 110,

		LevelSpawnBase: 20,
		SettleDelay:    1.5,
		ClearCeiling:   5.0,

		CollectibleInterval: 8.0,
		CollectibleChance:   0.6,
		CollectibleSize:     20,
		CollectibleSpeed:    90,

		PowerupDurations: map[Capability]float64{
			CapShield:     5,
			CapDoubleFire: 8,
			CapRapidFire:  6,
		},
	}
}

// Step returns the fixed timestep duration
func (c SimConfig) Step() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// MaxFrameDelta returns the per-callback clamp
func (c SimConfig) MaxFrameDelta() time.Duration {
	return time.Duration(c.MaxFrameDeltaMs) * time.Millisecond
}

// PowerupTicks converts a capability's duration to fixed-step ticks.
// Unknown capabilities return 0.
func (c SimConfig) PowerupTicks(kind Capability) int {
	secs, ok := c.PowerupDurations[kind]
	if !ok {
		return 0
	}
	return int(math.Round(secs * float64(c.TickRate)))
}

// Bounds returns the playfield as a box
func (c SimConfig) Bounds() Rect {
	return Rect{W: c.Width, H: c.Height}
}

// Validate rejects tuning the simulation cannot run with
func (c SimConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: playfield %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalidConfig, c.TickRate)
	case c.MaxFrameDeltaMs <= 0:
		return fmt.Errorf("%w: max_frame_delta_ms %d", ErrInvalidConfig, c.MaxFrameDeltaMs)
	case c.RenderEvery <= 0:
		return fmt.Errorf("%w: render_every %d", ErrInvalidConfig, c.RenderEvery)
	case c.Lives <= 0:
		return fmt.Errorf("%w: lives %d", ErrInvalidConfig, c.Lives)
	case c.PlayerWidth <= 0 || c.PlayerHeight <= 0 || c.PlayerWidth > c.Width || c.PlayerHeight > c.Height:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalidConfig, c.PlayerWidth, c.PlayerHeight)
	case c.LevelSpawnBase <= 0:
		return fmt.Errorf("%w: level_spawn_base %d", ErrInvalidConfig, c.LevelSpawnBase)
	case c.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn_interval %v", ErrInvalidConfig, c.SpawnInterval)
	case c.ObstacleMinSpeed > c.ObstacleMaxSpeed || c.FragmentMinSpeed > c.FragmentMaxSpeed:
		return fmt.Errorf("%w: speed range", ErrInvalidConfig)
	case c.SettleDelay < 0 || c.ClearCeiling <= 0:
		return fmt.Errorf("%w: settle_delay %v clear_ceiling %v", ErrInvalidConfig, c.SettleDelay, c.ClearCeiling)
	}
	for kind, secs := range c.PowerupDurations {
		if !kind.Known() || secs < 0 {
			return fmt.Errorf("%w: powerup %q duration %v", ErrInvalidConfig, kind, secs)
		}
	}
	return nil
}

// LoadSimConfig reads a JSON file over the defaults. Fields missing from
// the file keep their default values.
func LoadSimConfig(path string) (SimConfig, error) {
	cfg := DefaultSimConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
