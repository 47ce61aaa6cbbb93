package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Motion holds the engine tunables that would otherwise be ambient constants.
type Motion struct {
	VelocityScale     float64       `env:"SCROLLSIGNALS_VELOCITY_SCALE"      envDefault:"10"`
	FPS               int           `env:"SCROLLSIGNALS_FPS"                 envDefault:"60"`
	PositionStiffness float64       `env:"SCROLLSIGNALS_POSITION_STIFFNESS"  envDefault:"300"`
	PositionDamping   float64       `env:"SCROLLSIGNALS_POSITION_DAMPING"    envDefault:"40"`
	PositionMass      float64       `env:"SCROLLSIGNALS_POSITION_MASS"       envDefault:"0.1"`
	RestDelta         float64       `env:"SCROLLSIGNALS_REST_DELTA"          envDefault:"0.01"`
	RestSpeed         float64       `env:"SCROLLSIGNALS_REST_SPEED"          envDefault:"0.01"`
	MaxFrameStep      time.Duration `env:"SCROLLSIGNALS_MAX_FRAME_STEP"      envDefault:"64ms"`
	Verbose           bool          `env:"SCROLLSIGNALS_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Motion, error) {
	var cfg Motion
	if err := ParseEnv(&cfg); err != nil {
		return Motion{}, err
	}
	if cfg.FPS <= 0 {
		return Motion{}, fmt.Errorf("parse env: SCROLLSIGNALS_FPS must be positive, got %d", cfg.FPS)
	}
	return cfg, nil
}
