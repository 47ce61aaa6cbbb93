package motion

import (
	"log"
	"os"

	"github.com/delaneyj/scrollsignals/config"
	"github.com/delaneyj/scrollsignals/scroll"
	"github.com/delaneyj/scrollsignals/spring"
)

// DefaultPositionSpring is the over-damped spring that smooths scroll position.
var DefaultPositionSpring = spring.Config{
	Stiffness: 300,
	Damping:   40,
	Mass:      0.1,
}

type Config struct {
	VelocityScale  float64
	PositionSpring spring.Config
	// Logger receives lifecycle messages when set.
	Logger *log.Logger
}

func DefaultConfig() Config {
	return Config{
		VelocityScale:  scroll.DefaultVelocityScale,
		PositionSpring: DefaultPositionSpring,
	}
}

func (c Config) withDefaults() Config {
	if c.VelocityScale == 0 {
		c.VelocityScale = scroll.DefaultVelocityScale
	}
	if c.PositionSpring == (spring.Config{}) {
		c.PositionSpring = DefaultPositionSpring
	}
	c.PositionSpring = c.PositionSpring.WithDefaults()
	return c
}

// ConfigFromEnv builds a Config from SCROLLSIGNALS_* variables.
func ConfigFromEnv() (Config, error) {
	env, err := config.Load()
	if err != nil {
		return Config{}, err
	}
	return FromMotionConfig(env), nil
}

func FromMotionConfig(env config.Motion) Config {
	cfg := Config{
		VelocityScale: env.VelocityScale,
		PositionSpring: spring.Config{
			Stiffness: env.PositionStiffness,
			Damping:   env.PositionDamping,
			Mass:      env.PositionMass,
			RestDelta: env.RestDelta,
			RestSpeed: env.RestSpeed,
			MaxStep:   env.MaxFrameStep,
		},
	}
	if env.Verbose {
		cfg.Logger = log.New(os.Stderr, "scrollsignals: ", log.LstdFlags)
	}
	return cfg
}
