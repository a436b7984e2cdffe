package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds environment overrides; unset variables leave the config untouched
type Env struct {
	Config      string `env:"PETALS_CONFIG"`
	Debug       *bool  `env:"PETALS_DEBUG"`
	Mute        *bool  `env:"PETALS_MUTE"`
	FPS         *int   `env:"PETALS_FPS"`
	NoParticles *bool  `env:"PETALS_NO_PARTICLES"`
	Audio       string `env:"PETALS_AUDIO"`
}

// ParseEnv reads overrides from environ, or from the process environment when environ is nil
func ParseEnv(environ map[string]string) (Env, error) {
	var e Env
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ApplyEnv overlays environment overrides
func (c *Config) ApplyEnv(e Env) {
	if e.Debug != nil {
		c.Debug = *e.Debug
	}
	if e.Mute != nil {
		c.Audio.Mute = *e.Mute
	}
	if e.FPS != nil {
		c.FPS = *e.FPS
	}
	if e.NoParticles != nil {
		c.NoParticles = *e.NoParticles
	}
	if e.Audio != "" {
		c.Audio.Source = e.Audio
	}
}
