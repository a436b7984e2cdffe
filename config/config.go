// Package config holds every tunable of the experience: gate digest,
// section order and content, choreography timing, particle populations,
// overlay and texture sources, and audio. Defaults reproduce the original
// site; a YAML file and environment variables layer on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the full runtime configuration
type Config struct {
	Gate      Gate                 `yaml:"gate"`
	Order     []string             `yaml:"order"`
	Sections  map[string]Section   `yaml:"sections"`
	Timing    Timing               `yaml:"timing"`
	Particles map[string]Particles `yaml:"particles"`
	Fallback  Particles            `yaml:"fallback_particles"`
	Overlays  map[string][]string  `yaml:"overlays"`
	Textures  map[string]Texture   `yaml:"textures"`
	Audio     Audio                `yaml:"audio"`

	FPS         int  `yaml:"fps"`
	NoParticles bool `yaml:"no_particles"`
	Debug       bool `yaml:"debug"`
}

// Gate configures the passphrase prompt
type Gate struct {
	// Digest is the lowercase hex SHA-256 of the passphrase
	Digest string `yaml:"digest"`
	Error  string `yaml:"error"`
}

// Section is the content of one section container
type Section struct {
	Title string   `yaml:"title"`
	Body  []string `yaml:"body"`
	Hint  string   `yaml:"hint"`
	Theme string   `yaml:"theme"`
}

// Timing holds choreography durations and ease names
type Timing struct {
	Fade           time.Duration `yaml:"fade"`
	FadeEase       string        `yaml:"fade_ease"`
	Stagger        time.Duration `yaml:"stagger"`
	UnlockDelay    time.Duration `yaml:"unlock_delay"`
	Progress       time.Duration `yaml:"progress"`
	ProgressEase   string        `yaml:"progress_ease"`
	OverlayFadeIn  time.Duration `yaml:"overlay_fade_in"`
	OverlayFadeOut time.Duration `yaml:"overlay_fade_out"`
	OverlayHold    time.Duration `yaml:"overlay_hold"`
	OverlayOpacity float64       `yaml:"overlay_opacity"`
}

// Particles configures the population of one section's transition
type Particles struct {
	Law      string        `yaml:"law"`
	Count    int           `yaml:"count"`
	Duration time.Duration `yaml:"duration"`
	// Glyphs are picked by heading; empty color means color emoji
	Glyphs  string `yaml:"glyphs"`
	Color   string `yaml:"color"`
	Texture string `yaml:"texture"`
}

// Texture is a shared particle texture built from the first working source
type Texture struct {
	Sources []string `yaml:"sources"`
	Cols    int      `yaml:"cols"`
	Rows    int      `yaml:"rows"`
}

// Audio configures the ambient loop
type Audio struct {
	// Source is an optional WAV file; a synthesized pad plays otherwise
	Source  string        `yaml:"source"`
	Volume  float64       `yaml:"volume"`
	FadeIn  time.Duration `yaml:"fade_in"`
	FadeOut time.Duration `yaml:"fade_out"`
	Mute    bool          `yaml:"mute"`
}

// Load reads a YAML file layered over Default
// Keys present in the file replace the default value wholesale; map entries
// are merged per key
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseColor parses a "#rrggbb" color; empty yields the zero color
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
