package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lixenwraith/petals/audio"
	"github.com/lixenwraith/petals/gate"
	"github.com/lixenwraith/petals/media"
	"github.com/lixenwraith/petals/navigation"
	"github.com/lixenwraith/petals/particle"
	"github.com/lixenwraith/petals/section"
	"github.com/lixenwraith/petals/vmath"
)

const maxParticles = 5000

// Validate checks the configuration against the registered motion laws
func (c *Config) Validate(reg *particle.Registry) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if _, err := gate.NewValidator(c.Gate.Digest); err != nil {
		fail("gate: %w", err)
	}
	if _, err := c.Sequence(); err != nil {
		fail("order: %w", err)
	}
	for id, s := range c.Sections {
		if _, err := ParseColor(s.Theme); err != nil {
			fail("section %s: %w", id, err)
		}
	}

	check := func(name string, p Particles) {
		if _, err := reg.Lookup(p.Law); err != nil {
			fail("particles %s: %w", name, err)
		}
		if p.Count < 1 || p.Count > maxParticles {
			fail("particles %s: count %d outside 1..%d", name, p.Count, maxParticles)
		}
		if p.Duration <= 0 {
			fail("particles %s: duration must be positive", name)
		}
		if _, err := ParseColor(p.Color); err != nil {
			fail("particles %s: %w", name, err)
		}
		if p.Texture != "" {
			if _, ok := c.Textures[p.Texture]; !ok {
				fail("particles %s: texture %q not configured", name, p.Texture)
			}
		}
	}
	for id, p := range c.Particles {
		check(id, p)
	}
	check("fallback", c.Fallback)

	for name, t := range c.Textures {
		if len(t.Sources) == 0 || t.Cols < 1 || t.Rows < 1 {
			fail("texture %s: needs sources and a positive size", name)
		}
	}

	t := c.Timing
	if t.Fade <= 0 || t.Progress <= 0 {
		fail("timing: fade and progress durations must be positive")
	}
	if t.Stagger < 0 || t.UnlockDelay < 0 || t.OverlayFadeIn < 0 || t.OverlayFadeOut < 0 || t.OverlayHold < 0 {
		fail("timing: durations must not be negative")
	}
	if _, ok := vmath.EaseByName(t.FadeEase); !ok {
		fail("timing: unknown ease %q", t.FadeEase)
	}
	if _, ok := vmath.EaseByName(t.ProgressEase); !ok {
		fail("timing: unknown ease %q", t.ProgressEase)
	}
	if t.OverlayOpacity < 0 || t.OverlayOpacity > 1 {
		fail("timing: overlay opacity %.2f outside 0..1", t.OverlayOpacity)
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		fail("audio: volume %.2f outside 0..1", c.Audio.Volume)
	}
	if c.FPS < 1 || c.FPS > 240 {
		fail("fps %d outside 1..240", c.FPS)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Sequence builds the section order
func (c *Config) Sequence() (*section.Sequence, error) {
	ids := make([]section.ID, len(c.Order))
	for i, s := range c.Order {
		ids[i] = section.ID(s)
	}
	return section.NewSequence(ids...)
}

// Validator builds the gate validator
func (c *Config) Validator() (*gate.Validator, error) {
	return gate.NewValidator(c.Gate.Digest)
}

// Theme returns the theme color of a section, zero if unset
func (c *Config) Theme(id section.ID) color.RGBA {
	col, _ := ParseColor(c.Sections[string(id)].Theme)
	return col
}

// ParticleTable builds the per-section particle table
func (c *Config) ParticleTable() (*particle.Table, error) {
	fallback, err := particleSpec(c.Fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback particles: %w", err)
	}
	t := particle.NewTable(fallback)
	for id, p := range c.Particles {
		spec, err := particleSpec(p)
		if err != nil {
			return nil, fmt.Errorf("particles %s: %w", id, err)
		}
		t.Set(section.ID(id), spec)
	}
	return t, nil
}

func particleSpec(p Particles) (particle.Spec, error) {
	col, err := ParseColor(p.Color)
	if err != nil {
		return particle.Spec{}, err
	}
	return particle.Spec{
		Law:      p.Law,
		Count:    p.Count,
		Duration: p.Duration,
		Glyphs:   []rune(p.Glyphs),
		Color:    col,
		Texture:  p.Texture,
	}, nil
}

// OverlaySources returns the ordered overlay sources per section
func (c *Config) OverlaySources() map[section.ID][]string {
	out := make(map[section.ID][]string, len(c.Overlays))
	for id, srcs := range c.Overlays {
		out[section.ID(id)] = srcs
	}
	return out
}

// TextureSpecs returns the shared texture specs by name
func (c *Config) TextureSpecs() map[string]media.TextureSpec {
	out := make(map[string]media.TextureSpec, len(c.Textures))
	for name, t := range c.Textures {
		out[name] = media.TextureSpec{Sources: t.Sources, Cols: t.Cols, Rows: t.Rows}
	}
	return out
}

// OverlayConfig returns overlay timing
func (c *Config) OverlayConfig() media.OverlayConfig {
	return media.OverlayConfig{
		FadeIn:     c.Timing.OverlayFadeIn,
		FadeOut:    c.Timing.OverlayFadeOut,
		HoldStill:  c.Timing.OverlayHold,
		MaxOpacity: c.Timing.OverlayOpacity,
	}
}

// NavigationConfig returns choreography timing
func (c *Config) NavigationConfig() navigation.Config {
	ease, _ := vmath.EaseByName(c.Timing.FadeEase)
	return navigation.Config{
		Fade:     c.Timing.Fade,
		FadeEase: ease,
		Stagger:  c.Timing.Stagger,
	}
}

// ProgressEase returns the progress bar ease
func (c *Config) ProgressEase() vmath.EaseFunc {
	ease, ok := vmath.EaseByName(c.Timing.ProgressEase)
	if !ok {
		return vmath.Power2Out
	}
	return ease
}

// AudioConfig returns the ambient loop settings
func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		Source:  c.Audio.Source,
		Volume:  c.Audio.Volume,
		FadeIn:  c.Audio.FadeIn,
		FadeOut: c.Audio.FadeOut,
		Muted:   c.Audio.Mute,
	}
}
