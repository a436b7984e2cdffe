// Package particle runs the decorative particle population that accompanies
// each section transition. A particle's visual state is a pure function of
// its index, the session's elapsed fraction, the direction and the viewport,
// so frames can be recomputed, seeked or played backwards without carrying
// velocity state between frames.
package particle

import (
	"image/color"
	"time"

	"github.com/lixenwraith/petals/core"
	"github.com/lixenwraith/petals/media"
	"github.com/lixenwraith/petals/section"
)

// Viewport is the drawable area in cells
// Particle coordinates are centered on the viewport with +Y pointing down
type Viewport struct {
	Width  float64
	Height float64
}

// HalfW returns half the viewport width
func (v Viewport) HalfW() float64 { return v.Width / 2 }

// HalfH returns half the viewport height
func (v Viewport) HalfH() float64 { return v.Height / 2 }

// VisualState is everything the renderer needs to draw one particle
type VisualState struct {
	X, Y, Z  float64
	Rotation float64 // radians, 0 = facing +X
	Scale    float64
	Opacity  float64 // 0 = invisible
	Stretch  float64 // trailing streak length in cells, drawn opposite Rotation
}

// Visual is the shared look of a particle: a glyph set or a decoded cell texture
// Visuals are read-only once a session starts
type Visual struct {
	Glyphs  []rune
	Color   color.RGBA
	Texture *media.Grid
}

// Sprite is one drawable element handed to the Surface
// The engine rewrites State every frame; the Surface only reads it
type Sprite struct {
	Visual *Visual
	Index  int
	State  VisualState
}

// Glyph picks the glyph for the sprite's current rotation
// Multi-glyph visuals animate by mapping rotation onto the glyph list
func (s *Sprite) Glyph() rune {
	g := s.Visual.Glyphs
	switch len(g) {
	case 0:
		return '*'
	case 1:
		return g[0]
	}
	return g[frameIndex(s.State.Rotation, len(g))]
}

// Session is one active transition: target, direction, timing and population
type Session struct {
	Section   section.ID
	Direction section.Direction
	Law       Law
	Start     time.Time
	Duration  time.Duration
	Sprites   []*Sprite

	elapsed    time.Duration
	frames     core.FrameTimer
	onComplete func()
}

// Progress returns the elapsed fraction t in [0, 1]
func (s *Session) Progress() float64 {
	if s.Duration <= 0 {
		return 1
	}
	t := float64(s.elapsed) / float64(s.Duration)
	if t > 1 {
		return 1
	}
	return t
}

// Elapsed returns clamped elapsed session time
func (s *Session) Elapsed() time.Duration { return s.elapsed }
