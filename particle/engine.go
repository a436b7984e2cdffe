package particle

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/petals/core"
	"github.com/lixenwraith/petals/media"
	"github.com/lixenwraith/petals/section"
)

// MaxFrameDelta caps how far one frame may advance a session
// A backgrounded terminal resumes without jumping to the end
const MaxFrameDelta = 100 * time.Millisecond

// Surface is the render target for particle sprites
// The active session exclusively owns the sprites it attaches
type Surface interface {
	Viewport() Viewport
	Attach(sprites []*Sprite) error
	Detach(sprites []*Sprite)
}

// TextureSource resolves shared textures by name
type TextureSource interface {
	Texture(name string) (*media.Grid, error)
}

// Engine plays at most one particle session at a time
type Engine struct {
	surface  Surface
	table    *Table
	registry *Registry
	textures TextureSource

	disabled error
	busy     bool
	session  *Session

	visuals map[section.ID]*Visual
}

// NewEngine creates an engine; a nil surface yields a disabled engine
func NewEngine(surface Surface, table *Table, registry *Registry, textures TextureSource) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	e := &Engine{
		surface:  surface,
		table:    table,
		registry: registry,
		textures: textures,
		visuals:  make(map[section.ID]*Visual),
	}
	if surface == nil {
		e.disabled = ErrSurfaceUnavailable
	}
	return e
}

// Disabled reports whether particle effects are off
func (e *Engine) Disabled() bool { return e.disabled != nil }

// Err returns why the engine was disabled, wrapping ErrSurfaceUnavailable
func (e *Engine) Err() error { return e.disabled }

// Busy reports whether a session is running
func (e *Engine) Busy() bool { return e.busy }

// Active returns the running session or nil
func (e *Engine) Active() *Session { return e.session }

// Play starts a session for id; returns false if the engine is disabled or busy
// onComplete runs when the session ends, or immediately if nothing was started
// because the engine is disabled
func (e *Engine) Play(id section.ID, dir section.Direction, now time.Time, onComplete func()) bool {
	if e.disabled != nil {
		if onComplete != nil {
			onComplete()
		}
		return false
	}
	if e.busy {
		log.Printf("particle: session for %s still running, dropping %s", e.session.Section, id)
		return false
	}

	spec := e.table.Spec(id)
	law, err := e.registry.Lookup(spec.Law)
	if err != nil {
		log.Printf("particle: section %s: %v", id, err)
		if onComplete != nil {
			onComplete()
		}
		return false
	}

	visual := e.visualFor(id, spec)
	sprites := make([]*Sprite, spec.Count)
	for i := range sprites {
		sprites[i] = &Sprite{
			Visual: visual,
			Index:  i,
			State:  VisualState{Scale: 1},
		}
	}

	if err := e.surface.Attach(sprites); err != nil {
		e.disabled = fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
		log.Printf("particle: disabling effects: %v", e.disabled)
		if onComplete != nil {
			onComplete()
		}
		return false
	}

	e.session = &Session{
		Section:    id,
		Direction:  dir,
		Law:        law,
		Start:      now,
		Duration:   spec.Duration,
		Sprites:    sprites,
		frames:     core.FrameTimer{Max: MaxFrameDelta},
		onComplete: onComplete,
	}
	e.session.frames.Reset(now)
	e.busy = true
	return true
}

// visualFor returns the section's visual, resolving a shared texture on first use
func (e *Engine) visualFor(id section.ID, spec Spec) *Visual {
	if v, ok := e.visuals[id]; ok {
		return v
	}
	v := &Visual{Glyphs: spec.Glyphs, Color: spec.Color}
	if spec.Texture != "" && e.textures != nil {
		tex, err := e.textures.Texture(spec.Texture)
		if err != nil {
			log.Printf("particle: texture %q unavailable, using glyphs: %v", spec.Texture, err)
		} else {
			v.Texture = tex
		}
	}
	e.visuals[id] = v
	return v
}

// Update recomputes every particle for the current frame and tears the session down at t=1
func (e *Engine) Update(now time.Time) {
	s := e.session
	if s == nil {
		return
	}

	s.elapsed += s.frames.Tick(now)

	t := s.Progress()
	vp := e.surface.Viewport()
	n := len(s.Sprites)
	for _, sp := range s.Sprites {
		sp.State = Evaluate(s.Law, sp.Index, n, t, s.Direction, vp)
	}

	if t >= 1 {
		e.finish()
	}
}

// Cancel tears down the running session without waiting for it to finish
func (e *Engine) Cancel() {
	if e.session != nil {
		e.finish()
	}
}

func (e *Engine) finish() {
	s := e.session
	e.surface.Detach(s.Sprites)
	s.Sprites = nil
	e.session = nil
	e.busy = false
	if s.onComplete != nil {
		s.onComplete()
	}
}
