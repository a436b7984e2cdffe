// Package engine wires one page session together: gate, navigator,
// particles, overlay, ambient audio and the renderer, all driven by a
// single frame loop.
package engine

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/petals/audio"
	"github.com/lixenwraith/petals/config"
	"github.com/lixenwraith/petals/core"
	"github.com/lixenwraith/petals/gate"
	"github.com/lixenwraith/petals/media"
	"github.com/lixenwraith/petals/navigation"
	"github.com/lixenwraith/petals/particle"
	"github.com/lixenwraith/petals/render"
	"github.com/lixenwraith/petals/section"
	"github.com/lixenwraith/petals/tween"
)

// Options carries the collaborators a Game is built from
type Options struct {
	Config *config.Config
	Screen tcell.Screen
	Clock  core.Clock
	// Audio is the ambient output; nil disables audio
	Audio audio.Output
	// Assets backs "embed:" media sources
	Assets fs.FS
}

// Game owns every component of one session
// All state is touched only from the goroutine running Step and HandleEvent
type Game struct {
	cfg    *config.Config
	clock  core.Clock
	screen tcell.Screen

	sched     *tween.Scheduler
	seq       *section.Sequence
	validator *gate.Validator
	input     *gate.Input
	renderer  *render.Renderer
	particles *particle.Engine
	textures  *media.TextureCache
	overlay   *media.Overlay
	ambient   *audio.Ambient
	nav       *navigation.Navigator

	progress      float64
	progressTween tween.Handle
}

// New builds a game from validated configuration
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = core.System
	}

	reg := particle.DefaultRegistry()
	if err := cfg.Validate(reg); err != nil {
		return nil, err
	}
	seq, err := cfg.Sequence()
	if err != nil {
		return nil, err
	}
	validator, err := cfg.Validator()
	if err != nil {
		return nil, err
	}
	table, err := cfg.ParticleTable()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		clock:     clock,
		screen:    opts.Screen,
		sched:     tween.NewScheduler(),
		seq:       seq,
		validator: validator,
		input:     &gate.Input{},
		renderer:  render.NewRenderer(opts.Screen),
	}

	loader := media.NewLoader(opts.Assets)
	g.textures = media.NewTextureCache(loader, cfg.TextureSpecs())
	g.overlay = media.NewOverlay(loader, cfg.OverlaySources(), g.sched, cfg.OverlayConfig())

	var surface particle.Surface
	if !cfg.NoParticles {
		surface = g.renderer.Stage()
	}
	g.particles = particle.NewEngine(surface, table, reg, g.textures)

	g.ambient = audio.NewAmbient(opts.Audio, g.sched, cfg.AudioConfig())

	g.nav = navigation.New(seq, g.sched, g.particles, clock, cfg.NavigationConfig())
	g.nav.OnShown(g.onShown)

	return g, nil
}

// Navigator returns the section state machine
func (g *Game) Navigator() *navigation.Navigator { return g.nav }

// Particles returns the particle engine
func (g *Game) Particles() *particle.Engine { return g.particles }

// Overlay returns the overlay controller
func (g *Game) Overlay() *media.Overlay { return g.overlay }

// Ambient returns the ambient audio controller
func (g *Game) Ambient() *audio.Ambient { return g.ambient }

// Input returns the gate input buffer
func (g *Game) Input() *gate.Input { return g.input }

// Progress returns the displayed progress bar fraction
func (g *Game) Progress() float64 { return g.progress }

// Step advances every component to now and draws one frame
func (g *Game) Step(now time.Time) {
	g.renderer.Sync()
	g.sched.Update(now)

	// Particle state is computed before the frame is presented
	g.particles.Update(now)

	w, h := g.renderer.Size()
	g.overlay.Update(now, w, h)

	g.renderer.Draw(g.frame())
}

// Run drives the frame loop until ctx is cancelled or the user quits
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	fps := g.cfg.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	g.Step(g.clock.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !g.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			g.Step(g.clock.Now())
		}
	}
}

// Close stops media and releases audio
func (g *Game) Close() {
	g.particles.Cancel()
	g.overlay.Close()
	g.ambient.Close()
}

func (g *Game) unlock() {
	if !g.ambient.Playing() {
		if err := g.ambient.Start(); err != nil {
			log.Printf("engine: ambient audio: %v", err)
		}
	}
	first := g.seq.First()
	g.sched.DelayedCall(g.cfg.Timing.UnlockDelay, func() {
		g.nav.RequestShow(first)
	})
}

// onShown runs when a transition settles: progress bar and overlay follow the section
func (g *Game) onShown(id section.ID) {
	target := g.seq.Progress(id)
	g.sched.Kill(g.progressTween)
	g.progressTween = g.sched.To(tween.Spec{
		From:       g.progress,
		To:         target,
		Duration:   g.cfg.Timing.Progress,
		Ease:       g.cfg.ProgressEase(),
		OnUpdate:   func(v float64) { g.progress = v },
		OnComplete: func() { g.progress = target },
	})

	w, h := g.renderer.Size()
	g.overlay.PlayFor(id, w, h)
}

func (g *Game) frame() render.Frame {
	f := render.Frame{
		ShowProgress: g.nav.Current() != g.seq.Gate(),
		Progress:     g.progress,
	}

	if grid, op := g.overlay.Frame(); grid != nil {
		f.Overlay, f.OverlayOpacity = grid, op
	}

	if id, op, ok := g.nav.Displayed(); ok {
		f.Section = g.sectionView(id, op)
	}

	if g.ambient.Available() {
		f.AudioGlyph = g.ambient.Glyph()
	}
	return f
}

func (g *Game) sectionView(id section.ID, opacity float64) *render.SectionView {
	content := g.cfg.Sections[string(id)]
	v := &render.SectionView{
		Title:   content.Title,
		Body:    content.Body,
		Hint:    content.Hint,
		Theme:   g.cfg.Theme(id),
		Opacity: opacity,
	}
	if v.Title == "" {
		v.Title = string(id)
	}
	if id == g.seq.Gate() && !g.input.Unlocked() {
		v.Input = &render.InputView{
			Masked: g.input.Masked(),
			Width:  g.input.MaskedWidth(),
			Failed: g.input.Failed(),
			Error:  g.cfg.Gate.Error,
		}
	}
	return v
}

// String summarizes the session state for debug logs
func (g *Game) String() string {
	return fmt.Sprintf("section=%s phase=%s progress=%.3f particles=%t audio=%t",
		g.nav.Current(), g.nav.Phase(), g.progress, g.particles.Busy(), g.ambient.Playing())
}
