// Package navigation drives the section state machine: one current section,
// single-flight transitions and the fade-out, particles, fade-in choreography
// between two sections.
package navigation

import (
	"log"
	"time"

	"github.com/lixenwraith/petals/core"
	"github.com/lixenwraith/petals/section"
	"github.com/lixenwraith/petals/tween"
	"github.com/lixenwraith/petals/vmath"
)

// ParticlePlayer runs the particle session accompanying a transition
// Cancel tears down a session still running from an earlier transition
type ParticlePlayer interface {
	Play(id section.ID, dir section.Direction, now time.Time, onComplete func()) bool
	Cancel()
}

// Config holds choreography timing
type Config struct {
	Fade     time.Duration
	FadeEase vmath.EaseFunc
	// Stagger separates the particle launch from the fade-in of the new container
	Stagger time.Duration
}

// DefaultConfig mirrors the site's timing
func DefaultConfig() Config {
	return Config{
		Fade:     800 * time.Millisecond,
		FadeEase: vmath.Power2InOut,
		Stagger:  100 * time.Millisecond,
	}
}

// Transition describes the in-flight section change
type Transition struct {
	From      section.ID
	To        section.ID
	Direction section.Direction
	Start     time.Time
}

// Navigator owns the current section and the transition-in-progress state
// All methods run on the frame loop goroutine
type Navigator struct {
	seq       *section.Sequence
	sched     *tween.Scheduler
	particles ParticlePlayer
	clock     core.Clock
	cfg       Config

	phase      Phase
	current    section.ID
	transition *Transition

	// At most one container is displayed; it is hidden before the next one shows
	displayed section.ID
	opacity   float64
	hidden    bool

	onShown []func(section.ID)
	onPhase []func(from, to Phase)
}

// New creates a navigator idle on the gate section
// particles may be nil, in which case transitions run without effects
func New(seq *section.Sequence, sched *tween.Scheduler, particles ParticlePlayer, clock core.Clock, cfg Config) *Navigator {
	if cfg.FadeEase == nil {
		cfg.FadeEase = vmath.Power2InOut
	}
	return &Navigator{
		seq:       seq,
		sched:     sched,
		particles: particles,
		clock:     clock,
		cfg:       cfg,
		phase:     PhaseIdle,
		current:   seq.Gate(),
		displayed: seq.Gate(),
		opacity:   1,
	}
}

// OnShown registers a callback fired each time a transition settles on its target
func (n *Navigator) OnShown(fn func(section.ID)) {
	n.onShown = append(n.onShown, fn)
}

// OnPhase registers a callback fired on every phase change
func (n *Navigator) OnPhase(fn func(from, to Phase)) {
	n.onPhase = append(n.onPhase, fn)
}

// Current returns the section last settled on
func (n *Navigator) Current() section.ID { return n.current }

// Phase returns the current choreography phase
func (n *Navigator) Phase() Phase { return n.phase }

// Transitioning reports whether a transition is in flight
func (n *Navigator) Transitioning() bool { return n.phase != PhaseIdle }

// Transition returns the in-flight transition
func (n *Navigator) Transition() (Transition, bool) {
	if n.transition == nil {
		return Transition{}, false
	}
	return *n.transition, true
}

// Displayed returns the section whose container is on screen and its opacity
func (n *Navigator) Displayed() (section.ID, float64, bool) {
	if n.hidden {
		return "", 0, false
	}
	return n.displayed, n.opacity, true
}

// Progress returns the progress fraction of the current section
func (n *Navigator) Progress() float64 {
	return n.seq.Progress(n.current)
}

// RequestShow starts a transition to id
// Unknown ids, the current section while idle and any request during a
// transition are dropped; returns whether the request was accepted
func (n *Navigator) RequestShow(id section.ID) bool {
	if !n.seq.Has(id) {
		log.Printf("navigation: unknown section %q", id)
		return false
	}
	if n.phase != PhaseIdle {
		log.Printf("navigation: %s in progress, dropping request for %s", n.phase, id)
		return false
	}
	if id == n.current {
		return false
	}

	now := n.clock.Now()
	n.transition = &Transition{
		From:      n.current,
		To:        id,
		Direction: n.seq.DirectionBetween(n.current, id),
		Start:     now,
	}
	n.setPhase(PhaseFadingOut)

	n.sched.To(tween.Spec{
		From:       n.opacity,
		To:         0,
		Duration:   n.cfg.Fade,
		Ease:       n.cfg.FadeEase,
		OnUpdate:   func(v float64) { n.opacity = v },
		OnComplete: n.afterFadeOut,
	})
	return true
}

// Next requests the section after the current one
func (n *Navigator) Next() bool {
	id, ok := n.seq.Next(n.current)
	if !ok {
		return false
	}
	return n.RequestShow(id)
}

// Prev requests the content section before the current one
func (n *Navigator) Prev() bool {
	id, ok := n.seq.Prev(n.current)
	if !ok {
		return false
	}
	return n.RequestShow(id)
}

// Jump requests content section k, 1-based
func (n *Navigator) Jump(k int) bool {
	if k < 1 {
		return false
	}
	id, ok := n.seq.At(k)
	if !ok {
		return false
	}
	return n.RequestShow(id)
}

func (n *Navigator) afterFadeOut() {
	tr := n.transition
	now := n.clock.Now()

	n.hidden = true
	n.opacity = 0
	n.setPhase(PhaseAwaitingParticles)

	// Sessions outlive the choreography; the new target replaces whatever is still
	// running. Particle failure never blocks navigation and completion is not awaited
	if n.particles != nil {
		n.particles.Cancel()
		if !n.particles.Play(tr.To, tr.Direction, now, nil) {
			log.Printf("navigation: no particles for %s", tr.To)
		}
	}

	n.sched.DelayedCall(n.cfg.Stagger, n.fadeIn)
}

func (n *Navigator) fadeIn() {
	tr := n.transition
	n.displayed = tr.To
	n.opacity = 0
	n.hidden = false
	n.setPhase(PhaseFadingIn)

	n.sched.To(tween.Spec{
		From:       0,
		To:         1,
		Duration:   n.cfg.Fade,
		Ease:       n.cfg.FadeEase,
		OnUpdate:   func(v float64) { n.opacity = v },
		OnComplete: n.settle,
	})
}

func (n *Navigator) settle() {
	target := n.transition.To
	n.opacity = 1
	n.current = target
	n.transition = nil
	n.setPhase(PhaseIdle)

	for _, fn := range n.onShown {
		fn(target)
	}
}

func (n *Navigator) setPhase(to Phase) bool {
	from := n.phase
	if !CanTransition(from, to) {
		log.Printf("navigation: invalid phase transition %s -> %s", from, to)
		return false
	}
	n.phase = to
	for _, fn := range n.onPhase {
		fn(from, to)
	}
	return true
}
