package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	"github.com/lixenwraith/petals/tween"
	"github.com/lixenwraith/petals/vmath"
)

const (
	sampleRate = beep.SampleRate(48000)

	// Glyphs shown by the audio indicator
	GlyphPlaying = "🔊"
	GlyphPaused  = "🎵"
)

// ErrUnavailable is returned once audio output has failed or is muted
var ErrUnavailable = errors.New("audio unavailable")

// Config controls the ambient loop
type Config struct {
	// Source is an optional WAV file; the synthesized pad plays when empty or undecodable
	Source  string
	Volume  float64
	FadeIn  time.Duration
	FadeOut time.Duration
	Muted   bool
}

// Ambient toggles a looping background track with volume ramps
// All methods are called from the frame loop; gain and pause changes take
// the output lock because the audio callback reads them
type Ambient struct {
	out   Output
	sched *tween.Scheduler
	cfg   Config

	initialized bool
	unavailable bool
	playing     bool

	ctrl   *beep.Ctrl
	gain   *effects.Gain
	volume float64
	fade   tween.Handle
}

// NewAmbient creates an ambient controller; output is initialized on first Start
func NewAmbient(out Output, sched *tween.Scheduler, cfg Config) *Ambient {
	return &Ambient{
		out:         out,
		sched:       sched,
		cfg:         cfg,
		unavailable: cfg.Muted || out == nil,
	}
}

// Available reports whether audio can play
func (a *Ambient) Available() bool { return !a.unavailable }

// Playing reports whether the loop is audible or fading in
func (a *Ambient) Playing() bool { return a.playing }

// Volume returns the current linear volume
func (a *Ambient) Volume() float64 { return a.volume }

// Glyph returns the indicator glyph for the current state
func (a *Ambient) Glyph() string {
	if a.playing {
		return GlyphPlaying
	}
	return GlyphPaused
}

// Start begins playback with a fade from silence; no-op if already playing
func (a *Ambient) Start() error {
	if a.unavailable {
		return ErrUnavailable
	}
	if a.playing {
		return nil
	}
	if err := a.init(); err != nil {
		a.unavailable = true
		log.Printf("audio: disabled: %v", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	a.sched.Kill(a.fade)
	a.setVolume(0)
	a.setPaused(false)
	a.playing = true
	a.fade = a.sched.To(tween.Spec{
		From:     0,
		To:       a.cfg.Volume,
		Duration: a.cfg.FadeIn,
		OnUpdate: a.setVolume,
	})
	return nil
}

// Stop fades the loop out and pauses it once silent
func (a *Ambient) Stop() {
	if !a.playing {
		return
	}
	a.playing = false
	a.sched.Kill(a.fade)
	a.fade = a.sched.To(tween.Spec{
		From:     a.volume,
		To:       0,
		Duration: a.cfg.FadeOut,
		OnUpdate: a.setVolume,
		OnComplete: func() {
			if !a.playing {
				a.setPaused(true)
			}
		},
	})
}

// Toggle flips between playing and paused
func (a *Ambient) Toggle() error {
	if a.playing {
		a.Stop()
		return nil
	}
	return a.Start()
}

// Close releases the output
func (a *Ambient) Close() {
	if a.initialized {
		a.setPaused(true)
		a.out.Close()
		a.initialized = false
	}
}

func (a *Ambient) init() error {
	if a.initialized {
		return nil
	}
	if err := a.out.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init output: %w", err)
	}

	a.gain = &effects.Gain{Streamer: a.source(), Gain: -1}
	a.ctrl = &beep.Ctrl{Streamer: a.gain, Paused: true}

	// Endless silence keeps the mixer alive independent of the loop
	mixer := &beep.Mixer{}
	mixer.Add(generators.Silence(-1), a.ctrl)
	a.out.Play(mixer)
	a.initialized = true
	return nil
}

// source opens the configured WAV file, falling back to the synthesized pad
func (a *Ambient) source() beep.Streamer {
	if a.cfg.Source == "" {
		return NewPadGenerator(sampleRate)
	}
	s, err := openWAV(a.cfg.Source)
	if err != nil {
		log.Printf("audio: %v, using synthesized pad", err)
		return NewPadGenerator(sampleRate)
	}
	return s
}

func openWAV(path string) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	looped := beep.Loop(-1, s)
	if format.SampleRate != sampleRate {
		return beep.Resample(4, format.SampleRate, sampleRate, looped), nil
	}
	return looped, nil
}

// setVolume maps linear volume onto effects.Gain, whose output is sample*(1+Gain)
func (a *Ambient) setVolume(v float64) {
	v = vmath.Clamp01(v)
	a.volume = v
	if a.gain == nil {
		return
	}
	a.out.Lock()
	a.gain.Gain = v - 1
	a.out.Unlock()
}

func (a *Ambient) setPaused(p bool) {
	if a.ctrl == nil {
		return
	}
	a.out.Lock()
	a.ctrl.Paused = p
	a.out.Unlock()
}
