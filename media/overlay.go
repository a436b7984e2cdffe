package media

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/petals/section"
	"github.com/lixenwraith/petals/tween"
	"github.com/lixenwraith/petals/vmath"
)

// OverlayConfig holds overlay timing
type OverlayConfig struct {
	FadeIn  time.Duration
	FadeOut time.Duration
	// HoldStill is how long a still image stays before fading out; 0 keeps it up
	HoldStill time.Duration
	// MaxOpacity caps the overlay so content stays readable
	MaxOpacity float64
}

type decodeResult struct {
	gen    uint64
	id     section.ID
	clip   *Clip
	frames []*Grid
	cols   int
	rows   int
	err    error
}

type playback struct {
	id         section.ID
	clip       *Clip
	frames     []*Grid
	cols, rows int
	frame      int
	frameStart time.Time
	playsLeft  int // 0 = forever
	ending     bool
	fade       tween.Handle
}

// Overlay plays one full-screen clip per section beneath everything else
// Decoding runs on a worker goroutine; results are applied inside Update so
// all playback state is touched only by the frame loop
type Overlay struct {
	loader  *Loader
	sources map[section.ID][]string
	sched   *tween.Scheduler
	cfg     OverlayConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	results chan decodeResult
	gen     uint64
	pending bool
	current *playback
	opacity float64
}

// NewOverlay creates an overlay controller
func NewOverlay(loader *Loader, sources map[section.ID][]string, sched *tween.Scheduler, cfg OverlayConfig) *Overlay {
	if cfg.MaxOpacity <= 0 || cfg.MaxOpacity > 1 {
		cfg.MaxOpacity = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Overlay{
		loader:  loader,
		sources: sources,
		sched:   sched,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan decodeResult, 4),
	}
}

// PlayFor stops the current clip and starts decoding the clip for id at cols x rows
func (o *Overlay) PlayFor(id section.ID, cols, rows int) {
	o.Stop()

	srcs := o.sources[id]
	if len(srcs) == 0 {
		return
	}

	o.gen++
	gen := o.gen
	o.pending = true
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		res := decodeResult{gen: gen, id: id, cols: cols, rows: rows}
		res.clip, res.err = o.loader.LoadFirst(srcs)
		if res.err == nil {
			res.frames, res.err = ConvertClip(o.ctx, res.clip, cols, rows)
		}
		select {
		case o.results <- res:
		case <-o.ctx.Done():
		}
	}()
}

// Stop disposes the current clip and invalidates any decode in flight
func (o *Overlay) Stop() {
	if o.current != nil {
		o.sched.Kill(o.current.fade)
	}
	o.current = nil
	o.opacity = 0
	o.pending = false
	o.gen++
}

// Close stops playback and waits for decode workers to exit
func (o *Overlay) Close() {
	o.Stop()
	o.cancel()
	o.wg.Wait()
}

// Pending reports whether a decode is in flight for the current section
func (o *Overlay) Pending() bool { return o.pending }

// Playing reports whether a clip is attached
func (o *Overlay) Playing() bool { return o.current != nil }

// Section returns the section of the attached clip
func (o *Overlay) Section() (section.ID, bool) {
	if o.current == nil {
		return "", false
	}
	return o.current.id, true
}

// Frame returns the grid to draw and its opacity
func (o *Overlay) Frame() (*Grid, float64) {
	p := o.current
	if p == nil || len(p.frames) == 0 {
		return nil, 0
	}
	return p.frames[p.frame], o.opacity
}

// Update applies finished decodes, reconverts on resize and advances frames
func (o *Overlay) Update(now time.Time, cols, rows int) {
	o.drain(now)

	p := o.current
	if p == nil {
		return
	}

	if cols != p.cols || rows != p.rows {
		frames, err := ConvertClip(o.ctx, p.clip, cols, rows)
		if err == nil {
			p.frames, p.cols, p.rows = frames, cols, rows
		}
	}

	if p.ending {
		return
	}

	if p.clip.Still() {
		if o.cfg.HoldStill > 0 && now.Sub(p.frameStart) >= o.cfg.HoldStill {
			o.end(p)
		}
		return
	}

	for {
		delay := p.clip.Delays[p.frame]
		if now.Sub(p.frameStart) < delay {
			return
		}
		p.frameStart = p.frameStart.Add(delay)
		if p.frame+1 < len(p.frames) {
			p.frame++
			continue
		}
		if p.playsLeft == 1 {
			o.end(p)
			return
		}
		if p.playsLeft > 1 {
			p.playsLeft--
		}
		p.frame = 0
	}
}

func (o *Overlay) drain(now time.Time) {
	for {
		select {
		case res := <-o.results:
			o.apply(res, now)
		default:
			return
		}
	}
}

func (o *Overlay) apply(res decodeResult, now time.Time) {
	if res.gen != o.gen {
		return
	}
	o.pending = false
	if res.err != nil {
		log.Printf("overlay: %s: %v", res.id, res.err)
		return
	}

	p := &playback{
		id:         res.id,
		clip:       res.clip,
		frames:     res.frames,
		cols:       res.cols,
		rows:       res.rows,
		frameStart: now,
		playsLeft:  res.clip.Plays(),
	}
	o.current = p
	o.opacity = 0
	p.fade = o.sched.To(tween.Spec{
		From:     0,
		To:       o.cfg.MaxOpacity,
		Duration: o.cfg.FadeIn,
		Ease:     vmath.Power2Out,
		OnUpdate: func(v float64) {
			if o.current == p {
				o.opacity = v
			}
		},
	})
}

// end fades the clip out and detaches it
func (o *Overlay) end(p *playback) {
	p.ending = true
	o.sched.Kill(p.fade)
	from := o.opacity
	p.fade = o.sched.To(tween.Spec{
		From:     from,
		To:       0,
		Duration: o.cfg.FadeOut,
		Ease:     vmath.Power2InOut,
		OnUpdate: func(v float64) {
			if o.current == p {
				o.opacity = v
			}
		},
		OnComplete: func() {
			if o.current == p {
				o.current = nil
				o.opacity = 0
			}
		},
	})
}
