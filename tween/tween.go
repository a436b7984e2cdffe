// Package tween interpolates numeric properties over time and runs delayed
// continuations. All work happens inside Scheduler.Update, on the caller's
// goroutine, so callbacks never race with the frame loop.
package tween

import (
	"time"

	"github.com/lixenwraith/petals/vmath"
)

// Spec describes one numeric interpolation
type Spec struct {
	From       float64
	To         float64
	Duration   time.Duration
	Ease       vmath.EaseFunc
	OnUpdate   func(v float64)
	OnComplete func()
}

// Handle identifies a scheduled tween or call for cancellation
type Handle uint64

type job struct {
	id       Handle
	spec     Spec
	start    time.Time
	started  bool
	delay    time.Duration
	call     func()
	isCall   bool
	finished bool
}

// Scheduler owns running tweens and delayed calls
type Scheduler struct {
	jobs    []*job
	running []*job
	nextID  Handle
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// To starts interpolating from spec.From to spec.To, beginning at the next Update
func (s *Scheduler) To(spec Spec) Handle {
	if spec.Ease == nil {
		spec.Ease = vmath.Linear
	}
	s.nextID++
	s.jobs = append(s.jobs, &job{id: s.nextID, spec: spec})
	return s.nextID
}

// DelayedCall runs fn once delay has elapsed, measured from the next Update
func (s *Scheduler) DelayedCall(delay time.Duration, fn func()) Handle {
	s.nextID++
	s.jobs = append(s.jobs, &job{id: s.nextID, delay: delay, call: fn, isCall: true})
	return s.nextID
}

// Kill cancels a job without invoking its completion callback
func (s *Scheduler) Kill(h Handle) {
	for _, list := range [][]*job{s.running, s.jobs} {
		for _, j := range list {
			if j.id == h {
				j.finished = true
			}
		}
	}
}

// Active reports whether a job is still pending
func (s *Scheduler) Active(h Handle) bool {
	for _, list := range [][]*job{s.running, s.jobs} {
		for _, j := range list {
			if j.id == h && !j.finished {
				return true
			}
		}
	}
	return false
}

// Len returns the number of pending jobs
func (s *Scheduler) Len() int {
	n := 0
	for _, list := range [][]*job{s.running, s.jobs} {
		for _, j := range list {
			if !j.finished {
				n++
			}
		}
	}
	return n
}

// Update advances every job to now, firing callbacks in scheduling order
// Jobs added by callbacks start on the following Update
func (s *Scheduler) Update(now time.Time) {
	pending := s.jobs
	s.jobs = nil
	s.running = pending

	for _, j := range pending {
		if j.finished {
			continue
		}
		if !j.started {
			j.started = true
			j.start = now
		}
		elapsed := now.Sub(j.start)

		if j.isCall {
			if elapsed >= j.delay {
				j.finished = true
				j.call()
			}
			continue
		}

		sp := j.spec
		t := 1.0
		if sp.Duration > 0 {
			t = vmath.Clamp01(float64(elapsed) / float64(sp.Duration))
		}
		if sp.OnUpdate != nil {
			sp.OnUpdate(vmath.Lerp(sp.From, sp.To, sp.Ease(t)))
		}
		if t >= 1 {
			j.finished = true
			if sp.OnComplete != nil {
				sp.OnComplete()
			}
		}
	}

	// Keep unfinished jobs, then anything scheduled during callbacks
	kept := make([]*job, 0, len(pending)+len(s.jobs))
	for _, j := range pending {
		if !j.finished {
			kept = append(kept, j)
		}
	}
	s.jobs = append(kept, s.jobs...)
	s.running = nil
}
