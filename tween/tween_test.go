package tween

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/petals/vmath"
)

var epoch = time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)

func TestTweenInterpolatesAndCompletes(t *testing.T) {
	s := NewScheduler()
	var got float64
	done := 0
	s.To(Spec{
		From:       0,
		To:         10,
		Duration:   time.Second,
		OnUpdate:   func(v float64) { got = v },
		OnComplete: func() { done++ },
	})

	s.Update(epoch)
	if got != 0 {
		t.Errorf("start value = %f, want 0", got)
	}

	s.Update(epoch.Add(500 * time.Millisecond))
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("midpoint value = %f, want 5", got)
	}
	if done != 0 {
		t.Fatal("completed early")
	}

	s.Update(epoch.Add(2 * time.Second))
	if got != 10 {
		t.Errorf("final value = %f, want 10", got)
	}
	if done != 1 {
		t.Errorf("OnComplete called %d times, want 1", done)
	}
	if s.Len() != 0 {
		t.Errorf("scheduler still holds %d jobs", s.Len())
	}

	s.Update(epoch.Add(3 * time.Second))
	if done != 1 {
		t.Errorf("OnComplete fired again")
	}
}

func TestTweenUsesEase(t *testing.T) {
	s := NewScheduler()
	var got float64
	s.To(Spec{From: 0, To: 1, Duration: time.Second, Ease: vmath.Power2Out, OnUpdate: func(v float64) { got = v }})
	s.Update(epoch)
	s.Update(epoch.Add(500 * time.Millisecond))
	if want := vmath.Power2Out(0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("eased value = %f, want %f", got, want)
	}
}

func TestDelayedCall(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.DelayedCall(300*time.Millisecond, func() { fired = true })

	s.Update(epoch)
	s.Update(epoch.Add(299 * time.Millisecond))
	if fired {
		t.Fatal("fired before delay")
	}
	s.Update(epoch.Add(300 * time.Millisecond))
	if !fired {
		t.Fatal("did not fire at delay")
	}
}

func TestKillSuppressesCallbacks(t *testing.T) {
	s := NewScheduler()
	done := false
	h := s.To(Spec{From: 0, To: 1, Duration: time.Second, OnComplete: func() { done = true }})
	s.Update(epoch)
	if !s.Active(h) {
		t.Fatal("tween should be active")
	}
	s.Kill(h)
	s.Update(epoch.Add(2 * time.Second))
	if done {
		t.Error("killed tween completed")
	}
	if s.Active(h) {
		t.Error("killed tween still active")
	}
}

func TestCallbacksMayScheduleChainedJobs(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.To(Spec{From: 0, To: 1, Duration: 100 * time.Millisecond, OnComplete: func() {
		order = append(order, "first")
		s.DelayedCall(100*time.Millisecond, func() { order = append(order, "second") })
	}})

	s.Update(epoch)
	s.Update(epoch.Add(100 * time.Millisecond))
	if len(order) != 1 {
		t.Fatalf("order = %v, want first only", order)
	}
	// Chained call starts counting on this update
	s.Update(epoch.Add(150 * time.Millisecond))
	s.Update(epoch.Add(250 * time.Millisecond))
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestZeroDurationCompletesImmediately(t *testing.T) {
	s := NewScheduler()
	var got float64
	done := false
	s.To(Spec{From: 3, To: 7, OnUpdate: func(v float64) { got = v }, OnComplete: func() { done = true }})
	s.Update(epoch)
	if got != 7 || !done {
		t.Errorf("got=%f done=%v, want 7 true", got, done)
	}
}
