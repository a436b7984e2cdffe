package vmath

import "math"

// EaseFunc maps linear progress [0,1] to eased progress
type EaseFunc func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 { return t }

// Power2In accelerates from zero velocity
func Power2In(t float64) float64 { return t * t * t }

// Power2Out decelerates to zero velocity
func Power2Out(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Power2InOut accelerates then decelerates
func Power2InOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// QuadIn is the quadratic acceleration curve
func QuadIn(t float64) float64 { return t * t }

// BackOut overshoots slightly before settling
func BackOut(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// SineInOut is a gentle symmetric curve
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var easeByName = map[string]EaseFunc{
	"linear":       Linear,
	"power2.in":    Power2In,
	"power2.out":   Power2Out,
	"power2.inOut": Power2InOut,
	"quad.in":      QuadIn,
	"back.out":     BackOut,
	"sine.inOut":   SineInOut,
}

// EaseByName resolves a named curve, falling back to Linear
func EaseByName(name string) (EaseFunc, bool) {
	fn, ok := easeByName[name]
	if !ok {
		return Linear, false
	}
	return fn, true
}
