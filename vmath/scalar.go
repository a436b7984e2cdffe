package vmath

import "math"

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns the fractional part of v, always in [0, 1)
func Fract(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// Wrap maps v into the half-open range [lo, hi)
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	return lo + Fract((v-lo)/span)*span
}

// Window maps u into the local progress of the window [start, start+length]
// Returns ok=false while u lies outside the window
func Window(u, start, length float64) (local float64, ok bool) {
	if length <= 0 || u < start || u > start+length {
		return 0, false
	}
	return Clamp01((u - start) / length), true
}

// Envelope rises over [0, in] and falls over [1-out, 1], zero at both ends
func Envelope(s, in, out float64) float64 {
	if s <= 0 || s >= 1 {
		return 0
	}
	v := 1.0
	if in > 0 && s < in {
		v = s / in
	}
	if out > 0 && s > 1-out {
		v = math.Min(v, (1-s)/out)
	}
	return v
}

// Pulse is a half-sine bump over [0, 1], exactly zero outside the open interval
func Pulse(s float64) float64 {
	if s <= 0 || s >= 1 {
		return 0
	}
	return math.Sin(math.Pi * s)
}
