package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

// FallPattern selects the horizontal perturbation of a falling particle
type FallPattern int

const (
	FallSway FallPattern = iota
	FallSpiral
	FallFlutter
	FallDrift
	fallPatternCount
)

var fallPatternNames = [...]string{"sway", "spiral", "flutter", "drift"}

func (p FallPattern) String() string {
	if p < 0 || p >= fallPatternCount {
		return "unknown"
	}
	return fallPatternNames[p]
}

// Fall drops particles under a gravity bias with a wind-like sinusoidal drift
// The pattern of particle i is FallPattern(i mod Variants)
type Fall struct {
	name     string
	Variants int
	Sway     float64 // base horizontal amplitude in cells
	Delay    float64 // latest start, as a fraction of the session
	Span     float64 // active window length, Delay+Span <= 1
}

// Petals is a gentle fall using all four patterns
func Petals() Fall {
	return Fall{name: "petals", Variants: 4, Sway: 3, Delay: 0.45, Span: 0.55}
}

// Leaves is a heavier, wider fall without the drift pattern
func Leaves() Fall {
	return Fall{name: "leaves", Variants: 3, Sway: 5, Delay: 0.4, Span: 0.6}
}

func (f Fall) Name() string { return f.name }

// Pattern returns the fall pattern assigned to particle i
func (f Fall) Pattern(i int) FallPattern {
	k := f.Variants
	if k <= 0 || k > int(fallPatternCount) {
		k = int(fallPatternCount)
	}
	return FallPattern(i % k)
}

func (f Fall) At(i, n int, u float64, vp Viewport) VisualState {
	scale := 0.5 + 0.5*vmath.Seed(i, 8)
	start := vmath.Seed(i, 0) * f.Delay
	s, ok := vmath.Window(u, start, f.Span)
	if !ok {
		return VisualState{Scale: scale}
	}

	hw, hh := vp.HalfW(), vp.HalfH()
	x0 := vmath.SeedSigned(i, 1) * hw * 1.1
	y0 := -hh - 2 - vmath.Seed(i, 2)*hh*0.3
	drop := vp.Height + 4 + hh*0.3

	// Gravity bias: starts slow, accelerates
	y := y0 + drop*(0.35*s+0.65*s*s)

	phase := vmath.Seed(i, 3) * 2 * math.Pi
	freq := 1 + vmath.Seed(i, 4)*1.5
	amp := f.Sway * (0.5 + vmath.Seed(i, 5))
	w := 2*math.Pi*freq*s + phase

	var dx, rot float64
	switch f.Pattern(i) {
	case FallSway:
		dx = amp * math.Sin(w)
		rot = 0.4 * math.Sin(w)
	case FallSpiral:
		dx = amp * math.Cos(w) * (1 - 0.5*s)
		rot = 4 * math.Pi * freq * s
	case FallFlutter:
		dx = amp * 0.4 * math.Sin(3*w)
		rot = math.Sin(3 * w)
	case FallDrift:
		wind := hw * 0.4 * (0.5 + vmath.Seed(i, 6))
		dx = amp*0.5*math.Sin(w) + wind*s
		rot = math.Atan2(drop*(0.35+1.3*s), wind)
	}

	return VisualState{
		X:        x0 + dx,
		Y:        y,
		Z:        vmath.Seed(i, 9),
		Rotation: rot,
		Scale:    scale,
		Opacity:  vmath.Envelope(s, 0.08, 0.2) * (0.7 + 0.3*vmath.Seed(i, 7)),
	}
}
