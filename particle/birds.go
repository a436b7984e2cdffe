package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

// Birds flies a flock diagonally upward across the viewport
// Each bird starts at a staggered time and bobs on its own phase-shifted oscillation
type Birds struct{}

func (Birds) Name() string { return "birds" }

func (Birds) At(i, n int, u float64, vp Viewport) VisualState {
	scale := 0.6 + 0.4*vmath.Seed(i, 8)
	start := vmath.Seed(i, 0) * 0.35
	s, ok := vmath.Window(u, start, 0.65)
	if !ok {
		return VisualState{Scale: scale}
	}

	hw, hh := vp.HalfW(), vp.HalfH()
	lane := vmath.SeedSigned(i, 1) * hh * 0.8
	x0 := -hw - 4 - vmath.Seed(i, 2)*hw*0.5
	x1 := hw + 4 + vmath.Seed(i, 3)*hw*0.5
	rise := hh * 0.6

	phase := vmath.Seed(i, 4) * 2 * math.Pi
	freq := 2 + vmath.Seed(i, 5)*2
	amp := 0.6 + vmath.Seed(i, 6)*1.2
	wave := 2 * math.Pi * freq * s

	x := vmath.Lerp(x0, x1, s)
	y := lane + hh*0.3 - rise*s + amp*math.Sin(wave+phase)

	dx := x1 - x0
	dy := -rise + amp*2*math.Pi*freq*math.Cos(wave+phase)

	return VisualState{
		X:        x,
		Y:        y,
		Z:        vmath.Seed(i, 9),
		Rotation: math.Atan2(dy, dx),
		Scale:    scale,
		Opacity:  vmath.Envelope(s, 0.1, 0.15) * (0.6 + 0.4*vmath.Seed(i, 7)),
	}
}
