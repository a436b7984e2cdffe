package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

// Sparkles twinkles short-lived points scattered over the viewport
type Sparkles struct{}

func (Sparkles) Name() string { return "sparkles" }

func (Sparkles) At(i, n int, u float64, vp Viewport) VisualState {
	start := vmath.Seed(i, 0) * 0.8
	span := 0.15 + vmath.Seed(i, 1)*0.05
	s, ok := vmath.Window(u, start, span)
	if !ok {
		return VisualState{}
	}
	pulse := vmath.Pulse(s)
	return VisualState{
		X:        vmath.SeedSigned(i, 2) * vp.HalfW() * 0.95,
		Y:        vmath.SeedSigned(i, 3)*vp.HalfH()*0.9 + 2*s,
		Z:        vmath.Seed(i, 4),
		Rotation: 4 * math.Pi * s,
		Scale:    0.5 + 0.5*pulse,
		Opacity:  pulse,
	}
}
