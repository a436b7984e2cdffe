package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

// Butterflies loop a figure-eight path whose center drifts and wraps around the viewport
type Butterflies struct{}

func (Butterflies) Name() string { return "butterflies" }

func (Butterflies) At(i, n int, u float64, vp Viewport) VisualState {
	hw, hh := vp.HalfW(), vp.HalfH()

	loops := 1 + math.Floor(vmath.Seed(i, 0)*2)
	phi := vmath.Fract(u*loops + vmath.Seed(i, 1))

	cx := vmath.SeedSigned(i, 2)*hw + u*hw*0.6
	if hw > 0 {
		cx = vmath.Wrap(cx, -hw, hw)
	}
	cy := vmath.SeedSigned(i, 3) * hh * 0.6
	ax := hw * 0.15 * (0.6 + vmath.Seed(i, 4))
	ay := hh * 0.2 * (0.6 + vmath.Seed(i, 5))

	return VisualState{
		X:        cx + ax*math.Sin(2*math.Pi*phi),
		Y:        cy + ay*math.Sin(4*math.Pi*phi)/2,
		Z:        vmath.Seed(i, 9),
		Rotation: 2 * math.Pi * vmath.Fract(u*40+vmath.Seed(i, 6)),
		Scale:    0.7 + 0.3*vmath.Seed(i, 8),
		Opacity:  vmath.Envelope(u, 0.1, 0.12) * (0.75 + 0.25*vmath.Seed(i, 7)),
	}
}
