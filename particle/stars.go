package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

const (
	starLatestStart = 0.78
	starTrailSpan   = 0.08
)

// ShootingStars launches each star at its own spawn offset
// Phase one accelerates the head along a straight line; phase two holds the
// head and fades a shrinking afterimage streak
type ShootingStars struct{}

func (ShootingStars) Name() string { return "shooting-stars" }

func (ShootingStars) At(i, n int, u float64, vp Viewport) VisualState {
	start := vmath.Seed(i, 0) * starLatestStart
	flight := 0.1 + vmath.Seed(i, 1)*0.04
	local := u - start
	if local < 0 || local > flight+starTrailSpan {
		return VisualState{Scale: 1}
	}

	hw, hh := vp.HalfW(), vp.HalfH()
	angle := 0.35 + vmath.Seed(i, 2)*0.35
	x0 := -hw*0.9 + vmath.Seed(i, 3)*hw*1.2
	y0 := -hh*0.9 + vmath.Seed(i, 4)*hh*0.6
	length := vp.Width * (0.3 + 0.3*vmath.Seed(i, 5))

	var d, opacity, stretch, scale float64
	if local <= flight {
		a := local / flight
		d = length * a * a
		opacity = math.Min(1, a/0.15)
		stretch = 1 + 6*a
		scale = 1
	} else {
		b := vmath.Clamp01((local - flight) / starTrailSpan)
		d = length
		opacity = 1 - b
		stretch = 7 * (1 - b)
		scale = 1 - 0.5*b
	}

	return VisualState{
		X:        x0 + math.Cos(angle)*d,
		Y:        y0 + math.Sin(angle)*d,
		Z:        1,
		Rotation: angle,
		Scale:    scale,
		Opacity:  opacity,
		Stretch:  stretch,
	}
}
