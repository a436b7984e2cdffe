package particle

import (
	"math"

	"github.com/lixenwraith/petals/vmath"
)

// Hearts pops each heart in at its own activation window, pulses it, then fades it out
type Hearts struct{}

func (Hearts) Name() string { return "hearts" }

// heart envelope phase boundaries within the activation window
const (
	heartPopEnd  = 0.2
	heartBeatEnd = 0.75
)

func (Hearts) At(i, n int, u float64, vp Viewport) VisualState {
	start := vmath.Seed(i, 0) * 0.72
	span := 0.2 + vmath.Seed(i, 1)*0.08
	s, ok := vmath.Window(u, start, span)
	if !ok {
		return VisualState{}
	}

	hw, hh := vp.HalfW(), vp.HalfH()
	base := 0.7 + 0.3*vmath.Seed(i, 5)
	beats := 2 + math.Floor(vmath.Seed(i, 4)*3)

	var scale, opacity float64
	switch {
	case s < heartPopEnd:
		p := s / heartPopEnd
		scale = base * vmath.BackOut(p)
		opacity = p
	case s < heartBeatEnd:
		p := (s - heartPopEnd) / (heartBeatEnd - heartPopEnd)
		scale = base * (1 + 0.18*math.Abs(math.Sin(math.Pi*beats*p)))
		opacity = 1
	default:
		p := (s - heartBeatEnd) / (1 - heartBeatEnd)
		scale = base * (1 - 0.4*p)
		opacity = 1 - p
	}

	return VisualState{
		X:        vmath.SeedSigned(i, 2) * hw * 0.85,
		Y:        vmath.SeedSigned(i, 3)*hh*0.75 - s*hh*0.15,
		Z:        vmath.Seed(i, 6),
		Rotation: 0.15 * math.Sin(2*math.Pi*s+vmath.Seed(i, 7)*2*math.Pi),
		Scale:    scale,
		Opacity:  opacity,
	}
}
