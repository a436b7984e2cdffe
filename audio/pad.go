package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// PadGenerator synthesizes a soft sustained chord with a slow swell
// Used when no ambient audio file is configured or it fails to decode
type PadGenerator struct {
	sr    beep.SampleRate
	pos   int
	freqs []float64
}

// NewPadGenerator creates an endless pad over the given chord
func NewPadGenerator(sr beep.SampleRate, freqs ...float64) *PadGenerator {
	if len(freqs) == 0 {
		freqs = []float64{220, 277.18, 329.63, 440}
	}
	return &PadGenerator{sr: sr, freqs: freqs}
}

func (g *PadGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	norm := 0.5 / float64(len(g.freqs))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 8 second swell so the loop breathes
		swell := 0.75 + 0.25*math.Sin(2*math.Pi*t/8)

		var l, r float64
		for k, f := range g.freqs {
			// Slight detune between channels widens the image
			detune := 0.15 * float64(k+1)
			l += math.Sin(2 * math.Pi * (f - detune) * t)
			r += math.Sin(2 * math.Pi * (f + detune) * t)
		}

		samples[i][0] = l * norm * swell
		samples[i][1] = r * norm * swell
		g.pos++
	}
	return len(samples), true
}

func (g *PadGenerator) Err() error {
	return nil
}
