package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette
var (
	RgbBackground    = color.RGBA{26, 27, 38, 255}    // Tokyo Night background
	RgbText          = color.RGBA{232, 226, 240, 255} // Soft white body text
	RgbMuted         = color.RGBA{128, 128, 150, 255} // Hints and progress track
	RgbError         = color.RGBA{255, 110, 125, 255} // Gate mismatch message
	RgbInput         = color.RGBA{255, 183, 197, 255} // Masked passphrase
	RgbProgressFill  = color.RGBA{255, 143, 177, 255} // Rose
	RgbProgressTrack = color.RGBA{52, 54, 74, 255}
	RgbStreak        = color.RGBA{200, 210, 255, 255} // Shooting star afterimage
)

// Blend mixes src over dst with the given alpha, interpolating in RGB
func Blend(dst, src color.RGBA, alpha float64) color.RGBA {
	switch {
	case alpha <= 0:
		return dst
	case alpha >= 1:
		return src
	}
	return fromColorful(toColorful(dst).BlendRgb(toColorful(src), alpha))
}

// Fade dims fg toward bg; opacity 0 is invisible text
func Fade(fg, bg color.RGBA, opacity float64) color.RGBA {
	return Blend(bg, fg, opacity)
}

// Tcell converts a palette color into a true-color tcell color
func Tcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}
