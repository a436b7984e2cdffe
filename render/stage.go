package render

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"github.com/lixenwraith/petals/particle"
)

// emojiCutoff is the opacity below which color glyphs are skipped;
// terminals cannot fade them
const emojiCutoff = 0.2

var errNoArea = errors.New("stage has no drawable area")

// Stage is the particle layer; it implements particle.Surface
// Sprites are owned by the active session and only read here
type Stage struct {
	width   int
	height  int
	sprites []*particle.Sprite
	order   []*particle.Sprite
}

// NewStage creates a stage of the given size in cells
func NewStage(width, height int) *Stage {
	return &Stage{width: width, height: height}
}

// Resize updates the viewport; sessions pick it up on their next frame
func (s *Stage) Resize(width, height int) {
	s.width, s.height = width, height
}

// Viewport returns the stage size for motion laws
func (s *Stage) Viewport() particle.Viewport {
	return particle.Viewport{Width: float64(s.width), Height: float64(s.height)}
}

// Attach adds a session's sprites
func (s *Stage) Attach(sprites []*particle.Sprite) error {
	if s.width <= 0 || s.height <= 0 {
		return errNoArea
	}
	s.sprites = append(s.sprites, sprites...)
	return nil
}

// Detach removes sprites previously attached
func (s *Stage) Detach(sprites []*particle.Sprite) {
	gone := make(map[*particle.Sprite]struct{}, len(sprites))
	for _, sp := range sprites {
		gone[sp] = struct{}{}
	}
	kept := s.sprites[:0]
	for _, sp := range s.sprites {
		if _, ok := gone[sp]; !ok {
			kept = append(kept, sp)
		}
	}
	clear(s.sprites[len(kept):])
	s.sprites = kept
}

// Len returns the number of attached sprites
func (s *Stage) Len() int { return len(s.sprites) }

// Draw composites visible sprites back to front
func (s *Stage) Draw(b *Buffer) {
	if len(s.sprites) == 0 {
		return
	}
	s.order = append(s.order[:0], s.sprites...)
	sort.SliceStable(s.order, func(i, j int) bool {
		return s.order[i].State.Z < s.order[j].State.Z
	})

	hw, hh := float64(s.width)/2, float64(s.height)/2
	for _, sp := range s.order {
		st := sp.State
		if st.Opacity <= 0 {
			continue
		}
		x := int(math.Round(hw + st.X))
		y := int(math.Round(hh + st.Y))

		if st.Stretch >= 1 {
			drawStreak(b, x, y, st)
		}
		if tex := sp.Visual.Texture; tex != nil && st.Scale >= 0.5 {
			b.DrawGrid(tex, x-tex.Width/2, y-tex.Height/2, st.Opacity)
			continue
		}
		drawGlyph(b, x, y, sp.Glyph(), sp.Visual.Color, st.Opacity)
	}
}

func drawGlyph(b *Buffer, x, y int, r rune, tint color.RGBA, opacity float64) {
	if !b.inBounds(x, y) {
		return
	}
	if tint.A == 0 {
		// Untinted glyphs are color emoji
		if opacity < emojiCutoff {
			return
		}
		tint = RgbText
	}
	b.SetRune(x, y, r, Fade(tint, b.At(x, y).Bg, opacity))
}

// drawStreak trails a fading line behind the sprite, opposite its heading
func drawStreak(b *Buffer, x, y int, st particle.VisualState) {
	n := int(st.Stretch)
	dx, dy := -math.Cos(st.Rotation), -math.Sin(st.Rotation)
	ch := streakRune(st.Rotation)
	for k := 1; k <= n; k++ {
		px := int(math.Round(float64(x) + dx*float64(k)))
		py := int(math.Round(float64(y) + dy*float64(k)*0.5))
		if !b.inBounds(px, py) {
			continue
		}
		a := st.Opacity * (1 - float64(k)/float64(n+1))
		b.SetRune(px, py, ch, Fade(RgbStreak, b.At(px, py).Bg, a))
	}
}

// streakRune picks a line character close to the heading
func streakRune(rot float64) rune {
	deg := math.Mod(rot*180/math.Pi, 180)
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '─'
	case deg < 67.5:
		return '╲'
	case deg < 112.5:
		return '│'
	default:
		return '╱'
	}
}
