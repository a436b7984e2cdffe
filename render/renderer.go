// Package render draws the experience onto a tcell screen. Layers are
// composited back to front into a Buffer: overlay media, the section
// container, particles, then the progress bar and audio indicator.
package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/petals/media"
	"github.com/mattn/go-runewidth"
)

// SectionView is the visible content of one section container
type SectionView struct {
	Title   string
	Body    []string
	Hint    string
	Theme   color.RGBA
	Opacity float64

	// Input is set while the section hosts the gate prompt
	Input *InputView
}

// InputView is the gate prompt
type InputView struct {
	Masked string
	// Width is the display width of Masked in cells
	Width  int
	Failed bool
	Error  string
}

// Frame is everything drawn in one frame
type Frame struct {
	Overlay        *media.Grid
	OverlayOpacity float64

	// Section is nil between fade-out and fade-in
	Section *SectionView

	ShowProgress bool
	Progress     float64

	// AudioGlyph is empty when audio is unavailable
	AudioGlyph string
}

// Renderer owns the compositor buffer and the particle stage
type Renderer struct {
	screen tcell.Screen
	buf    *Buffer
	stage  *Stage
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		buf:    NewBuffer(w, h),
		stage:  NewStage(w, h),
	}
}

// Stage returns the particle surface
func (r *Renderer) Stage() *Stage { return r.stage }

// Buffer returns the compositor of the last frame
func (r *Renderer) Buffer() *Buffer { return r.buf }

// Size returns the drawable area in cells
func (r *Renderer) Size() (int, int) { return r.buf.Size() }

// Sync picks up a new screen size; returns true if it changed
func (r *Renderer) Sync() bool {
	w, h := r.screen.Size()
	bw, bh := r.buf.Size()
	if w == bw && h == bh {
		return false
	}
	r.buf.Resize(w, h)
	r.stage.Resize(w, h)
	return true
}

// Draw composites a frame and presents it
func (r *Renderer) Draw(f Frame) {
	r.Sync()
	b := r.buf
	b.Clear(RgbBackground)

	if f.Overlay != nil {
		w, h := b.Size()
		b.DrawGrid(f.Overlay, (w-f.Overlay.Width)/2, (h-f.Overlay.Height)/2, f.OverlayOpacity)
	}
	if f.Section != nil {
		drawSection(b, f.Section)
	}
	r.stage.Draw(b)
	if f.ShowProgress {
		drawProgress(b, f.Progress)
	}
	if f.AudioGlyph != "" {
		w, _ := b.Size()
		b.Text(w-2-runewidth.StringWidth(f.AudioGlyph), 0, f.AudioGlyph, RgbText)
	}

	b.Flush(r.screen)
	r.screen.Show()
}

// drawSection centers the container: title, blank, body, blank, input, hint
func drawSection(b *Buffer, s *SectionView) {
	if s.Opacity <= 0 {
		return
	}
	_, h := b.Size()

	lines := 2 + len(s.Body)
	if s.Input != nil {
		lines += 3
	}
	if s.Hint != "" {
		lines += 2
	}
	y := (h - lines) / 2

	theme := s.Theme
	if theme.A == 0 {
		theme = RgbText
	}
	b.TextCentered(y, s.Title, theme, s.Opacity)
	y += 2
	for _, line := range s.Body {
		b.TextCentered(y, line, RgbText, s.Opacity)
		y++
	}

	if in := s.Input; in != nil {
		y++
		w, _ := b.Size()
		b.TextFaded((w-in.Width-4)/2, y, "[ "+in.Masked+" ]", RgbInput, s.Opacity)
		y++
		if in.Failed {
			b.TextCentered(y, in.Error, RgbError, s.Opacity)
		}
		y++
	}

	if s.Hint != "" {
		y++
		b.TextCentered(y, s.Hint, RgbMuted, s.Opacity)
	}
}

// drawProgress draws the bar on the bottom row
func drawProgress(b *Buffer, frac float64) {
	w, h := b.Size()
	width := w - 4
	if width <= 0 || h == 0 {
		return
	}
	filled := int(math.Round(math.Max(0, math.Min(1, frac)) * float64(width)))
	y := h - 1
	for i := 0; i < width; i++ {
		if i < filled {
			b.SetRune(2+i, y, '━', RgbProgressFill)
		} else {
			b.SetRune(2+i, y, '─', RgbProgressTrack)
		}
	}
}
