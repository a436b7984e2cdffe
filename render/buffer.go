package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/petals/media"
	"github.com/mattn/go-runewidth"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA

	// wide marks the right half of a double-width rune drawn in the cell to the left
	wide bool
}

// Buffer is the frame compositor; layers draw into it back to front and
// Flush copies the result to the screen
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions
func (b *Buffer) Size() (int, int) { return b.width, b.height }

// Resize adjusts buffer dimensions, reallocating only if capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear(RgbBackground)
}

// Clear resets every cell to an empty cell on bg
func (b *Buffer) Clear(bg color.RGBA) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: RgbText, Bg: bg}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y); out of bounds yields the zero cell
func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// SetRune draws r with fg over the existing background
// Returns the number of columns consumed, 0 if nothing was drawn
func (b *Buffer) SetRune(x, y int, r rune, fg color.RGBA) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !b.inBounds(x, y) || (w == 2 && !b.inBounds(x+1, y)) {
		return 0
	}

	b.release(x, y)
	idx := y*b.width + x
	b.cells[idx].Rune = r
	b.cells[idx].Fg = fg
	if w == 2 {
		b.release(x+1, y)
		b.cells[idx+1].Rune = 0
		b.cells[idx+1].wide = true
	}
	return w
}

// release detaches (x, y) from any double-width rune it belongs to
func (b *Buffer) release(x, y int) {
	idx := y*b.width + x
	c := &b.cells[idx]
	if c.wide {
		c.wide = false
		c.Rune = ' '
		if x > 0 {
			b.cells[idx-1].Rune = ' '
		}
		return
	}
	if x+1 < b.width && b.cells[idx+1].wide && runewidth.RuneWidth(c.Rune) == 2 {
		b.cells[idx+1].wide = false
		b.cells[idx+1].Rune = ' '
	}
}

// SetBg blends bg into the cell background
func (b *Buffer) SetBg(x, y int, bg color.RGBA, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	c := &b.cells[y*b.width+x]
	c.Bg = Blend(c.Bg, bg, alpha)
}

// Text draws s starting at (x, y), returning the columns written
func (b *Buffer) Text(x, y int, s string, fg color.RGBA) int {
	col := x
	for _, r := range s {
		if w := b.SetRune(col, y, r, fg); w > 0 {
			col += w
		} else {
			col += runewidth.RuneWidth(r)
		}
	}
	return col - x
}

// TextCentered draws s centered on row y, fading fg toward each cell's background
func (b *Buffer) TextCentered(y int, s string, fg color.RGBA, opacity float64) {
	b.TextFaded((b.width-runewidth.StringWidth(s))/2, y, s, fg, opacity)
}

// TextFaded draws s starting at column x with fg faded toward each cell's background
func (b *Buffer) TextFaded(x, y int, s string, fg color.RGBA, opacity float64) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if b.inBounds(x, y) {
			b.SetRune(x, y, r, Fade(fg, b.At(x, y).Bg, opacity))
		}
		x += w
	}
}

// DrawGrid composites a converted image with its top-left corner at (ox, oy)
func (b *Buffer) DrawGrid(g *media.Grid, ox, oy int, opacity float64) {
	if g == nil || opacity <= 0 {
		return
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.At(x, y)
			if c.Transparent() {
				continue
			}
			bx, by := ox+x, oy+y
			if !b.inBounds(bx, by) {
				continue
			}
			under := b.At(bx, by).Bg
			if c.HasBg() {
				b.SetBg(bx, by, c.Bg, opacity)
			}
			b.SetRune(bx, by, c.Rune, Blend(under, c.Fg, opacity))
		}
	}
}

// Flush copies the buffer to the screen; the caller shows the screen
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c.wide {
				continue
			}
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(Tcell(c.Fg)).Background(Tcell(c.Bg))
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
