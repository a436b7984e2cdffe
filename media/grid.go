// Package media decodes overlay clips and textures and converts them into
// terminal cell grids.
package media

import "image/color"

// Cell is one terminal cell of a converted image
// A zero Rune marks a transparent cell
type Cell struct {
	Rune rune
	Fg   color.RGBA
	Bg   color.RGBA
}

// Transparent reports whether the cell draws nothing
func (c Cell) Transparent() bool { return c.Rune == 0 }

// HasBg reports whether the cell paints its background
func (c Cell) HasBg() bool { return c.Bg.A > 0 }

// Grid is a row-major block of cells
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid allocates a transparent grid
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{Width: w, Height: h, Cells: make([]Cell, w*h)}
}

// At returns the cell at (x, y), transparent when out of bounds
func (g *Grid) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return Cell{}
	}
	return g.Cells[y*g.Width+x]
}

// Set writes a cell, ignoring out of bounds coordinates
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Cells[y*g.Width+x] = c
}

// Opaque counts non-transparent cells
func (g *Grid) Opaque() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Transparent() {
			n++
		}
	}
	return n
}
