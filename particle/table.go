package particle

import (
	"image/color"
	"time"

	"github.com/lixenwraith/petals/section"
)

// Spec configures the population of one section's transition
type Spec struct {
	Law      string
	Count    int
	Duration time.Duration
	Glyphs   []rune
	Color    color.RGBA
	// Texture names a shared decoded texture; empty means glyphs only
	Texture string
}

// Table maps sections to their particle spec, with a fallback for unlisted sections
type Table struct {
	specs    map[section.ID]Spec
	fallback Spec
}

// NewTable creates a table; fallback is used for sections without an entry
func NewTable(fallback Spec) *Table {
	return &Table{specs: make(map[section.ID]Spec), fallback: fallback}
}

// Set assigns the spec for a section
func (t *Table) Set(id section.ID, s Spec) {
	t.specs[id] = s
}

// Spec returns the section's spec, or the fallback
func (t *Table) Spec(id section.ID) Spec {
	if s, ok := t.specs[id]; ok {
		return s
	}
	return t.fallback
}
