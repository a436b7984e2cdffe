// Package section defines the fixed, ordered sequence of sections and the
// progress fraction derived from a section's position in it.
package section

import "fmt"

// ID identifies a section
type ID string

// Direction of a transition relative to section order
type Direction int

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Sign is +1 for Forward and -1 for Reverse
func (d Direction) Sign() float64 {
	if d == Reverse {
		return -1
	}
	return 1
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Reverse {
		return Forward
	}
	return Reverse
}

// Sequence is the static section order: a gate section followed by content sections
// It is immutable after construction
type Sequence struct {
	ids     []ID
	ordinal map[ID]int
}

// NewSequence builds a sequence; the first ID is the gate section
func NewSequence(ids ...ID) (*Sequence, error) {
	if len(ids) < 2 {
		return nil, fmt.Errorf("sequence needs a gate section and at least one content section, got %d ids", len(ids))
	}
	s := &Sequence{
		ids:     make([]ID, len(ids)),
		ordinal: make(map[ID]int, len(ids)),
	}
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("section %d has empty id", i)
		}
		if _, dup := s.ordinal[id]; dup {
			return nil, fmt.Errorf("duplicate section id %q", id)
		}
		s.ids[i] = id
		s.ordinal[id] = i
	}
	return s, nil
}

// MustSequence is NewSequence that panics on error, for static tables
func MustSequence(ids ...ID) *Sequence {
	s, err := NewSequence(ids...)
	if err != nil {
		panic(err)
	}
	return s
}

// Gate returns the gate (welcome) section
func (s *Sequence) Gate() ID { return s.ids[0] }

// First returns the first content section
func (s *Sequence) First() ID { return s.ids[1] }

// Last returns the last content section
func (s *Sequence) Last() ID { return s.ids[len(s.ids)-1] }

// Len returns the number of sections including the gate
func (s *Sequence) Len() int { return len(s.ids) }

// IDs returns a copy of the full order
func (s *Sequence) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Content returns a copy of the content order (gate excluded)
func (s *Sequence) Content() []ID {
	out := make([]ID, len(s.ids)-1)
	copy(out, s.ids[1:])
	return out
}

// Has reports whether id is part of the sequence
func (s *Sequence) Has(id ID) bool {
	_, ok := s.ordinal[id]
	return ok
}

// Ordinal returns the position of id in the full order
func (s *Sequence) Ordinal(id ID) (int, bool) {
	o, ok := s.ordinal[id]
	return o, ok
}

// At returns the section at ordinal i
func (s *Sequence) At(i int) (ID, bool) {
	if i < 0 || i >= len(s.ids) {
		return "", false
	}
	return s.ids[i], true
}

// Next returns the section after id, if any
func (s *Sequence) Next(id ID) (ID, bool) {
	o, ok := s.ordinal[id]
	if !ok {
		return "", false
	}
	return s.At(o + 1)
}

// Prev returns the content section before id; the gate is never returned
func (s *Sequence) Prev(id ID) (ID, bool) {
	o, ok := s.ordinal[id]
	if !ok || o <= 1 {
		return "", false
	}
	return s.At(o - 1)
}

// DirectionBetween infers the transition direction: Forward iff to comes after from
func (s *Sequence) DirectionBetween(from, to ID) Direction {
	if s.ordinal[to] > s.ordinal[from] {
		return Forward
	}
	return Reverse
}
