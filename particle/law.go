package particle

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/petals/section"
)

// Law is a closed-form motion law
// At evaluates particle i of n at canonical forward progress u in [0, 1]
// Implementations must be pure and return zero opacity at u=0 and u=1
type Law interface {
	Name() string
	At(i, n int, u float64, vp Viewport) VisualState
}

// Evaluate computes a particle's state at elapsed fraction t
// Reverse playback re-evaluates the forward law at 1-t and mirrors X
func Evaluate(law Law, i, n int, t float64, dir section.Direction, vp Viewport) VisualState {
	u := t
	if dir == section.Reverse {
		u = 1 - t
	}
	s := law.At(i, n, u, vp)
	if dir == section.Reverse {
		s.X = -s.X
		s.Rotation = mirrorAngle(s.Rotation)
	}
	return s
}

// Registry maps law names to implementations
type Registry struct {
	laws map[string]Law
}

// NewRegistry creates a registry holding the given laws
func NewRegistry(laws ...Law) *Registry {
	r := &Registry{laws: make(map[string]Law, len(laws))}
	for _, l := range laws {
		r.laws[l.Name()] = l
	}
	return r
}

// DefaultRegistry holds every built-in law
func DefaultRegistry() *Registry {
	return NewRegistry(
		Birds{},
		Petals(),
		Leaves(),
		ShootingStars{},
		Hearts{},
		Butterflies{},
		Sparkles{},
	)
}

// Lookup returns the law registered under name
func (r *Registry) Lookup(name string) (Law, error) {
	l, ok := r.laws[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLaw, name)
	}
	return l, nil
}

// Names returns registered law names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.laws))
	for n := range r.laws {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
