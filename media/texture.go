package media

import (
	"fmt"
	"sync"
)

// TextureSpec describes how to build a named texture
type TextureSpec struct {
	Sources []string
	Cols    int
	Rows    int
}

type textureEntry struct {
	once sync.Once
	grid *Grid
	err  error
}

// TextureCache builds each named texture at most once and shares the result
// Returned grids are read-only
type TextureCache struct {
	loader *Loader
	specs  map[string]TextureSpec

	mu      sync.Mutex
	entries map[string]*textureEntry
}

// NewTextureCache creates a cache over the given specs
func NewTextureCache(loader *Loader, specs map[string]TextureSpec) *TextureCache {
	return &TextureCache{
		loader:  loader,
		specs:   specs,
		entries: make(map[string]*textureEntry),
	}
}

// Texture returns the named texture, decoding the first frame of its first working source on first use
// A failed build is remembered and not retried
func (c *TextureCache) Texture(name string) (*Grid, error) {
	c.mu.Lock()
	e, ok := c.entries[name]
	if !ok {
		e = &textureEntry{}
		c.entries[name] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.grid, e.err = c.build(name)
	})
	return e.grid, e.err
}

func (c *TextureCache) build(name string) (*Grid, error) {
	spec, ok := c.specs[name]
	if !ok {
		return nil, fmt.Errorf("texture %q: not configured", name)
	}
	clip, err := c.loader.LoadFirst(spec.Sources)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	grid := ToCells(clip.Frames[0], spec.Cols, spec.Rows)
	if grid.Opaque() == 0 {
		return nil, fmt.Errorf("texture %q: %s is fully transparent", name, clip.Source)
	}
	return grid, nil
}

// Built reports whether name has been built, successfully or not
func (c *TextureCache) Built(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	return ok
}
