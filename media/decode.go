package media

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

const (
	// EmbedScheme addresses a file inside the loader's embedded filesystem
	EmbedScheme = "embed:"

	defaultFrameDelay = 100 * time.Millisecond
)

// ErrNoSource is returned when every source in a fallback list fails
var ErrNoSource = errors.New("no playable source")

// Clip is a decoded, fully composited sequence of frames
type Clip struct {
	Source string
	Frames []image.Image
	Delays []time.Duration
	// LoopCount follows image/gif: 0 loops forever, -1 plays once, n plays n+1 times
	LoopCount int
}

// Still reports whether the clip is a single image
func (c *Clip) Still() bool { return len(c.Frames) == 1 }

// Plays returns how many times the clip runs, 0 meaning forever
func (c *Clip) Plays() int {
	switch {
	case c.Still():
		return 1
	case c.LoopCount == 0:
		return 0
	case c.LoopCount < 0:
		return 1
	default:
		return c.LoopCount + 1
	}
}

// Loader opens sources from disk or from an embedded filesystem
type Loader struct {
	Embedded fs.FS
}

// NewLoader creates a loader; embedded may be nil
func NewLoader(embedded fs.FS) *Loader {
	return &Loader{Embedded: embedded}
}

// Open returns a reader for src
func (l *Loader) Open(src string) (io.ReadCloser, error) {
	if name, ok := strings.CutPrefix(src, EmbedScheme); ok {
		if l.Embedded == nil {
			return nil, fmt.Errorf("open %s: no embedded assets", src)
		}
		return l.Embedded.Open(name)
	}
	return os.Open(src)
}

// Load decodes one source, selecting the decoder by extension
func (l *Loader) Load(src string) (*Clip, error) {
	r, err := l.Open(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if strings.EqualFold(path.Ext(src), ".gif") {
		clip, err := decodeGIF(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", src, err)
		}
		clip.Source = src
		return clip, nil
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return &Clip{Source: src, Frames: []image.Image{img}, Delays: []time.Duration{0}, LoopCount: -1}, nil
}

// LoadFirst tries sources in order and returns the first that decodes
func (l *Loader) LoadFirst(sources []string) (*Clip, error) {
	if len(sources) == 0 {
		return nil, ErrNoSource
	}
	var errs []error
	for _, src := range sources {
		clip, err := l.Load(src)
		if err == nil {
			return clip, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoSource, errors.Join(errs...))
}

// decodeGIF composites every frame onto a full canvas honoring disposal
func decodeGIF(r io.Reader) (*Clip, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, errors.New("gif has no frames")
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	clip := &Clip{LoopCount: g.LoopCount}
	for i, frame := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		clip.Frames = append(clip.Frames, cloneRGBA(canvas))

		delay := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		clip.Delays = append(clip.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
	}
	return clip, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
