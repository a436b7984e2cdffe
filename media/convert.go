package media

import (
	"context"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'

	// alphaCutoff treats mostly transparent pixels as holes
	alphaCutoff = 96
)

// ToCells scales img to cols x rows cells using half blocks
// Each cell covers two vertically stacked pixels: the upper pixel is the
// foreground of '▀' and the lower pixel is its background
func ToCells(img image.Image, cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	if img == nil || cols <= 0 || rows <= 0 || img.Bounds().Empty() {
		return g
	}

	px := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(px, px.Bounds(), img, img.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := px.RGBAAt(x, y*2)
			bot := px.RGBAAt(x, y*2+1)
			g.Set(x, y, halfBlock(top, bot))
		}
	}
	return g
}

func halfBlock(top, bot color.RGBA) Cell {
	topOn := top.A >= alphaCutoff
	botOn := bot.A >= alphaCutoff
	switch {
	case topOn && botOn:
		return Cell{Rune: upperHalf, Fg: opaque(top), Bg: opaque(bot)}
	case topOn:
		return Cell{Rune: upperHalf, Fg: opaque(top)}
	case botOn:
		return Cell{Rune: lowerHalf, Fg: opaque(bot)}
	default:
		return Cell{}
	}
}

// opaque undoes alpha premultiplication
func opaque(c color.RGBA) color.RGBA {
	if c.A == 0 || c.A == 255 {
		c.A = 255
		return c
	}
	scale := 255 / float64(c.A)
	return color.RGBA{
		R: clampByte(float64(c.R) * scale),
		G: clampByte(float64(c.G) * scale),
		B: clampByte(float64(c.B) * scale),
		A: 255,
	}
}

func clampByte(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// ConvertClip converts every frame of clip in parallel
func ConvertClip(ctx context.Context, clip *Clip, cols, rows int) ([]*Grid, error) {
	grids := make([]*Grid, len(clip.Frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, frame := range clip.Frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			grids[i] = ToCells(frame, cols, rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return grids, nil
}
