package redraw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Canvas is a drawable pixel buffer. The scene graph never touches pixels
// itself: it only copies surfaces to build composites and blits composites
// onto their destination.
//
// Canvas values are compared by identity (==), so implementations should be
// pointer types.
type Canvas interface {
	// Copy returns an independent copy of the canvas.
	Copy() Canvas
	// Blit draws src onto the canvas with its top-left corner at (x, y) and
	// returns the area of the canvas that was affected, clipped to its bounds.
	Blit(src Canvas, x, y int) Rect
}

// ImageCanvas is a CPU Canvas backed by an *image.NRGBA. Blits use
// source-over compositing.
type ImageCanvas struct {
	img *image.NRGBA
}

// NewImageCanvas creates a transparent canvas of the given size.
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// NewSolidCanvas creates a canvas of the given size filled with c.
func NewSolidCanvas(width, height int, c color.Color) *ImageCanvas {
	return &ImageCanvas{img: imaging.New(width, height, c)}
}

// NewImageCanvasFrom creates a canvas holding a copy of img. The copy is
// rebased so that its bounds start at (0, 0).
func NewImageCanvasFrom(img image.Image) *ImageCanvas {
	return &ImageCanvas{img: imaging.Clone(img)}
}

// OpenImageCanvas loads an image file into a new canvas.
func OpenImageCanvas(path string) (*ImageCanvas, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open canvas %s: %w", path, err)
	}
	return NewImageCanvasFrom(img), nil
}

// Image returns the backing image. Mutating it in place requires a call to
// Node.Invalidate on every node using this canvas as its surface.
func (c *ImageCanvas) Image() *image.NRGBA {
	return c.img
}

// Bounds returns the canvas area as a Rect.
func (c *ImageCanvas) Bounds() Rect {
	return NewRect(c.img.Bounds())
}

// Fill replaces every pixel with col.
func (c *ImageCanvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect replaces the pixels of r, clipped to the canvas, with col.
func (c *ImageCanvas) FillRect(r Rect, col color.Color) {
	draw.Draw(c.img, r.Rectangle().Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// Copy implements Canvas.
func (c *ImageCanvas) Copy() Canvas {
	return &ImageCanvas{img: imaging.Clone(c.img)}
}

// Blit implements Canvas. src must be an *ImageCanvas. A blit that lands
// entirely outside the canvas returns a zero-size Rect at (x, y).
func (c *ImageCanvas) Blit(src Canvas, x, y int) Rect {
	s, ok := src.(*ImageCanvas)
	if !ok {
		panic(fmt.Sprintf("redraw: ImageCanvas cannot blit %T", src))
	}
	sb := s.img.Bounds()
	target := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	clipped := target.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return Rect{X: x, Y: y}
	}
	sp := sb.Min.Add(clipped.Min.Sub(target.Min))
	draw.Draw(c.img, clipped, s.img, sp, draw.Over)
	return NewRect(clipped)
}
