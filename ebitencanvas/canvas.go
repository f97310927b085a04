// Package ebitencanvas adapts Ebitengine images to the redraw Canvas
// capability, so a redraw scene tree can composite on the GPU.
package ebitencanvas

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/redraw"
)

// BlendMode selects how a canvas is composited when it is blitted onto
// another. Every mode only touches the blit rect, so damage reporting holds.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over
	BlendAdd                     // additive, for glows and highlights
	BlendNone                    // opaque copy, replacing the destination pixels
)

// EbitenBlend returns the ebiten.Blend value for b. Unknown modes fall back
// to source-over.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// Canvas is a redraw.Canvas over an *ebiten.Image.
type Canvas struct {
	image *ebiten.Image
	owned bool

	// Blend is used when this canvas is blitted onto another.
	Blend BlendMode
}

// New creates a transparent canvas of the given size. The canvas owns its
// image; release it with Dispose.
func New(w, h int) *Canvas {
	return &Canvas{image: ebiten.NewImage(w, h), owned: true}
}

// Wrap adapts an existing image, such as the screen passed to
// ebiten.Game.Draw. The caller keeps ownership of img.
func Wrap(img *ebiten.Image) *Canvas {
	return &Canvas{image: img}
}

// FromImage uploads a CPU image into a new canvas.
func FromImage(img image.Image) *Canvas {
	return &Canvas{image: ebiten.NewImageFromImage(img), owned: true}
}

// Image returns the underlying *ebiten.Image for direct manipulation. Nodes
// using the canvas as their surface must be invalidated after drawing on it.
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.image.Bounds().Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.image.Bounds().Dy()
}

// Clear fills the canvas with transparent black.
func (c *Canvas) Clear() {
	c.image.Clear()
}

// Fill fills the entire canvas with the given color.
func (c *Canvas) Fill(col color.Color) {
	c.image.Fill(col)
}

// Dispose releases the image if the canvas owns it. Wrapped images are left
// to their owner.
func (c *Canvas) Dispose() {
	if c.owned && c.image != nil {
		c.image.Deallocate()
	}
	c.image = nil
}

// Copy implements redraw.Canvas.
func (c *Canvas) Copy() redraw.Canvas {
	b := c.image.Bounds()
	img := ebiten.NewImage(b.Dx(), b.Dy())
	var op ebiten.DrawImageOptions
	op.Blend = ebiten.BlendCopy
	img.DrawImage(c.image, &op)
	return &Canvas{image: img, owned: true, Blend: c.Blend}
}

// Blit implements redraw.Canvas. src must be a *Canvas.
func (c *Canvas) Blit(src redraw.Canvas, x, y int) redraw.Rect {
	s, ok := src.(*Canvas)
	if !ok {
		panic(fmt.Sprintf("ebitencanvas: cannot blit %T", src))
	}
	sb := s.image.Bounds()
	db := c.image.Bounds()
	target := image.Rect(x, y, x+sb.Dx(), y+sb.Dy()).Add(db.Min)
	clipped := target.Intersect(db)
	if clipped.Empty() {
		return redraw.Rect{X: x, Y: y}
	}

	var op ebiten.DrawImageOptions
	// Source sub-images draw from their own top-left; destination
	// sub-images keep the coordinates of the image they were cut from.
	op.GeoM.Translate(float64(target.Min.X), float64(target.Min.Y))
	op.Blend = s.Blend.EbitenBlend()
	c.image.DrawImage(s.image, &op)

	return redraw.NewRect(clipped.Sub(db.Min))
}
