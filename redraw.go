package redraw

import (
	"image"
	"math"
)

// Vec2 is a 2D vector used for node positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned integer rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect converts an image.Rectangle to a Rect.
func NewRect(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Rectangle returns r as an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Area returns Width*Height, or 0 for empty rects.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether other lies entirely within r.
// Edges are inclusive, so a rect contains itself.
func (r Rect) Contains(other Rect) bool {
	return !(other.X < r.X ||
		other.Right() > r.Right() ||
		other.Y < r.Y ||
		other.Bottom() > r.Bottom())
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the largest rect contained by both r and other.
// If they do not overlap, the zero Rect is returned.
func (r Rect) Intersect(other Rect) Rect {
	return NewRect(r.Rectangle().Intersect(other.Rectangle()))
}

// ToNearestPixel rounds a coordinate to an integer pixel, half-up.
// 2.5 becomes 3 and -2.5 becomes -2, so motion across zero stays smooth.
func ToNearestPixel(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		return int(f) + 1
	}
	return int(f)
}

// pixelCoords rounds a position to integer pixel coordinates.
func pixelCoords(p Vec2) (int, int) {
	return ToNearestPixel(p.X), ToNearestPixel(p.Y)
}
