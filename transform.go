package redraw

import "fmt"

// --- Position setters ---

// Position returns the node's unrounded position and whether it is set.
func (n *Node) Position() (Vec2, bool) {
	return n.position, n.hasPosition
}

// SetPosition sets the node's position relative to its parent. The area
// covered last frame and the new area are both reported on the next render.
func (n *Node) SetPosition(x, y float64) {
	if n.hasPosition && n.position.X == x && n.position.Y == y {
		return
	}
	n.position = Vec2{X: x, Y: y}
	n.hasPosition = true
	n.positionChanged()
}

// ClearPosition unsets the node's position. A node without a position does
// not render, and neither does its subtree.
func (n *Node) ClearPosition() {
	if !n.hasPosition {
		return
	}
	n.position = Vec2{}
	n.hasPosition = false
	n.positionChanged()
}

func (n *Node) positionChanged() {
	n.flagRects()
	n.flagCaches(false)
}

// MoveBy offsets the node's position by (dx, dy) and returns the new
// position. Returns ErrNoPosition if the position is not set.
func (n *Node) MoveBy(dx, dy float64) (Vec2, error) {
	if !n.hasPosition {
		return Vec2{}, fmt.Errorf("move %s: %w", n, ErrNoPosition)
	}
	n.SetPosition(n.position.X+dx, n.position.Y+dy)
	return n.position, nil
}

// --- Coordinate conversion ---

// RenderCoords returns the pixel coordinates the node renders at relative to
// its parent, rounded with ToNearestPixel. ok is false when the position is
// not set.
func (n *Node) RenderCoords() (x, y int, ok bool) {
	if !n.hasPosition {
		return 0, 0, false
	}
	x, y = pixelCoords(n.position)
	return x, y, true
}

// RenderX returns the rounded x coordinate the node renders at.
func (n *Node) RenderX() (int, error) {
	if !n.hasPosition {
		return 0, fmt.Errorf("render x of %s: %w", n, ErrNoPosition)
	}
	return ToNearestPixel(n.position.X), nil
}

// RenderY returns the rounded y coordinate the node renders at.
func (n *Node) RenderY() (int, error) {
	if !n.hasPosition {
		return 0, fmt.Errorf("render y of %s: %w", n, ErrNoPosition)
	}
	return ToNearestPixel(n.position.Y), nil
}

// AbsoluteRenderCoords sums the rounded coordinates of every node in the
// ancestry. When the top-level node renders straight onto a window, this is
// the node's location on that window. ok is false if any node in the chain
// has no position.
func (n *Node) AbsoluteRenderCoords() (x, y int, ok bool) {
	for p := n; p != nil; p = p.Parent() {
		px, py, has := p.RenderCoords()
		if !has {
			return 0, 0, false
		}
		x += px
		y += py
	}
	return x, y, true
}
