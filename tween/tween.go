// Package tween animates redraw nodes with gween easing functions.
package tween

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/redraw"
)

// Position animates a node's position. Create one via To or By and call
// Update(dt) each frame before rendering. Values are applied through
// SetPosition, so the next Render reports the moved area. If the node's
// position is cleared mid-animation, the tween stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type Position struct {
	x, y   *gween.Tween
	target *redraw.Node
	Done   bool
}

// To creates a tween that moves node to (toX, toY) over duration seconds
// using the easing function. Returns redraw.ErrNoPosition if the node has no
// position to start from.
func To(node *redraw.Node, toX, toY float64, duration float32, fn ease.TweenFunc) (*Position, error) {
	from, ok := node.Position()
	if !ok {
		return nil, fmt.Errorf("tween %s: %w", node, redraw.ErrNoPosition)
	}
	return &Position{
		x:      gween.New(float32(from.X), float32(toX), duration, fn),
		y:      gween.New(float32(from.Y), float32(toY), duration, fn),
		target: node,
	}, nil
}

// By is To relative to the node's current position.
func By(node *redraw.Node, dx, dy float64, duration float32, fn ease.TweenFunc) (*Position, error) {
	from, _ := node.Position()
	return To(node, from.X+dx, from.Y+dy, duration, fn)
}

// Update advances the tween by dt seconds and moves the node.
func (t *Position) Update(dt float32) {
	if t.Done {
		return
	}
	if _, ok := t.target.Position(); !ok {
		t.Done = true
		return
	}
	x, doneX := t.x.Update(dt)
	y, doneY := t.y.Update(dt)
	t.target.SetPosition(float64(x), float64(y))
	t.Done = doneX && doneY
}

// Reset rewinds the tween to its start, moving the node back there on the
// next Update.
func (t *Position) Reset() {
	t.x.Reset()
	t.y.Reset()
	t.Done = false
}
