package ecs

import (
	"github.com/phanxgames/redraw"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DamageEvent carries the rects a top-level node redrew in one render.
type DamageEvent struct {
	Frame uint64
	Root  *redraw.Node
	Rects []redraw.Rect
}

// DamageEventType is the Donburi event type for damage reports. Subscribe to
// it in your ECS systems.
var DamageEventType = events.NewEventType[DamageEvent]()

// Renderer renders scene trees and publishes their damage into a Donburi
// world. Frames that redraw nothing publish no event.
type Renderer struct {
	world donburi.World
	frame uint64
}

// NewRenderer creates a Renderer publishing into world.
func NewRenderer(world donburi.World) *Renderer {
	return &Renderer{world: world}
}

// Render renders each root onto dst in order, publishes one DamageEvent per
// root that redrew something, and returns all rects trimmed together.
func (r *Renderer) Render(dst redraw.Canvas, roots ...*redraw.Node) []redraw.Rect {
	r.frame++
	var all []redraw.Rect
	for _, root := range roots {
		rects := root.Render(dst)
		if len(rects) == 0 {
			continue
		}
		DamageEventType.Publish(r.world, DamageEvent{Frame: r.frame, Root: root, Rects: rects})
		all = append(all, rects...)
	}
	return redraw.TrimRects(all)
}

// Frame returns the number of Render calls so far.
func (r *Renderer) Frame() uint64 {
	return r.frame
}
