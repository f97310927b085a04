package redraw

import "time"

// Render draws the tree rooted at n onto dst and returns the areas of dst
// that changed since the previous call, with rects contained in other rects
// removed.
//
// Call Render once per frame on each top-level node, passing the same
// destination every frame, and use the result to update that destination.
// Rendering an unchanged tree returns no rects.
func (n *Node) Render(dst Canvas) []Rect {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	rects := n.topLevelRects
	n.topLevelRects = nil
	rects = append(rects, n.render(dst, 0, 0)...)
	trimmed := TrimRects(rects)

	if globalDebug {
		debugLogRender(n, renderStats{
			raw:     len(rects),
			trimmed: len(trimmed),
			elapsed: time.Since(t0),
		})
	}
	return trimmed
}

// render walks the subtree depth-first, children before the parent's blit.
// offX and offY accumulate the positions of surfaceless ancestors between n
// and the canvas it draws onto. The returned rects are in dst coordinates.
func (n *Node) render(dst Canvas, offX, offY int) []Rect {
	var rects []Rect

	fullyUpdated := n.rectChanged || (!n.rendered && n.surface != nil)

	// Report what changed in last frame's area, then forget it.
	if n.rendered {
		if n.rectChanged {
			rects = append(rects, n.rect)
		} else {
			for _, r := range n.subRects {
				rects = append(rects, r.Offset(n.originX, n.originY))
			}
		}
	}
	n.clearRenderState()

	if !n.enabled || !n.hasPosition {
		return rects
	}

	x, y := pixelCoords(n.position)
	x += offX
	y += offY

	if n.surface != nil {
		work := n.cached
		if work == nil {
			work, _ = n.CopySurface()
			for _, child := range n.children.view() {
				childRects := child.render(work, 0, 0)
				// The whole area is reported below when fully updated.
				if fullyUpdated {
					continue
				}
				for _, r := range childRects {
					rects = append(rects, r.Offset(x, y))
				}
			}
		}
		n.cached = work
		n.composited = true

		r := dst.Blit(work, x, y)
		if !r.Empty() {
			n.rect = r
			n.rendered = true
			n.originX, n.originY = x, y
			if fullyUpdated {
				rects = append(rects, r)
			}
		}
	} else {
		n.composited = false
		for _, child := range n.children.view() {
			rects = append(rects, child.render(dst, x, y)...)
		}
	}

	n.isReset = false
	return rects
}
