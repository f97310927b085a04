package redraw

// IsRendered reports whether the node drew anything onto its destination in
// the last render.
func (n *Node) IsRendered() bool {
	return n.rendered
}

// Invalidate flags the node's whole area for redraw on the next render and
// drops cached composites up the tree. Call it after mutating the surface in
// place rather than replacing it.
func (n *Node) Invalidate() {
	n.flagRects()
	n.flagCaches(true)
}

// InvalidateRect flags r, given in the node's own surface coordinates, for
// redraw on the next render. Use it after mutating part of the surface in
// place. A node that was not rendered last frame is fully drawn on its next
// render anyway, so only the caches are dropped.
func (n *Node) InvalidateRect(r Rect) {
	if n.rendered && !r.Empty() {
		n.subRects = append(n.subRects, r)
	}
	n.flagCaches(true)
}

// flagRects marks the area covered by the node and its children for redraw
// on the next render. A node that was not rendered itself resets its
// children and drops its composite, which still holds their pixels. Children
// that drew onto the parent's canvas hand their areas up the tree; children
// that drew onto this node's surface left nothing on screen to repair.
func (n *Node) flagRects() {
	if n.rendered {
		n.rectChanged = true
		return
	}
	n.resetChildren()
}

// resetChildren clears the children's render state and drops the composite
// holding their pixels.
func (n *Node) resetChildren() {
	n.cached = nil
	for _, child := range n.children.members {
		rects := child.resetRects()
		if !n.composited {
			n.frontload(rects)
		}
	}
}

// flagLayer flags every child after the layer's draw order changed, and drops
// the composite that baked in the old order.
func (n *Node) flagLayer() {
	for _, child := range n.children.members {
		child.flagRects()
	}
	n.flagCaches(true)
}

// resetRects clears the node's render state and returns the areas it and its
// subtree covered last frame, in the coordinates of the canvas the node drew
// onto. A rendered node's own rect covers its whole subtree, so children's
// rects are only returned when the node was not rendered itself and they drew
// onto the same canvas. The composite is dropped with the state. Returns nil
// if the node has already been reset since its last render.
func (n *Node) resetRects() []Rect {
	if n.isReset {
		return nil
	}

	var rects []Rect
	if n.rendered {
		rects = append(rects, n.rect)
	}
	for _, child := range n.children.members {
		childRects := child.resetRects()
		if !n.rendered && !n.composited {
			rects = append(rects, childRects...)
		}
	}

	n.clearRenderState()
	n.cached = nil
	n.isReset = true
	return rects
}

func (n *Node) clearRenderState() {
	n.rect = Rect{}
	n.rendered = false
	n.rectChanged = false
	n.subRects = nil
}

// frontload stores rects with the first rendered node in the ancestry,
// starting with n, as damage to that node's surface. The rects must be in the
// coordinates of the canvas n's children draw onto. If no node in the
// ancestry is rendered, the top-level node keeps them as areas of the outer
// destination.
func (n *Node) frontload(rects []Rect) {
	if len(rects) == 0 {
		return
	}
	for p := n; ; {
		if p.rendered {
			p.subRects = append(p.subRects, rects...)
			return
		}
		next := p.Parent()
		if next == nil {
			p.topLevelRects = append(p.topLevelRects, rects...)
			return
		}
		p = next
	}
}

// topLevelUpdate stores rects with the top-level node of n's chain. They are
// areas of the outer destination, not necessarily covered by the chain.
func (n *Node) topLevelUpdate(rects []Rect) {
	if len(rects) == 0 {
		return
	}
	top := n
	for p := n.Parent(); p != nil; p = p.Parent() {
		top = p
	}
	top.topLevelRects = append(top.topLevelRects, rects...)
}
