package redraw

import "fmt"

// canRender is a quick estimate of whether the node or its subtree can draw
// anything onto its destination in the next render.
func (n *Node) canRender() bool {
	if !n.enabled || !n.hasPosition {
		return false
	}
	return n.surface != nil || len(n.children.members) > 0
}

// flagCaches drops cached composites invalidated by a change to n. The
// parent's composite is dropped when n can render, or when that just changed;
// churn inside a subtree that could not render before and still cannot leaves
// the parent untouched. Propagation continues up the tree the same way.
func (n *Node) flagCaches(clearSelf bool) {
	for p := n; p != nil; {
		if clearSelf {
			p.cached = nil
		}
		prev := p.canRenderPrev
		now := p.canRender()
		p.canRenderPrev = now

		parent := p.Parent()
		if parent == nil || !(now || now != prev) {
			return
		}
		p, clearSelf = parent, true
	}
}

// HasCachedSurface reports whether the node holds a composite that the next
// render can reuse without redrawing its children.
func (n *Node) HasCachedSurface() bool {
	return n.cached != nil
}

// CopySurface returns a fresh copy of the node's surface, which the
// compositor draws children onto. Returns ErrNoSurface if there is none.
func (n *Node) CopySurface() (Canvas, error) {
	if n.surface == nil {
		return nil, fmt.Errorf("copy surface of %s: %w", n, ErrNoSurface)
	}
	return n.surface.Copy(), nil
}
