package redraw

import (
	"fmt"
	"slices"
	"weak"
)

// nodeIDCounter is a plain counter; redraw is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a positioned drawable in a retained scene tree. Each node may
// carry a surface of its own and any number of children, which are composited
// onto that surface (or straight onto the parent's canvas when the node has no
// surface) in ascending priority order.
//
// A node remembers where it was drawn last frame, so Render can report only
// the areas that changed since then.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Visual state
	surface     Canvas
	position    Vec2
	hasPosition bool
	priority    any
	enabled     bool

	// Hierarchy. The parent link is weak: the parent's child set is the only
	// owning edge.
	parent   weak.Pointer[Node]
	children childSet

	// Damage bookkeeping (damage.go)
	rect          Rect // area blitted last frame, valid while rendered is true
	rendered      bool
	originX       int // blit origin of the last frame
	originY       int
	rectChanged   bool
	subRects      []Rect // pending damage in this node's surface space
	topLevelRects []Rect // pending destination-space damage (top-level nodes only)
	isReset       bool
	composited    bool // children last drew onto this node's own surface

	// Cache (cache.go)
	cached        Canvas
	canRenderPrev bool
}

type nodeOptions struct {
	name        string
	surface     Canvas
	position    Vec2
	hasPosition bool
	priority    any
	enabled     bool
	parent      *Node
}

// Option configures a Node created by NewNode.
type Option func(*nodeOptions)

// WithName sets a diagnostic name used in logs and tree dumps.
func WithName(name string) Option {
	return func(o *nodeOptions) { o.name = name }
}

// WithSurface sets the node's own surface.
func WithSurface(s Canvas) Option {
	return func(o *nodeOptions) { o.surface = s }
}

// WithPosition sets the node's position relative to its parent.
func WithPosition(x, y float64) Option {
	return func(o *nodeOptions) {
		o.position = Vec2{X: x, Y: y}
		o.hasPosition = true
	}
}

// WithPriority sets the node's draw priority among its siblings.
func WithPriority(p any) Option {
	return func(o *nodeOptions) { o.priority = p }
}

// WithEnabled sets whether the node renders. Nodes render by default.
func WithEnabled(enabled bool) Option {
	return func(o *nodeOptions) { o.enabled = enabled }
}

// WithParent attaches the node to parent once it is constructed. This is
// equivalent to calling SetParent on a parentless node.
func WithParent(parent *Node) Option {
	return func(o *nodeOptions) { o.parent = parent }
}

// NewNode creates a node. Without options the node has no surface, no
// position, no priority and no parent, and is enabled.
func NewNode(opts ...Option) *Node {
	o := nodeOptions{enabled: true}
	for _, opt := range opts {
		opt(&o)
	}
	n := &Node{
		ID:          nextNodeID(),
		Name:        o.name,
		surface:     o.surface,
		position:    o.position,
		hasPosition: o.hasPosition,
		priority:    o.priority,
		enabled:     o.enabled,
		isReset:     true,
	}
	n.children.ordered = true
	n.canRenderPrev = n.canRender()
	if o.parent != nil {
		n.SetParent(o.parent)
	}
	return n
}

// String returns the node's name and ID for diagnostics.
func (n *Node) String() string {
	if n.Name == "" {
		return fmt.Sprintf("node#%d", n.ID)
	}
	return fmt.Sprintf("%s#%d", n.Name, n.ID)
}

// --- Visual state ---

// Surface returns the node's own surface, or nil.
func (n *Node) Surface() Canvas {
	return n.surface
}

// SetSurface replaces the node's surface. A nil surface turns the node into
// a grouping node whose children render straight onto its parent's canvas.
//
// If the current surface is mutated in place instead of replaced, call
// Invalidate.
func (n *Node) SetSurface(s Canvas) {
	if n.surface == s {
		return
	}
	if (n.surface == nil) != (s == nil) {
		// Children switch between this surface and the parent's canvas.
		n.resetChildren()
	}
	n.surface = s
	n.flagRects()
	n.flagCaches(true)
}

// Priority returns the node's draw priority.
func (n *Node) Priority() any {
	return n.priority
}

// SetPriority changes the node's draw priority. Siblings render in ascending
// priority order when every sibling's priority compares with the others (see
// Comparer); otherwise the layer renders in insertion order.
func (n *Node) SetPriority(p any) {
	if samePriority(n.priority, p) {
		return
	}
	n.priority = p

	parent := n.Parent()
	if parent == nil {
		n.flagRects()
		n.flagCaches(false)
		return
	}
	if parent.children.organise() {
		parent.flagLayer()
	} else {
		n.flagRects()
	}
	n.flagCaches(false)
}

// Enabled reports whether the node renders.
func (n *Node) Enabled() bool {
	return n.enabled
}

// SetEnabled shows or hides the node and its subtree without removing it
// from the tree.
func (n *Node) SetEnabled(enabled bool) {
	if n.enabled == enabled {
		return
	}
	n.enabled = enabled
	n.flagRects()
	n.flagCaches(false)
}

// --- Tree manipulation ---

// Parent returns the node's parent, or nil for a top-level node.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Children returns the node's children in render order: ascending priority
// when ChildrenOrdered reports true, otherwise insertion order. The returned
// slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children.view()
}

// ChildrenOrdered reports whether every child's priority compares with the
// others, so that Children is sorted by priority.
func (n *Node) ChildrenOrdered() bool {
	return n.children.ordered
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children.members)
}

// HasChild reports whether child is a direct child of n.
func (n *Node) HasChild(child *Node) bool {
	return n.children.contains(child)
}

// SetParent moves the node under parent, or makes it top-level when parent is
// nil. The area the node covered last frame is handed to the old parent so it
// gets redrawn. When the node was top-level, its pending damage is handed to
// the new parent's top-level node unconverted: the caller must render the new
// tree onto the same destination.
//
// Panics if parent is n or one of its descendants.
func (n *Node) SetParent(parent *Node) {
	old := n.Parent()
	if old == parent {
		return
	}
	if parent != nil && isAncestor(n, parent) {
		panic("redraw: setting parent would create a cycle")
	}

	if old != nil {
		old.frontload(n.resetRects())
		n.flagCaches(false)
		n.parent = weak.Pointer[Node]{}
		if old.children.remove(n) {
			old.flagLayer()
		}
	} else {
		handoff := append(n.resetRects(), n.topLevelRects...)
		n.topLevelRects = nil
		if globalDebug && len(handoff) > 0 {
			logger.Debug("top-level hand-off", "node", n, "to", parent, "rects", len(handoff))
		}
		parent.topLevelUpdate(handoff)
	}
	n.cached = nil

	if parent != nil {
		n.parent = weak.Make(parent)
		if parent.children.add(n) {
			parent.flagLayer()
		}
		n.flagCaches(false)
		if globalDebug {
			debugCheckTreeDepth(n)
			debugCheckChildCount(parent)
		}
	}
}

// AddChild makes child a child of n. No-op if it already is.
// Panics if child is nil or an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("redraw: cannot add nil child")
	}
	if child.Parent() == n {
		return
	}
	child.SetParent(n)
}

// RemoveChild detaches child from n, making it top-level. No-op if child is
// not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.Parent() != n {
		return
	}
	child.SetParent(nil)
}

// Unlink extracts the node from its chain. Each child keeps its absolute
// position: its position is offset by this node's position and it moves to
// this node's former parent (or becomes top-level). The node ends with no
// parent and no children.
//
// Panics if the node has children and it or any child has no position, since
// the offset cannot be applied. The tree is left untouched in that case.
func (n *Node) Unlink() {
	for _, child := range n.children.members {
		if !n.hasPosition || !child.hasPosition {
			panic("redraw: unlink needs positions on the node and its children")
		}
	}

	parent := n.Parent()
	n.SetParent(nil)

	for _, child := range slices.Clone(n.children.members) {
		child.SetParent(nil)
		child.SetPosition(child.position.X+n.position.X, child.position.Y+n.position.Y)
		child.SetParent(parent)
	}
}

// Ancestry returns the chain of nodes from n up to its top-level node,
// starting with n itself. Sibling branches are not included.
func (n *Node) Ancestry() []*Node {
	var chain []*Node
	for p := n; p != nil; p = p.Parent() {
		chain = append(chain, p)
	}
	return chain
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
