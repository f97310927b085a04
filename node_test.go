package redraw

import (
	"fmt"
	"image/color"
	"testing"
)

func solid(w, h int) *ImageCanvas {
	return NewSolidCanvas(w, h, color.White)
}

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Surface() != nil {
		t.Error("Surface should be nil")
	}
	if _, ok := n.Position(); ok {
		t.Error("Position should be unset")
	}
	if n.Priority() != nil {
		t.Errorf("Priority = %v, want nil", n.Priority())
	}
	if !n.Enabled() {
		t.Error("Enabled should be true")
	}
	if n.Parent() != nil {
		t.Error("Parent should be nil")
	}
	if n.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", n.NumChildren())
	}
	if !n.ChildrenOrdered() {
		t.Error("an empty layer should be ordered")
	}
	if n.IsRendered() {
		t.Error("IsRendered should be false")
	}
}

func TestNewNodeOptions(t *testing.T) {
	parent := NewNode(WithName("parent"))
	surf := solid(4, 4)
	n := NewNode(
		WithName("child"),
		WithSurface(surf),
		WithPosition(1.5, 2),
		WithPriority(3),
		WithEnabled(false),
		WithParent(parent),
	)
	if n.Name != "child" {
		t.Errorf("Name = %q, want %q", n.Name, "child")
	}
	if n.Surface() != surf {
		t.Error("Surface should be the given canvas")
	}
	if p, ok := n.Position(); !ok || p != (Vec2{1.5, 2}) {
		t.Errorf("Position = %v, %v, want {1.5 2}, true", p, ok)
	}
	if n.Priority() != 3 {
		t.Errorf("Priority = %v, want 3", n.Priority())
	}
	if n.Enabled() {
		t.Error("Enabled should be false")
	}
	if n.Parent() != parent || !parent.HasChild(n) {
		t.Error("node should be a child of parent")
	}
}

func TestUniqueIDs(t *testing.T) {
	a, b, c := NewNode(), NewNode(), NewNode()
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

func TestNodeString(t *testing.T) {
	n := NewNode(WithName("hero"))
	if got, want := n.String(), fmt.Sprintf("hero#%d", n.ID); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
	anon := NewNode()
	if got, want := anon.String(), fmt.Sprintf("node#%d", anon.ID); got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

// --- AddChild / RemoveChild / SetParent ---

func TestAddChildBasic(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAddChildTwiceIsNoop(t *testing.T) {
	parent := NewNode()
	child := NewNode()
	parent.AddChild(child)
	parent.AddChild(child)
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewNode()
	p2 := NewNode()
	child := NewNode()

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 {
		t.Error("p2 should have 1 child")
	}
	if child.Parent() != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewNode()
	child := NewNode(WithParent(parent))
	parent.RemoveChild(child)
	if child.Parent() != nil {
		t.Error("child.Parent should be nil")
	}
	if parent.HasChild(child) {
		t.Error("parent should not have child")
	}
}

func TestRemoveAbsentChildIsNoop(t *testing.T) {
	parent := NewNode()
	other := NewNode()
	stranger := NewNode(WithParent(other))
	parent.RemoveChild(stranger)
	parent.RemoveChild(nil)
	if stranger.Parent() != other {
		t.Error("RemoveChild must not detach a child of another node")
	}
}

func TestSetParentNilOnTopLevelIsNoop(t *testing.T) {
	n := NewNode(WithSurface(solid(2, 2)), WithPosition(0, 0))
	n.Render(NewImageCanvas(10, 10))
	n.SetParent(nil)
	if !n.IsRendered() {
		t.Error("SetParent(nil) on a top-level node should not reset it")
	}
}

func TestSetParentCyclePanic(t *testing.T) {
	parent := NewNode()
	child := NewNode(WithParent(parent))
	grandchild := NewNode(WithParent(child))

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	parent.SetParent(grandchild)
}

func TestAddChildSelfPanic(t *testing.T) {
	n := NewNode()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for self-add, got none")
		}
	}()
	n.AddChild(n)
}

func TestAddChildNilPanic(t *testing.T) {
	n := NewNode()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	n.AddChild(nil)
}

func TestAncestry(t *testing.T) {
	root := NewNode()
	mid := NewNode(WithParent(root))
	leaf := NewNode(WithParent(mid))

	got := leaf.Ancestry()
	if len(got) != 3 || got[0] != leaf || got[1] != mid || got[2] != root {
		t.Errorf("Ancestry = %v, want [leaf mid root]", got)
	}
	if a := root.Ancestry(); len(a) != 1 || a[0] != root {
		t.Errorf("root Ancestry = %v, want [root]", a)
	}
}

// --- Unlink ---

func TestUnlinkPreservesAbsolutePosition(t *testing.T) {
	dst := NewImageCanvas(200, 200)
	p := NewNode(WithName("p"), WithPosition(10, 20))
	c := NewNode(WithName("c"), WithPosition(30, 40), WithParent(p))
	g := NewNode(WithName("g"), WithPosition(50, 60), WithSurface(solid(5, 5)), WithParent(c))

	before := p.Render(dst)
	assertRects(t, before, []Rect{{90, 120, 5, 5}})
	ax, ay, _ := g.AbsoluteRenderCoords()

	c.Unlink()

	if g.Parent() != p {
		t.Fatal("grandchild should now be a child of p")
	}
	if c.Parent() != nil || c.NumChildren() != 0 {
		t.Error("unlinked node should have no parent and no children")
	}
	if pos, _ := g.Position(); pos != (Vec2{80, 100}) {
		t.Errorf("grandchild position = %v, want {80 100}", pos)
	}
	bx, by, ok := g.AbsoluteRenderCoords()
	if !ok || bx != ax || by != ay {
		t.Errorf("absolute coords = (%d, %d), want (%d, %d)", bx, by, ax, ay)
	}

	after := p.Render(dst)
	assertRects(t, after, []Rect{{90, 120, 5, 5}})
}

func TestUnlinkTopLevelMakesChildrenTopLevel(t *testing.T) {
	n := NewNode(WithPosition(5, 5))
	a := NewNode(WithPosition(1, 1), WithParent(n))
	b := NewNode(WithPosition(-5, 0), WithParent(n))

	n.Unlink()

	if a.Parent() != nil || b.Parent() != nil {
		t.Error("children of an unlinked top-level node should become top-level")
	}
	if pos, _ := a.Position(); pos != (Vec2{6, 6}) {
		t.Errorf("a position = %v, want {6 6}", pos)
	}
	if pos, _ := b.Position(); pos != (Vec2{0, 5}) {
		t.Errorf("b position = %v, want {0 5}", pos)
	}
}

func TestUnlinkWithoutPositionsPanics(t *testing.T) {
	tests := []struct {
		name        string
		node, child []Option
	}{
		{"node without position", nil, []Option{WithPosition(1, 1)}},
		{"child without position", []Option{WithPosition(1, 1)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewNode(WithPosition(0, 0))
			n := NewNode(append(tt.node, WithParent(root))...)
			child := NewNode(append(tt.child, WithParent(n))...)

			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic, got none")
				}
				if n.Parent() != root || child.Parent() != n {
					t.Error("a failed unlink should leave the tree untouched")
				}
			}()
			n.Unlink()
		})
	}
}

func TestUnlinkLeafWithoutPosition(t *testing.T) {
	root := NewNode(WithPosition(0, 0))
	n := NewNode(WithParent(root))

	n.Unlink()
	if n.Parent() != nil || root.NumChildren() != 0 {
		t.Error("a childless node should unlink without positions")
	}
}
