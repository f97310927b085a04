package redraw

import (
	"errors"
	"testing"
)

// chain builds root > mid > leaf, all with surfaces, and renders it once.
func chain(t *testing.T) (dst *ImageCanvas, root, mid, leaf *Node) {
	t.Helper()
	dst = NewImageCanvas(200, 200)
	root = NewNode(WithName("root"), WithSurface(solid(100, 100)), WithPosition(0, 0))
	mid = NewNode(WithName("mid"), WithSurface(solid(50, 50)), WithPosition(10, 10), WithParent(root))
	leaf = NewNode(WithName("leaf"), WithSurface(solid(10, 10)), WithPosition(5, 5), WithParent(mid))
	root.Render(dst)
	for _, n := range []*Node{root, mid, leaf} {
		if !n.HasCachedSurface() {
			t.Fatalf("%s should be cached after render", n.Name)
		}
	}
	return dst, root, mid, leaf
}

func TestSurfaceChangeDropsCachesUpToRoot(t *testing.T) {
	_, root, mid, leaf := chain(t)

	leaf.SetSurface(solid(10, 10))
	for _, n := range []*Node{root, mid, leaf} {
		if n.HasCachedSurface() {
			t.Errorf("%s should have dropped its cache", n.Name)
		}
	}
}

func TestMoveKeepsOwnCache(t *testing.T) {
	_, root, mid, leaf := chain(t)

	leaf.MoveBy(1, 1)
	if !leaf.HasCachedSurface() {
		t.Error("moving should keep the node's own composite")
	}
	if mid.HasCachedSurface() || root.HasCachedSurface() {
		t.Error("ancestors should drop their composites")
	}
}

func TestDisabledSubtreeChurnKeepsAncestorCache(t *testing.T) {
	dst, root, mid, leaf := chain(t)

	mid.SetEnabled(false)
	root.Render(dst)
	if !root.HasCachedSurface() {
		t.Fatal("root should be cached after render")
	}

	leaf.SetSurface(solid(20, 20))
	if !root.HasCachedSurface() {
		t.Error("changes under a disabled node should not drop the root cache")
	}
	if mid.HasCachedSurface() {
		t.Error("mid should drop its cache")
	}
}

func TestEnableDropsAncestorCache(t *testing.T) {
	dst, root, mid, _ := chain(t)

	mid.SetEnabled(false)
	root.Render(dst)

	mid.SetEnabled(true)
	if root.HasCachedSurface() {
		t.Error("re-enabling a subtree should drop the root cache")
	}
}

func TestReparentDropsOwnCache(t *testing.T) {
	_, root, mid, leaf := chain(t)

	leaf.SetParent(root)
	if leaf.HasCachedSurface() {
		t.Error("reparented node should drop its cache")
	}
	if mid.HasCachedSurface() || root.HasCachedSurface() {
		t.Error("old and new parents should drop their caches")
	}
}

func TestCachedRenderSkipsChildren(t *testing.T) {
	dst, root, _, leaf := chain(t)

	// Mutating the leaf surface without invalidating is invisible while the
	// ancestors hold their composites.
	leaf.Surface().(*ImageCanvas).Fill(red)
	assertNoRects(t, root.Render(dst))
	if got := pixelAt(dst, 16, 16); got == red {
		t.Error("cached composite should have been reused")
	}

	leaf.Invalidate()
	assertRects(t, root.Render(dst), []Rect{{15, 15, 10, 10}})
	if got := pixelAt(dst, 16, 16); got != red {
		t.Errorf("pixel = %v, want red after invalidate", got)
	}
}

func TestCopySurface(t *testing.T) {
	surf := NewSolidCanvas(4, 4, red)
	n := NewNode(WithSurface(surf))

	c, err := n.CopySurface()
	if err != nil {
		t.Fatal(err)
	}
	cp := c.(*ImageCanvas)
	if cp == surf {
		t.Fatal("CopySurface returned the surface itself")
	}
	cp.Fill(blue)
	if got := surf.Image().NRGBAAt(0, 0); got != red {
		t.Errorf("original pixel = %v, want red", got)
	}

	if _, err := NewNode().CopySurface(); !errors.Is(err, ErrNoSurface) {
		t.Errorf("err = %v, want ErrNoSurface", err)
	}
}
