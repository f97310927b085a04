package ebitencanvas

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/redraw"
)

// --- BlendMode.EbitenBlend ---

func TestBlendModeEbitenBlend(t *testing.T) {
	tests := []struct {
		mode   BlendMode
		name   string
		expect ebiten.Blend
	}{
		{BlendNormal, "normal", ebiten.BlendSourceOver},
		{BlendAdd, "add", ebiten.BlendLighter},
		{BlendNone, "none", ebiten.BlendCopy},
		{BlendMode(200), "unknown", ebiten.BlendSourceOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.EbitenBlend(); got != tt.expect {
				t.Errorf("EbitenBlend() = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

// --- Canvas ---

func TestNewDimensions(t *testing.T) {
	c := New(128, 64)
	defer c.Dispose()

	if c.Width() != 128 {
		t.Errorf("Width = %d, want 128", c.Width())
	}
	if c.Height() != 64 {
		t.Errorf("Height = %d, want 64", c.Height())
	}
}

func TestCopyIsIndependent(t *testing.T) {
	c := New(16, 8)
	defer c.Dispose()
	c.Blend = BlendAdd

	cp, ok := c.Copy().(*Canvas)
	if !ok {
		t.Fatal("Copy should return *Canvas")
	}
	defer cp.Dispose()

	if cp.Image() == c.Image() {
		t.Error("Copy should allocate a new image")
	}
	if cp.Width() != 16 || cp.Height() != 8 {
		t.Errorf("copy size = %dx%d, want 16x8", cp.Width(), cp.Height())
	}
	if cp.Blend != BlendAdd {
		t.Errorf("copy Blend = %d, want BlendAdd", cp.Blend)
	}
}

func TestBlitReturnsClippedRect(t *testing.T) {
	dst := New(100, 100)
	defer dst.Dispose()
	src := New(20, 20)
	defer src.Dispose()

	tests := []struct {
		name   string
		x, y   int
		expect redraw.Rect
	}{
		{"inside", 10, 10, redraw.Rect{X: 10, Y: 10, Width: 20, Height: 20}},
		{"clipped right", 90, 10, redraw.Rect{X: 90, Y: 10, Width: 10, Height: 20}},
		{"clipped top-left", -5, -5, redraw.Rect{X: 0, Y: 0, Width: 15, Height: 15}},
		{"outside", 200, 200, redraw.Rect{X: 200, Y: 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dst.Blit(src, tt.x, tt.y); got != tt.expect {
				t.Errorf("Blit at (%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestBlitOntoSubImageIsRelative(t *testing.T) {
	screen := ebiten.NewImage(200, 200)
	defer screen.Deallocate()
	viewport := Wrap(screen.SubImage(image.Rect(50, 50, 150, 150)).(*ebiten.Image))
	src := New(20, 20)
	defer src.Dispose()

	got := viewport.Blit(src, 90, 0)
	want := redraw.Rect{X: 90, Y: 0, Width: 10, Height: 20}
	if got != want {
		t.Errorf("Blit = %+v, want %+v", got, want)
	}
}

func TestBlitForeignCanvasPanics(t *testing.T) {
	dst := New(10, 10)
	defer dst.Dispose()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for foreign canvas, got none")
		}
	}()
	dst.Blit(redraw.NewImageCanvas(4, 4), 0, 0)
}

func TestDisposeLeavesWrappedImage(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	defer img.Deallocate()

	c := Wrap(img)
	c.Dispose()
	if c.Image() != nil {
		t.Error("Image should be nil after Dispose")
	}
	if img.Bounds().Dx() != 4 {
		t.Error("wrapped image should remain usable")
	}
}

func TestRenderTreeOntoEbitenCanvas(t *testing.T) {
	screen := New(100, 100)
	defer screen.Dispose()

	root := redraw.NewNode(redraw.WithPosition(10, 10), redraw.WithSurface(New(50, 50)))
	redraw.NewNode(redraw.WithParent(root), redraw.WithPosition(5, 5), redraw.WithSurface(New(10, 10)))

	rects := root.Render(screen)
	want := redraw.Rect{X: 10, Y: 10, Width: 50, Height: 50}
	if len(rects) != 1 || rects[0] != want {
		t.Errorf("first render = %v, want [%v]", rects, want)
	}
	if rects := root.Render(screen); len(rects) != 0 {
		t.Errorf("second render = %v, want none", rects)
	}
}
