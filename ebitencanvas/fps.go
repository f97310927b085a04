package ebitencanvas

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/redraw"
)

// fpsInterval is how often, in seconds, the widget samples the frame rate.
const fpsInterval = 0.5

// FPSWidget is a node that displays the current FPS and TPS. Call Update once
// per tick. The text is resampled about twice a second and the node is only
// invalidated when the text actually changes, so a steady frame rate costs no
// redraws.
type FPSWidget struct {
	Node *redraw.Node

	canvas  *Canvas
	elapsed float64
	text    string
}

// NewFPSWidget creates the widget. It draws above its siblings unless opts
// override the priority. Pass redraw.WithParent and redraw.WithPosition to
// place it.
func NewFPSWidget(opts ...redraw.Option) *FPSWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	w := &FPSWidget{canvas: New(100, 32)}
	all := append([]redraw.Option{
		redraw.WithName("fps"),
		redraw.WithPriority(math.MaxInt),
	}, opts...)
	w.Node = redraw.NewNode(append(all, redraw.WithSurface(w.canvas))...)
	w.draw(fpsText(ebiten.ActualFPS(), ebiten.ActualTPS()))
	return w
}

// Text returns the text currently displayed.
func (w *FPSWidget) Text() string {
	return w.text
}

// Update advances the sampling timer by dt seconds.
func (w *FPSWidget) Update(dt float64) {
	w.elapsed += dt
	if w.elapsed < fpsInterval {
		return
	}
	w.elapsed = 0
	w.draw(fpsText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (w *FPSWidget) draw(text string) {
	if text == w.text {
		return
	}
	w.text = text
	w.canvas.Clear()
	// Semi-transparent background for readability
	w.canvas.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.canvas.Image(), text)
	w.Node.Invalidate()
}

func fpsText(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}
