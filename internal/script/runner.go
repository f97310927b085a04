package script

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/redraw"
)

// Frame is the result of one render step.
type Frame struct {
	// Index counts render steps from 1.
	Index int
	// Step is the 1-based position of the render step in the script.
	Step  int
	Label string
	// Rects are the damaged areas of the destination, trimmed across all
	// top-level nodes.
	Rects   []redraw.Rect
	Elapsed time.Duration
}

// Area returns the summed area of the frame's rects.
func (f Frame) Area() int {
	total := 0
	for _, r := range f.Rects {
		total += r.Area()
	}
	return total
}

// Runner builds the scene a script declares and executes its steps in order.
type Runner struct {
	script *Script
	dst    *redraw.ImageCanvas
	nodes  map[string]*redraw.Node
	order  []*redraw.Node
	logger *log.Logger

	cursor int
	frames int
	done   bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that receives a debug line per executed step.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner builds the script's scene: the destination canvas filled with the
// background color and every declared node, attached to its parent in
// declaration order.
func NewRunner(s *Script, opts ...Option) (*Runner, error) {
	bg, err := parseColor(s.Canvas.Background, color.Black)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		script: s,
		dst:    redraw.NewSolidCanvas(s.Canvas.Width, s.Canvas.Height, bg),
		nodes:  make(map[string]*redraw.Node, len(s.Nodes)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, decl := range s.Nodes {
		nodeOpts := []redraw.Option{redraw.WithName(decl.Name), redraw.WithPriority(decl.Priority)}
		if decl.X != nil || decl.Y != nil {
			nodeOpts = append(nodeOpts, redraw.WithPosition(deref(decl.X), deref(decl.Y)))
		}
		if decl.Enabled != nil {
			nodeOpts = append(nodeOpts, redraw.WithEnabled(*decl.Enabled))
		}
		surf, err := s.surface(decl.Width, decl.Height, decl.Color, decl.Image)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", decl.Name, err)
		}
		if surf != nil {
			nodeOpts = append(nodeOpts, redraw.WithSurface(surf))
		}
		n := redraw.NewNode(nodeOpts...)
		r.nodes[decl.Name] = n
		r.order = append(r.order, n)
	}
	for _, decl := range s.Nodes {
		if decl.Parent != "" {
			r.nodes[decl.Name].SetParent(r.nodes[decl.Parent])
		}
	}
	return r, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Destination returns the canvas the top-level nodes render onto.
func (r *Runner) Destination() *redraw.ImageCanvas {
	return r.dst
}

// Node returns the node declared under name.
func (r *Runner) Node(name string) (*redraw.Node, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Roots returns the current top-level nodes in declaration order.
func (r *Runner) Roots() []*redraw.Node {
	var roots []*redraw.Node
	for _, n := range r.order {
		if n.Parent() == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// Done reports whether every step has been executed.
func (r *Runner) Done() bool {
	return r.done
}

// Step executes the next step. It returns a Frame for render steps and nil
// otherwise. After the last step Done reports true and Step returns nil, nil.
func (r *Runner) Step() (*Frame, error) {
	if r.done {
		return nil, nil
	}
	st := r.script.Steps[r.cursor]
	r.cursor++
	if r.cursor >= len(r.script.Steps) {
		r.done = true
	}

	r.logger.Debug("step", "n", r.cursor, "action", st.Action, "node", st.Node)
	if st.Action == ActionRender {
		return r.render(st), nil
	}
	if err := r.apply(st); err != nil {
		return nil, fmt.Errorf("step %d (%s %s): %w", r.cursor, st.Action, st.Node, err)
	}
	return nil, nil
}

// Run executes every remaining step, calling fn with each rendered frame.
// It stops early when ctx is canceled or fn returns an error.
func (r *Runner) Run(ctx context.Context, fn func(Frame) error) error {
	for !r.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := r.Step()
		if err != nil {
			return err
		}
		if f == nil || fn == nil {
			continue
		}
		if err := fn(*f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) render(st Step) *Frame {
	start := time.Now()
	var rects []redraw.Rect
	for _, root := range r.Roots() {
		rects = append(rects, root.Render(r.dst)...)
	}
	r.frames++
	return &Frame{
		Index:   r.frames,
		Step:    r.cursor,
		Label:   st.Label,
		Rects:   redraw.TrimRects(rects),
		Elapsed: time.Since(start),
	}
}

func (r *Runner) apply(st Step) error {
	n := r.nodes[st.Node]
	switch st.Action {
	case ActionMove:
		_, err := n.MoveBy(st.X, st.Y)
		return err
	case ActionPosition:
		n.SetPosition(st.X, st.Y)
	case ActionClearPosition:
		n.ClearPosition()
	case ActionSurface:
		surf, err := r.script.surface(st.Width, st.Height, st.Color, st.Image)
		if err != nil {
			return err
		}
		n.SetSurface(surf)
	case ActionPriority:
		n.SetPriority(st.Priority)
	case ActionEnable:
		n.SetEnabled(true)
	case ActionDisable:
		n.SetEnabled(false)
	case ActionParent:
		if st.Parent == "" {
			n.SetParent(nil)
			return nil
		}
		parent := r.nodes[st.Parent]
		if slices.Contains(parent.Ancestry(), n) {
			return fmt.Errorf("%s under %s: %w", n, parent, ErrCycle)
		}
		n.SetParent(parent)
	case ActionUnlink:
		if _, ok := n.Position(); !ok && n.NumChildren() > 0 {
			return fmt.Errorf("unlink %s: %w", n, redraw.ErrNoPosition)
		}
		for _, child := range n.Children() {
			if _, ok := child.Position(); !ok {
				return fmt.Errorf("unlink %s: child %s: %w", n, child, redraw.ErrNoPosition)
			}
		}
		n.Unlink()
	case ActionInvalidate:
		return r.invalidate(n, st)
	}
	return nil
}

// invalidate optionally paints the node's surface in place, then flags the
// whole node or just rect for redraw.
func (r *Runner) invalidate(n *redraw.Node, st Step) error {
	var area redraw.Rect
	if st.Rect != nil {
		area = redraw.Rect{X: st.Rect[0], Y: st.Rect[1], Width: st.Rect[2], Height: st.Rect[3]}
	}
	if st.Color != "" {
		surf, ok := n.Surface().(*redraw.ImageCanvas)
		if !ok {
			return fmt.Errorf("paint %s: %w", n, redraw.ErrNoSurface)
		}
		c, err := parseColor(st.Color, color.White)
		if err != nil {
			return err
		}
		if st.Rect != nil {
			surf.FillRect(area, c)
		} else {
			surf.Fill(c)
		}
	}
	if st.Rect != nil {
		n.InvalidateRect(area)
	} else {
		n.Invalidate()
	}
	return nil
}
