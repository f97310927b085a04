package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/phanxgames/redraw"
	"github.com/phanxgames/redraw/internal/script"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	svg string // output path for an SVG diagram
	dot bool   // print Graphviz DOT instead of the text tree
}

// newTreeCmd creates the tree command, which replays a script and shows the
// resulting scene tree.
func newTreeCmd() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [script]",
		Short: "Show the scene tree after replaying a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.svg, "svg", "", "render the tree to an SVG file with Graphviz")
	cmd.Flags().BoolVar(&opts.dot, "dot", false, "print the tree as Graphviz DOT")

	return cmd
}

func runTree(ctx context.Context, w io.Writer, path string, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	r, err := script.NewRunner(s, script.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := r.Run(ctx, nil); err != nil {
		return err
	}
	roots := r.Roots()

	switch {
	case opts.svg != "":
		svg, err := renderSVG(ctx, toDOT(roots))
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		logger.Info("Wrote tree diagram", "path", opts.svg)
	case opts.dot:
		fmt.Fprint(w, toDOT(roots))
	default:
		writeTree(w, roots)
	}
	return nil
}

// describe summarises a node on one line: position, surface and flags.
func describe(n *redraw.Node) string {
	parts := []string{n.String()}

	if p, ok := n.Position(); ok {
		parts = append(parts, fmt.Sprintf("at %g,%g", p.X, p.Y))
	} else {
		parts = append(parts, "no position")
	}

	switch s := n.Surface().(type) {
	case nil:
		parts = append(parts, "group")
	case *redraw.ImageCanvas:
		b := s.Bounds()
		parts = append(parts, fmt.Sprintf("%dx%d", b.Width, b.Height))
	default:
		parts = append(parts, "surface")
	}

	if p := n.Priority(); p != nil {
		parts = append(parts, fmt.Sprintf("priority %v", p))
	}
	if !n.Enabled() {
		parts = append(parts, "disabled")
	}
	if n.NumChildren() > 1 && !n.ChildrenOrdered() {
		parts = append(parts, "unordered")
	}
	return strings.Join(parts, " ")
}

// writeTree prints each root and its descendants in render order.
func writeTree(w io.Writer, roots []*redraw.Node) {
	for _, root := range roots {
		fmt.Fprintln(w, describe(root))
		writeChildren(w, root, "")
	}
}

func writeChildren(w io.Writer, n *redraw.Node, indent string) {
	children := n.Children()
	for i, c := range children {
		arm, next := "├── ", "│   "
		if i == len(children)-1 {
			arm, next = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s\n", styleTreeArm.Render(indent+arm), describe(c))
		writeChildren(w, c, indent+next)
	}
}

// toDOT converts the scene trees to Graphviz DOT. Groups are grey and
// disabled nodes dashed.
func toDOT(roots []*redraw.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	var walk func(n *redraw.Node)
	walk = func(n *redraw.Node) {
		label := strings.Replace(describe(n), " ", "\n", 1)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if n.Surface() == nil {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		if !n.Enabled() {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.String(), strings.Join(attrs, ", "))
		for _, c := range n.Children() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.String(), c.String())
			walk(c)
		}
	}
	for _, root := range roots {
		walk(root)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// renderSVG renders a DOT graph to SVG using Graphviz.
func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
