package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/redraw"
	"github.com/phanxgames/redraw/internal/script"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	snapshots string // directory for per-frame PNG snapshots, empty to skip
	debug     bool   // enable redraw debug mode (per-render stats, tree warnings)
	quiet     bool   // print only the summary
}

// newReplayCmd creates the replay command, which runs a scene script and
// prints the damaged rects of every rendered frame.
func newReplayCmd() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Replay a scene script and print per-frame damage",
		Long: `Replay builds the scene declared by a TOML script and executes its steps.
Each render step prints the rects of the destination that changed since the
previous frame.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.snapshots, "snapshots", "s", "", "write a PNG of the destination after each frame into this directory")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log redraw render statistics")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print the summary")

	return cmd
}

func runReplay(ctx context.Context, w io.Writer, path string, opts replayOpts) error {
	logger := loggerFromContext(ctx)

	s, err := script.Load(path)
	if err != nil {
		return err
	}
	r, err := script.NewRunner(s, script.WithLogger(logger))
	if err != nil {
		return err
	}

	if opts.debug {
		prev := redraw.Logger()
		redraw.SetLogger(logger)
		redraw.SetDebugMode(true)
		defer func() {
			redraw.SetDebugMode(false)
			redraw.SetLogger(prev)
		}()
	}

	prog := newProgress(logger)
	var frames, rects int
	err = r.Run(ctx, func(f script.Frame) error {
		frames++
		rects += len(f.Rects)
		if !opts.quiet {
			printFrame(w, f)
		}
		if opts.snapshots == "" {
			return nil
		}
		p, err := redraw.Snapshot(r.Destination(), opts.snapshots, f.Index, f.Label)
		if err != nil {
			return err
		}
		logger.Debug("wrote snapshot", "path", p)
		return nil
	})
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Replayed %s with %s", plural(frames, "frame"), plural(rects, "rect")))
	return nil
}

// printFrame writes one frame header followed by its rects, one per line.
func printFrame(w io.Writer, f script.Frame) {
	header := styleTitle.Render(fmt.Sprintf("frame %d", f.Index))
	if f.Label != "" {
		header += " " + styleLabel.Render(f.Label)
	}

	if len(f.Rects) == 0 {
		fmt.Fprintf(w, "%s %s %s\n", styleClean.Render(iconClean), header, styleDim.Render("clean"))
		return
	}
	summary := fmt.Sprintf("%s, %d px", plural(len(f.Rects), "rect"), f.Area())
	fmt.Fprintf(w, "%s %s %s\n", styleDamage.Render(iconDamage), header, styleDim.Render(summary))

	var b strings.Builder
	for _, r := range f.Rects {
		b.WriteString("    ")
		b.WriteString(formatRect(r))
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}
