package redraw

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// globalDebug gates all diagnostics so that release builds pay a single bool
// check on the hot path.
var globalDebug bool

// logger receives debug output. Replace it with SetLogger.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "redraw"})

// SetDebugMode enables or disables debug mode. When enabled, every top-level
// Render logs its rect counts and timing, hand-offs of damage between trees
// are logged at debug level, and tree depth and child count warnings are
// logged when nodes are attached.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// SetLogger sets the logger used for debug output. Pass nil to discard it.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Logger returns the logger used for debug output.
func Logger() *log.Logger {
	return logger
}

// renderStats holds per-render metrics. Only populated in debug mode.
type renderStats struct {
	raw     int
	trimmed int
	elapsed time.Duration
}

func debugLogRender(n *Node, stats renderStats) {
	logger.Info("render",
		"node", n,
		"rects", stats.raw,
		"trimmed", stats.trimmed,
		"elapsed", stats.elapsed)
}

// debugMaxTreeDepth is the depth beyond which attaching a node logs a warning.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := len(n.Ancestry())
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "node", n, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count beyond which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if c := n.NumChildren(); c > debugMaxChildCount {
		logger.Warn("child count exceeds threshold", "node", n, "children", c, "threshold", debugMaxChildCount)
	}
}
