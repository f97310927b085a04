// Package script loads TOML scene scripts and replays them against a redraw
// scene tree, one step at a time.
//
// A script declares a destination canvas, a set of named nodes, and a list of
// steps. Every "render" step renders each top-level node onto the destination
// and records the damaged rects as a Frame:
//
//	[canvas]
//	width = 320
//	height = 240
//	background = "#101018"
//
//	[[node]]
//	name = "hero"
//	x = 10
//	y = 10
//	width = 16
//	height = 16
//	color = "#ff4f28"
//
//	[[step]]
//	action = "render"
//
//	[[step]]
//	action = "move"
//	node = "hero"
//	x = 4
package script

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/redraw"
)

// Step actions.
const (
	ActionRender        = "render"
	ActionMove          = "move"
	ActionPosition      = "position"
	ActionClearPosition = "clear_position"
	ActionSurface       = "surface"
	ActionPriority      = "priority"
	ActionEnable        = "enable"
	ActionDisable       = "disable"
	ActionParent        = "parent"
	ActionUnlink        = "unlink"
	ActionInvalidate    = "invalidate"
)

var (
	// ErrUnknownNode is returned when a node or step names a node that is not
	// declared.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownAction is returned for a step with an unsupported action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrCycle is returned when a parent assignment would create a cycle.
	ErrCycle = errors.New("parent cycle")
)

// Script is a parsed scene script.
type Script struct {
	Canvas CanvasSpec `toml:"canvas"`
	Nodes  []NodeSpec `toml:"node"`
	Steps  []Step     `toml:"step"`

	// dir resolves relative image paths.
	dir string
}

// CanvasSpec describes the destination every top-level node renders onto.
type CanvasSpec struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

// NodeSpec declares a node. A node gets a surface when it has a size or an
// image, and a position when x or y is given.
type NodeSpec struct {
	Name     string   `toml:"name"`
	Parent   string   `toml:"parent"`
	X        *float64 `toml:"x"`
	Y        *float64 `toml:"y"`
	Width    int      `toml:"width"`
	Height   int      `toml:"height"`
	Color    string   `toml:"color"`
	Image    string   `toml:"image"`
	Priority any      `toml:"priority"`
	Enabled  *bool    `toml:"enabled"`
}

// Step is a single scripted action. Which fields apply depends on Action.
type Step struct {
	Action   string  `toml:"action"`
	Node     string  `toml:"node"`
	Label    string  `toml:"label"`
	X        float64 `toml:"x"`
	Y        float64 `toml:"y"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Color    string  `toml:"color"`
	Image    string  `toml:"image"`
	Priority any     `toml:"priority"`
	Parent   string  `toml:"parent"`
	Rect     []int   `toml:"rect"`
}

// Parse decodes and validates a script. Relative image paths resolve against
// the working directory.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("parse scene script: %w", err)
	}
	return &s, nil
}

// Load reads and parses the script at path. Relative image paths resolve
// against the script's directory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

func (s *Script) validate() error {
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", s.Canvas.Width, s.Canvas.Height)
	}
	if len(s.Steps) == 0 {
		return errors.New("no steps")
	}
	if _, err := parseColor(s.Canvas.Background, color.Black); err != nil {
		return fmt.Errorf("canvas background: %w", err)
	}

	parents := make(map[string]string, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.Name == "" {
			return fmt.Errorf("node %d: missing name", i)
		}
		if _, dup := parents[n.Name]; dup {
			return fmt.Errorf("node %q: declared twice", n.Name)
		}
		if _, err := parseColor(n.Color, color.White); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		parents[n.Name] = n.Parent
	}
	for _, n := range s.Nodes {
		if n.Parent == "" {
			continue
		}
		if _, ok := parents[n.Parent]; !ok {
			return fmt.Errorf("node %q parent %q: %w", n.Name, n.Parent, ErrUnknownNode)
		}
		// Walk up; revisiting the start means a cycle.
		for p, hops := n.Parent, 0; p != ""; p, hops = parents[p], hops+1 {
			if p == n.Name || hops > len(parents) {
				return fmt.Errorf("node %q: %w", n.Name, ErrCycle)
			}
		}
	}

	for i, st := range s.Steps {
		if err := st.validate(parents); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return nil
}

func (st Step) validate(nodes map[string]string) error {
	switch st.Action {
	case ActionRender:
		return nil
	case ActionMove, ActionPosition, ActionClearPosition, ActionSurface,
		ActionPriority, ActionEnable, ActionDisable, ActionParent,
		ActionUnlink, ActionInvalidate:
	default:
		return fmt.Errorf("%q: %w", st.Action, ErrUnknownAction)
	}

	if _, ok := nodes[st.Node]; !ok {
		return fmt.Errorf("node %q: %w", st.Node, ErrUnknownNode)
	}
	if st.Parent != "" {
		if _, ok := nodes[st.Parent]; !ok {
			return fmt.Errorf("parent %q: %w", st.Parent, ErrUnknownNode)
		}
	}
	if st.Rect != nil && len(st.Rect) != 4 {
		return fmt.Errorf("rect needs 4 values [x, y, width, height], got %d", len(st.Rect))
	}
	if _, err := parseColor(st.Color, color.White); err != nil {
		return err
	}
	return nil
}

// parseColor parses a "#rrggbb" or "#rgb" hex color. An empty string yields
// def.
func parseColor(s string, def color.Color) (color.Color, error) {
	if s == "" {
		return def, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// surface builds the canvas described by an image path or a size and color.
// It returns nil when neither is given.
func (s *Script) surface(width, height int, col, image string) (redraw.Canvas, error) {
	if image != "" {
		if !filepath.IsAbs(image) && s.dir != "" {
			image = filepath.Join(s.dir, image)
		}
		c, err := redraw.OpenImageCanvas(image)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if width <= 0 || height <= 0 {
		return nil, nil
	}
	c, err := parseColor(col, color.White)
	if err != nil {
		return nil, err
	}
	return redraw.NewSolidCanvas(width, height, c), nil
}
