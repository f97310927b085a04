package redraw

import "errors"

var (
	// ErrNoPosition is returned by operations that need a node's position
	// while the position is unset.
	ErrNoPosition = errors.New("redraw: position is not set")

	// ErrNoSurface is returned when a node has no surface to copy.
	ErrNoSurface = errors.New("redraw: surface is not set")
)
