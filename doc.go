// Package redraw is a retained-mode scene graph that tracks which areas of a
// destination changed between two frames.
//
// Each frame the caller renders its top-level nodes onto their destination
// canvases and gets back the minimal list of rectangles that must be pushed to
// the screen. Composited results are cached per node, so a subtree whose
// contents did not change is blitted from its cache instead of being rebuilt.
//
// # Quick start
//
//	screen := redraw.NewImageCanvas(640, 480)
//	root := redraw.NewNode(redraw.WithPosition(0, 0),
//		redraw.WithSurface(redraw.NewSolidCanvas(640, 480, color.Black)))
//
//	hero := redraw.NewNode(redraw.WithParent(root), redraw.WithPosition(100, 50),
//		redraw.WithSurface(heroCanvas), redraw.WithPriority(1))
//
//	rects := root.Render(screen) // first frame: the whole background
//	hero.MoveBy(4, 0)
//	rects = root.Render(screen)  // old and new hero areas only
//
// # Scene graph
//
// Every drawable is a [Node]. A node with a surface composites its children
// onto a copy of that surface and blits the result at its position. A node
// without a surface is a group: its children draw straight onto the parent's
// canvas, offset by the group's position. A node without a position, or with
// rendering disabled, draws nothing.
//
// Siblings draw in ascending [Node.Priority] order when every sibling has a
// priority that compares with the others (integers, floats, strings, or a
// [Comparer]); otherwise they draw in insertion order.
//
// Parent links are weak: a child never keeps its parent alive.
//
// # Canvases
//
// The scene graph only needs the [Canvas] capability: copy a canvas, and blit
// one canvas onto another returning the affected [Rect]. [ImageCanvas] is a
// CPU implementation over image.NRGBA; package ebitencanvas adapts
// Ebitengine images.
//
// # Concurrency
//
// redraw is single-threaded. Mutate the tree, then render it; never both at
// once.
package redraw
