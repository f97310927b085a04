// Package ecs provides ECS adapters for redraw.
//
// [Renderer] renders top-level nodes and publishes the damage of every frame
// into a [Donburi] world as typed events, so ECS systems can react to redrawn
// areas (for example to schedule partial uploads or collect statistics).
//
// Usage:
//
//	r := ecs.NewRenderer(world)
//	r.Render(screen, root)
//	ecs.DamageEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
