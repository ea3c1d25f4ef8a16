// Package ecs bridges dragmerge drop events into a [Donburi] world.
//
// [NewDonburiSink] publishes every [dragmerge.DropEvent] to [DropEventType].
// Systems subscribe to it and receive the events when the world processes
// them. [ClaimPendingDrops] subscribes a claim rule that can take over a
// failed unit drop before the controller reverts it:
//
//	world := donburi.NewWorld()
//	ctrl := dragmerge.NewController(deps, dragmerge.WithOutcomeSink(ecs.NewDonburiSink(world)))
//	ecs.ClaimPendingDrops(world, ctrl, rule)
//
//	// each frame, after input:
//	ecs.DropEventType.ProcessEvents(world)
//	ctrl.ResolvePendingDrag()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
