package ecs

import (
	"github.com/phanxgames/dragmerge"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DropEventType is the Donburi event type for drag drop events.
var DropEventType = events.NewEventType[dragmerge.DropEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an OutcomeSink that publishes to DropEventType.
// Events are queued until DropEventType.ProcessEvents runs.
func NewDonburiSink(world donburi.World) dragmerge.OutcomeSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitDrop(e dragmerge.DropEvent) {
	DropEventType.Publish(s.world, e)
}

// ClaimRule decides whether a pending unit drop is taken over, and by which
// unit. Returning false leaves the drop to revert.
type ClaimRule func(e dragmerge.DropEvent) (*dragmerge.FieldUnit, bool)

// ClaimPendingDrops subscribes rule to pending unit drops in world and claims
// the drop on ctrl when rule accepts it. Process DropEventType before
// ctrl.ResolvePendingDrag for claims to land in the same frame.
func ClaimPendingDrops(world donburi.World, ctrl *dragmerge.Controller, rule ClaimRule) {
	DropEventType.Subscribe(world, func(w donburi.World, e dragmerge.DropEvent) {
		if !e.Pending {
			return
		}
		if target, ok := rule(e); ok {
			ctrl.ClaimDrop(target)
		}
	})
}
