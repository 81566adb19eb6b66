package ecs

import (
	"github.com/phanxgames/tactile"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for tactile gesture events.
var GestureEventType = events.NewEventType[tactile.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Gestures are queued on GestureEventType and delivered to subscribers when
// the world's systems call ProcessEvents.
func NewDonburiStore(world donburi.World) tactile.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitGesture(event tactile.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
