package ecs

import (
	"github.com/phanxgames/transformable"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEvent is a transformable event tagged with the entity it belongs
// to. Entity is donburi.Null for sinks created without an entity.
type GestureEvent struct {
	Entity donburi.Entity
	transformable.Event
}

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive start, move, release and
// swipe events.
var GestureEventType = events.NewEventType[GestureEvent]()

// Transform holds the latest TransformState of an entity's element. Sinks
// keep it in sync when the entity has the component.
var Transform = donburi.NewComponentType[transformable.TransformState]()

type donburiSink struct {
	world  donburi.World
	entity donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Gesture
// events are published to GestureEventType and can be consumed with
// Subscribe and ProcessEvents. When entity is valid and has the Transform
// component, every event also writes the element state into it.
func NewDonburiSink(world donburi.World, entity donburi.Entity) transformable.EventSink {
	return &donburiSink{world: world, entity: entity}
}

func (s *donburiSink) EmitEvent(event transformable.Event) {
	if s.entity != donburi.Null && s.world.Valid(s.entity) {
		entry := s.world.Entry(s.entity)
		if entry.HasComponent(Transform) {
			Transform.SetValue(entry, event.State)
		}
	}
	GestureEventType.Publish(s.world, GestureEvent{Entity: s.entity, Event: event})
}
