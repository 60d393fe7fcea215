// Package ecs bridges transformable gesture events into a [Donburi] world.
//
// [NewDonburiSink] returns a transformable.EventSink that publishes every
// event of an element as a [GestureEvent] and mirrors the element state
// into the entity's [Transform] component.
//
// Usage:
//
//	entity := world.Create(ecs.Transform)
//	card.SetEventSink(ecs.NewDonburiSink(world, entity))
//
//	ecs.GestureEventType.Subscribe(world, onGesture)
//	// in the world update:
//	ecs.GestureEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
