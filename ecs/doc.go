// Package ecs provides ECS adapters for tactile's gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges recognized gestures
// (tap, double tap, long press, swipe, pan, pinch) into a [Donburi] world as
// typed events. Subscribe to [GestureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	recognizer.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
