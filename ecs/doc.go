// Package ecs bridges gameloop's fixed steps into a [Donburi] world.
//
// [PublishSteps] wraps an update callback so that every fixed step is
// published as a [StepEvent] and delivered to subscribed systems before the
// wrapped callback runs:
//
//	ecs.StepEventType.Subscribe(world, movementSystem)
//	update := ecs.PublishSteps(world, func(l *gameloop.Loop[*Game, struct{}]) { ... })
//	gameloop.Run(game, 60, 100*time.Millisecond, update, render)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
