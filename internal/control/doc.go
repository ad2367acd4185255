// Package control turns host input into simulation state transitions.
//
// Hosts submit [Command] values, each a [Kind] plus a [Press] or [Release]
// edge. The simulation drains its [Queue] once per admitted frame and feeds
// each command to [Settings.Apply]:
//
//   - hold kinds (spawn, despawn, thrust) follow the key level
//   - [Attractor] is level triggered: on while pressed
//   - [ToggleCollisions] and [Reset] fire once per press/release cycle
//   - drag and spawn-rate adjustments fire once per cycle, one latch per pair
//   - [ReportCount] fires on release
//
// # Usage
//
//	q := control.NewQueue()
//	q.Push(control.Pressed(control.ToggleCollisions))
//	q.Push(control.Released(control.ToggleCollisions))
//	q.Drain(func(c control.Command) { settings.Apply(c) })
package control
