// Package viz is the terminal host: a Bubble Tea program that drives the
// simulator and draws it on a braille [Canvas].
//
// Terminals report key presses but not releases, so hold keys toggle:
//
//	W     - spawn on/off
//	S     - despawn on/off
//	Space - thrust on/off
//	G     - attractor on/off
//	H     - toggle collisions
//	R     - reset
//	O/L   - drag up/down
//	I/K   - spawn rate up/down
//	P     - log the particle count
//	Esc   - release every held key
package viz
