// Package findme implements the application side of a Bluetooth Low Energy
// Find Me target: a peripheral exposing the Immediate Alert Service whose
// Alert Level characteristic is written by a central (a phone, a key fob
// locator) to make the device signal its position.
//
// The protocol stack itself is an external collaborator reached through the
// Stack interface. BluetoothStack adapts tinygo.org/x/bluetooth to it, so the
// same Coordinator runs on Linux (BlueZ) hosts and on microcontrollers such as
// those produced by Nordic Semiconductor.
//
// A typical main loop looks like this:
//
//	coord := findme.NewCoordinator(findme.Config{...})
//	must("init", coord.Init())
//	coord.Run(ctx)
package findme // import "tinygo.org/x/findme"
