//go:build baremetal

package console

import (
	"machine"
)

// Default returns the console on the board's default serial port.
func Default() *Console {
	return New(machine.Serial, true, true)
}
