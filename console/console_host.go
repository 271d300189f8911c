//go:build (linux && !baremetal) || darwin

package console

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// Default returns the console on stdout. Escape sequences are only written
// when stdout is a terminal, so redirected logs stay clean.
func Default() *Console {
	return New(os.Stdout, false, terminal.IsTerminal(int(os.Stdout.Fd())))
}
