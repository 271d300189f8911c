//go:build linux && !baremetal

// Some documentation for the BlueZ D-Bus interface:
// https://git.kernel.org/pub/scm/bluetooth/bluez.git/tree/doc

package findme

import (
	"github.com/muka/go-bluetooth/api"
)

// powerDownAdapter switches the BlueZ adapter off, which is the closest a
// host gets to turning the radio off.
func powerDownAdapter(id string) error {
	a, err := api.GetAdapter(id)
	if err != nil {
		return err
	}
	powered, err := a.GetPowered()
	if err != nil {
		return err
	}
	if !powered {
		return nil
	}
	return a.SetPowered(false)
}
