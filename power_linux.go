//go:build linux && !baremetal

package findme

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// HibernateAction selects what hibernating means on a Linux host.
type HibernateAction string

const (
	// HibernateExit only stops the main loop. The process is expected to
	// exit, like a board that needs a reset to run again.
	HibernateExit HibernateAction = "exit"

	// HibernateLogin1 asks systemd-logind to hibernate the whole machine.
	HibernateLogin1 HibernateAction = "login1"
)

// NewLinuxPower returns a Power for Linux hosts.
func NewLinuxPower(irq IRQ, action HibernateAction) *IdlePower {
	p := &IdlePower{IRQ: irq}
	if action == HibernateLogin1 {
		p.OnHibernate = login1Hibernate
	}
	return p
}

func login1Hibernate() error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return fmt.Errorf("connect to system bus: %w", err)
	}
	obj := conn.Object("org.freedesktop.login1", dbus.ObjectPath("/org/freedesktop/login1"))
	// The argument disables the interactive authorization prompt.
	call := obj.Call("org.freedesktop.login1.Manager.Hibernate", 0, false)
	return call.Err
}
