//go:build baremetal

package findme

import (
	"machine"
	"time"
)

// NewPinWakePower returns a Power for microcontrollers. Hibernate parks the
// core until the wake button is pressed and then resets the chip, so
// execution starts over from main like after a hardware wake from hibernate.
// Buttons pulling the pin to ground are activeLow.
func NewPinWakePower(irq IRQ, wake machine.Pin, activeLow bool) *IdlePower {
	mode, edge := machine.PinInputPulldown, machine.PinRising
	if activeLow {
		mode, edge = machine.PinInputPullup, machine.PinFalling
	}
	return &IdlePower{
		IRQ: irq,
		OnHibernate: func() error {
			wake.Configure(machine.PinConfig{Mode: mode})
			err := wake.SetInterrupt(edge, func(machine.Pin) {
				machine.CPUReset()
			})
			if err != nil {
				return err
			}
			for {
				time.Sleep(time.Hour)
			}
		},
	}
}
