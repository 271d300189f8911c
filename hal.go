package findme

import "context"

// Timer is a hardware countdown timer running from the low-frequency clock.
// The callback runs in interrupt context.
type Timer interface {
	SetMatch(ticks uint32)
	Reload()
	SetCallback(cb func())
	EnableEvent(priority uint8, enable bool)
}

// Indicator is a single visible output, usually an LED.
type Indicator interface {
	Set(on bool)
	Toggle()
}

// Power moves the processor between power states.
type Power interface {
	// DeepSleep returns once an interrupt fired or ctx is done.
	DeepSleep(ctx context.Context) error

	// Hibernate enters the deepest power state, left only through an
	// external pin event that restarts execution. It does not return on
	// hardware.
	Hibernate() error
}

// TxMonitor reports whether log output is still being transmitted.
type TxMonitor interface {
	TxActive() bool
}

// IRQ is an interrupt line shared by the wake timer and the radio. Raising it
// never blocks and never allocates; raises that happen while it is already
// pending are coalesced.
type IRQ chan struct{}

// NewIRQ returns a new, idle interrupt line.
func NewIRQ() IRQ {
	return make(IRQ, 1)
}

// Raise marks the interrupt line pending. It is safe to call from interrupt
// context and on a nil IRQ.
func (q IRQ) Raise() {
	select {
	case q <- struct{}{}:
	default:
	}
}

// Wait blocks until the line is pending, then clears it.
func (q IRQ) Wait(ctx context.Context) error {
	select {
	case <-q:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
