package findme

import "context"

// IdlePower is a Power that sleeps on an IRQ line. On TinyGo, blocking on a
// channel lets the scheduler put the core to sleep until the next interrupt.
type IdlePower struct {
	IRQ IRQ

	// OnHibernate enters the pin-wake power state. A nil OnHibernate makes
	// Hibernate return immediately, leaving it to the caller to stop.
	OnHibernate func() error
}

func (p *IdlePower) DeepSleep(ctx context.Context) error {
	return p.IRQ.Wait(ctx)
}

func (p *IdlePower) Hibernate() error {
	if p.OnHibernate == nil {
		return nil
	}
	return p.OnHibernate()
}
