package findme

import "sync/atomic"

// WakeScheduler turns a low-frequency compare-match timer into a periodic
// heartbeat. Every period it raises the wake flag, which the main loop
// consumes with Take, and pulls the processor out of deep sleep.
//
// The wake flag is the only state shared between the timer interrupt and the
// main loop.
type WakeScheduler struct {
	timer Timer
	irq   IRQ
	match uint32
	flag  atomic.Bool
}

// NewWakeScheduler returns a scheduler firing every WakeupTimerDelay. The irq
// may be nil if nothing needs to be woken up.
func NewWakeScheduler(timer Timer, irq IRQ) *WakeScheduler {
	return &WakeScheduler{
		timer: timer,
		irq:   irq,
		match: WakeupTimerMatch,
	}
}

// Init configures and starts the timer.
func (w *WakeScheduler) Init() {
	w.timer.SetMatch(w.match)
	w.timer.Reload()
	w.timer.SetCallback(w.interrupt)
	w.timer.EnableEvent(WakeupIRQPriority, true)
}

// Stop disables the compare-match event. A fire already in progress does not
// re-arm the timer.
func (w *WakeScheduler) Stop() {
	w.timer.EnableEvent(WakeupIRQPriority, false)
}

// interrupt runs in interrupt context. The timer does not free-run, so the
// next compare match must be armed again every time.
func (w *WakeScheduler) interrupt() {
	w.flag.Store(true)
	w.timer.Reload()
	w.timer.SetMatch(w.match)
	w.irq.Raise()
}

// Take clears the wake flag and returns whether it was set.
func (w *WakeScheduler) Take() bool {
	return w.flag.Swap(false)
}
