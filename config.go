package findme

import "time"

// Build-time configuration. None of these can be changed at runtime.
const (
	// BLESSIRQPriority is the interrupt priority of the radio link layer.
	BLESSIRQPriority = 1

	// WakeupIRQPriority is the interrupt priority of the wake timer. It is
	// lower than the radio so link-layer timing is never delayed by it.
	WakeupIRQPriority = 7

	// WakeupTimerDelay is the period of the wake timer.
	WakeupTimerDelay = 250 * time.Millisecond

	// LFClockHz is the frequency of the low-frequency clock that keeps
	// running in deep sleep and feeds the wake timer.
	LFClockHz = 32768

	// WakeupTimerMatch is WakeupTimerDelay expressed in LFClock ticks.
	WakeupTimerMatch = uint32(WakeupTimerDelay/time.Millisecond) * LFClockHz / 1000

	// MaxConnections is the number of simultaneous centrals the peripheral
	// accepts. Advertising is not started while this many are connected.
	MaxConnections = 1
)
