package findme

import (
	"sync"
	"time"
)

// TickerTimer is a Timer backed by the runtime timer. On TinyGo the runtime
// timer is itself driven by the low-frequency RTC, so this keeps working in
// the sleep states reachable through IRQ.Wait. The callback is called from
// the timer goroutine, which plays the role of interrupt context.
type TickerTimer struct {
	clockHz uint32

	mu      sync.Mutex
	match   uint32
	cb      func()
	enabled bool
	gen     uint32
	t       *time.Timer
}

// NewTickerTimer returns a stopped timer counting at clockHz.
func NewTickerTimer(clockHz uint32) *TickerTimer {
	return &TickerTimer{clockHz: clockHz}
}

// SetMatch sets the compare value, in ticks from the last reload.
func (t *TickerTimer) SetMatch(ticks uint32) {
	t.mu.Lock()
	t.match = ticks
	t.arm()
	t.mu.Unlock()
}

// Reload restarts counting from zero.
func (t *TickerTimer) Reload() {
	t.mu.Lock()
	t.arm()
	t.mu.Unlock()
}

func (t *TickerTimer) SetCallback(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
}

// EnableEvent enables or disables the compare-match event. The priority is
// ignored: there is only one timer goroutine per TickerTimer.
func (t *TickerTimer) EnableEvent(priority uint8, enable bool) {
	t.mu.Lock()
	t.enabled = enable
	if enable {
		t.arm()
	} else {
		t.stop()
	}
	t.mu.Unlock()
}

// Stop disables the timer for good.
func (t *TickerTimer) Stop() {
	t.EnableEvent(0, false)
}

// Period returns the time until a compare match for the given tick count.
func (t *TickerTimer) Period(ticks uint32) time.Duration {
	if t.clockHz == 0 {
		return 0
	}
	return time.Duration(ticks) * time.Second / time.Duration(t.clockHz)
}

// arm must be called with t.mu held.
func (t *TickerTimer) arm() {
	t.stop()
	if !t.enabled || t.match == 0 {
		return
	}
	gen := t.gen
	t.t = time.AfterFunc(t.Period(t.match), func() {
		t.fire(gen)
	})
}

// stop must be called with t.mu held.
func (t *TickerTimer) stop() {
	t.gen++
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}

func (t *TickerTimer) fire(gen uint32) {
	t.mu.Lock()
	cb := t.cb
	stale := gen != t.gen || !t.enabled
	t.mu.Unlock()
	if stale || cb == nil {
		return
	}
	cb()
}
