package findme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWakeupTimerMatch(t *testing.T) {
	// 250ms of a 32768Hz clock.
	if WakeupTimerMatch != 8192 {
		t.Errorf("expected match value 8192 but got %d", WakeupTimerMatch)
	}
	if p := NewTickerTimer(LFClockHz).Period(WakeupTimerMatch); p != WakeupTimerDelay {
		t.Errorf("expected period %v but got %v", WakeupTimerDelay, p)
	}
}

func TestWakeSchedulerInit(t *testing.T) {
	timer := &fakeTimer{}
	w := NewWakeScheduler(timer, nil)

	w.Init()

	assert.Equal(t, WakeupTimerMatch, timer.match)
	assert.Equal(t, 1, timer.reloads)
	assert.Equal(t, uint8(WakeupIRQPriority), timer.priority)
	assert.True(t, timer.enabled)
	assert.NotNil(t, timer.cb)
	assert.False(t, w.Take(), "flag must start cleared")
}

func TestWakeSchedulerFire(t *testing.T) {
	timer := &fakeTimer{}
	irq := NewIRQ()
	w := NewWakeScheduler(timer, irq)
	w.Init()

	timer.match = 0
	timer.fire()

	assert.Equal(t, WakeupTimerMatch, timer.match, "compare match re-armed")
	assert.Equal(t, 2, timer.reloads)
	select {
	case <-irq:
	default:
		t.Error("expected the IRQ line to be raised")
	}

	assert.True(t, w.Take())
	assert.False(t, w.Take(), "flag must be consumed exactly once")
}

func TestWakeSchedulerCoalesces(t *testing.T) {
	timer := &fakeTimer{}
	irq := NewIRQ()
	w := NewWakeScheduler(timer, irq)
	w.Init()

	timer.fire()
	timer.fire()
	timer.fire()

	assert.True(t, w.Take())
	assert.False(t, w.Take())
	assert.Len(t, irq, 1)
}

func TestWakeSchedulerStop(t *testing.T) {
	timer := &fakeTimer{}
	w := NewWakeScheduler(timer, NewIRQ())
	w.Init()

	w.Stop()
	assert.False(t, timer.enabled)
	assert.Equal(t, uint8(WakeupIRQPriority), timer.priority)
	timer.fire()
	assert.False(t, w.Take(), "no wake after Stop")
}

func TestWakeSchedulerTickerTimer(t *testing.T) {
	// 8192 ticks at 819200Hz is 10ms.
	timer := NewTickerTimer(WakeupTimerMatch * 100)
	defer timer.Stop()
	irq := NewIRQ()
	w := NewWakeScheduler(timer, irq)
	w.Init()

	for i := 0; i < 3; i++ {
		select {
		case <-irq:
		case <-time.After(time.Second):
			t.Fatalf("wake %d did not happen", i)
		}
		assert.True(t, w.Take())
	}
}
