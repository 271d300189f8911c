package findme

import (
	"context"
	"fmt"
)

// recorder collects the calls made on the fakes, in order, when several
// fakes share it.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...interface{}) {
	if r != nil {
		r.calls = append(r.calls, fmt.Sprintf(format, args...))
	}
}

type fakeStack struct {
	rec *recorder

	state  StackState
	adv    AdvState
	conns  map[ConnHandle]ConnState
	active int

	enableErr    error
	lowPowerErr  error
	startErr     error
	disableErr   error
	alertValue   byte
	alertErr     error
	startCalls   int
	disableCalls int
	processCalls int

	queue   []queued
	onEvent func(Event)
	onAlert func(AlertEvent)
}

func newFakeStack() *fakeStack {
	return &fakeStack{
		state: StackRunning,
		conns: make(map[ConnHandle]ConnState),
	}
}

func (s *fakeStack) SetEventHandler(h func(Event))      { s.onEvent = h }
func (s *fakeStack) SetAlertHandler(h func(AlertEvent)) { s.onAlert = h }

func (s *fakeStack) Enable() error {
	s.rec.add("enable")
	if s.enableErr != nil {
		return s.enableErr
	}
	s.state = StackInitializing
	s.queue = append(s.queue, queued{ev: StackOn{}})
	return nil
}

func (s *fakeStack) EnableLowPowerMode() error {
	s.rec.add("low power")
	return s.lowPowerErr
}

func (s *fakeStack) Disable() error {
	s.disableCalls++
	s.rec.add("disable")
	if s.disableErr != nil {
		return s.disableErr
	}
	s.state = StackShuttingDown
	s.queue = append(s.queue, queued{ev: ShutdownComplete{}})
	return nil
}

func (s *fakeStack) State() StackState            { return s.state }
func (s *fakeStack) AdvertisementState() AdvState { return s.adv }
func (s *fakeStack) ActiveConnections() int       { return s.active }

func (s *fakeStack) ConnectionState(h ConnHandle) ConnState {
	return s.conns[h]
}

func (s *fakeStack) StartAdvertisement() error {
	s.startCalls++
	s.rec.add("start advertisement")
	if s.startErr != nil {
		return s.startErr
	}
	s.adv = AdvAdvertising
	s.queue = append(s.queue, queued{ev: AdvertisementStartStop{}})
	return nil
}

func (s *fakeStack) AlertLevelValue() (byte, error) {
	return s.alertValue, s.alertErr
}

func (s *fakeStack) ProcessEvents() {
	s.processCalls++
	s.rec.add("process events")
	for len(s.queue) > 0 {
		q := s.queue[0]
		s.queue = s.queue[1:]
		switch q.ev.(type) {
		case StackOn:
			s.state = StackRunning
		case ShutdownComplete:
			s.state = StackStopped
		}
		if q.ev != nil && s.onEvent != nil {
			s.onEvent(q.ev)
		}
		if q.alert != nil && s.onAlert != nil {
			s.onAlert(q.alert)
		}
	}
}

// write simulates a central writing v to the Alert Level characteristic.
func (s *fakeStack) write(v byte) {
	s.alertValue = v
	s.queue = append(s.queue, queued{alert: AlertLevelWrite{}})
}

type fakeIndicator struct {
	name string
	rec  *recorder
	on   bool
	ops  []string
}

func (i *fakeIndicator) Set(on bool) {
	i.on = on
	i.ops = append(i.ops, fmt.Sprintf("set %v", on))
	i.rec.add("%s set %v", i.name, on)
}

func (i *fakeIndicator) Toggle() {
	i.on = !i.on
	i.ops = append(i.ops, "toggle")
	i.rec.add("%s toggle", i.name)
}

type fakePower struct {
	rec          *recorder
	sleeps       int
	hibernates   int
	hibernateErr error
}

func (p *fakePower) DeepSleep(ctx context.Context) error {
	p.sleeps++
	p.rec.add("deep sleep")
	return ctx.Err()
}

func (p *fakePower) Hibernate() error {
	p.hibernates++
	p.rec.add("hibernate")
	return p.hibernateErr
}

// fakeTx reports TX activity for the first busy polls.
type fakeTx struct {
	rec  *recorder
	busy int
}

func (t *fakeTx) TxActive() bool {
	t.rec.add("tx active?")
	if t.busy > 0 {
		t.busy--
		return true
	}
	return false
}

type fakeTimer struct {
	rec      *recorder
	match    uint32
	reloads  int
	priority uint8
	enabled  bool
	cb       func()
}

func (t *fakeTimer) SetMatch(ticks uint32) { t.match = ticks }
func (t *fakeTimer) Reload()               { t.reloads++ }
func (t *fakeTimer) SetCallback(cb func()) { t.cb = cb }

func (t *fakeTimer) EnableEvent(priority uint8, enable bool) {
	t.priority = priority
	t.enabled = enable
	if !enable {
		t.rec.add("timer disabled")
	}
}

// fire simulates a compare match.
func (t *fakeTimer) fire() {
	if t.enabled && t.cb != nil {
		t.cb()
	}
}
