package findme

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

var (
	// ServiceUUIDImmediateAlert is the Immediate Alert Service.
	ServiceUUIDImmediateAlert = bluetooth.New16BitUUID(0x1802)

	// CharacteristicUUIDAlertLevel is the Alert Level characteristic.
	CharacteristicUUIDAlertLevel = bluetooth.New16BitUUID(0x2A06)
)

// BluetoothOptions configures a BluetoothStack.
type BluetoothOptions struct {
	// LocalName is the complete local name put in the advertisement.
	LocalName string

	// AdvInterval is the advertising interval. Zero means 100ms.
	AdvInterval time.Duration

	// AdvTimeout stops advertising when no central connected within this
	// time. Zero means advertise forever.
	AdvTimeout time.Duration

	// MaxConnections defaults to the MaxConnections constant.
	MaxConnections int

	// AdapterID is the BlueZ adapter powered off by Disable on Linux.
	// Defaults to "hci0".
	AdapterID string

	// IRQ is raised whenever an event is queued.
	IRQ IRQ

	Logger logrus.FieldLogger
}

// peripheralAdapter is the part of *bluetooth.Adapter used by
// BluetoothStack.
type peripheralAdapter interface {
	Enable() error
	SetConnectHandler(c func(device bluetooth.Device, connected bool))
	AddService(s *bluetooth.Service) error
}

// advertiser is the part of *bluetooth.Advertisement used by BluetoothStack.
type advertiser interface {
	Configure(options bluetooth.AdvertisementOptions) error
	Start() error
	Stop() error
}

// queued is a single entry of the event queue. Exactly one field is set.
type queued struct {
	ev    Event
	alert AlertEvent
}

// BluetoothStack implements Stack on top of tinygo.org/x/bluetooth.
//
// The library reports connections and attribute writes from its own event
// context. Those callbacks only update the link table and append to the event
// queue; the Coordinator sees them later, in order, from ProcessEvents.
type BluetoothStack struct {
	adapter   peripheralAdapter
	adv       advertiser
	opts      BluetoothOptions
	log       logrus.FieldLogger
	powerDown func() error
	alertChar bluetooth.Characteristic

	mu          sync.Mutex
	state       StackState
	advertising bool
	advGen      uint32
	advTimer    *time.Timer
	links       map[string]ConnHandle
	connected   map[ConnHandle]bool
	nextHandle  uint8
	alertLevel  byte
	queue       []queued

	onEvent func(Event)
	onAlert func(AlertEvent)
}

// NewBluetoothStack returns a stopped stack driving the given adapter,
// usually bluetooth.DefaultAdapter.
func NewBluetoothStack(adapter *bluetooth.Adapter, opts BluetoothOptions) *BluetoothStack {
	s := newBluetoothStack(adapter, adapter.DefaultAdvertisement(), opts)
	s.powerDown = func() error {
		return powerDownAdapter(s.opts.AdapterID)
	}
	return s
}

func newBluetoothStack(adapter peripheralAdapter, adv advertiser, opts BluetoothOptions) *BluetoothStack {
	if opts.AdvInterval == 0 {
		opts.AdvInterval = 100 * time.Millisecond
	}
	if opts.MaxConnections <= 0 {
		opts.MaxConnections = MaxConnections
	}
	if opts.AdapterID == "" {
		opts.AdapterID = "hci0"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &BluetoothStack{
		adapter:   adapter,
		adv:       adv,
		opts:      opts,
		log:       opts.Logger,
		powerDown: func() error { return nil },
		links:     make(map[string]ConnHandle),
		connected: make(map[ConnHandle]bool),
	}
}

func (s *BluetoothStack) SetEventHandler(h func(Event)) {
	s.mu.Lock()
	s.onEvent = h
	s.mu.Unlock()
}

func (s *BluetoothStack) SetAlertHandler(h func(AlertEvent)) {
	s.mu.Lock()
	s.onAlert = h
	s.mu.Unlock()
}

// Enable brings up the adapter, configures the advertisement and registers
// the Immediate Alert Service. StackOn is queued on success.
func (s *BluetoothStack) Enable() error {
	s.mu.Lock()
	if s.state != StackStopped {
		s.mu.Unlock()
		return StackErrorInvalidState
	}
	s.state = StackInitializing
	s.mu.Unlock()

	if err := s.enable(); err != nil {
		s.mu.Lock()
		s.state = StackStopped
		s.mu.Unlock()
		return err
	}

	s.post(queued{ev: SetDeviceAddressComplete{}})
	s.post(queued{ev: StackOn{}})
	return nil
}

func (s *BluetoothStack) enable() error {
	s.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		s.connectionChanged(device.Address.String(), connected)
	})
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("enable adapter: %w", err)
	}
	err := s.adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    s.opts.LocalName,
		ServiceUUIDs: []bluetooth.UUID{ServiceUUIDImmediateAlert},
		Interval:     bluetooth.NewDuration(s.opts.AdvInterval),
	})
	if err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	err = s.adapter.AddService(&bluetooth.Service{
		UUID: ServiceUUIDImmediateAlert,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &s.alertChar,
				UUID:   CharacteristicUUIDAlertLevel,
				Value:  []byte{byte(AlertNone)},
				Flags:  bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					s.alertWritten(offset, value)
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("add immediate alert service: %w", err)
	}
	return nil
}

// EnableLowPowerMode only checks the stack is enabled: the controllers
// supported by tinygo.org/x/bluetooth already sleep between radio events.
func (s *BluetoothStack) EnableLowPowerMode() error {
	if s.State() == StackStopped {
		return StackErrorNotEnabled
	}
	s.log.Debug("BLE low power mode enabled")
	return nil
}

// Disable stops advertising and powers down the adapter. ShutdownComplete is
// queued even if powering down failed, since the stack cannot be used
// anymore either way.
func (s *BluetoothStack) Disable() error {
	s.mu.Lock()
	if s.state == StackStopped || s.state == StackShuttingDown {
		s.mu.Unlock()
		return StackErrorInvalidState
	}
	s.state = StackShuttingDown
	wasAdvertising := s.advertising
	s.advertising = false
	s.stopAdvTimer()
	s.mu.Unlock()

	if wasAdvertising {
		if err := s.adv.Stop(); err != nil {
			s.log.WithError(err).Warn("stop advertisement")
		}
	}
	err := s.powerDown()
	s.post(queued{ev: ShutdownComplete{}})
	if err != nil {
		return fmt.Errorf("power down adapter: %w", err)
	}
	return nil
}

func (s *BluetoothStack) State() StackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *BluetoothStack) AdvertisementState() AdvState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.advertising {
		return AdvAdvertising
	}
	return AdvStopped
}

func (s *BluetoothStack) ConnectionState(h ConnHandle) ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected[h] {
		return ConnConnected
	}
	return ConnDisconnected
}

func (s *BluetoothStack) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connected)
}

// StartAdvertisement starts connectable advertising. AdvertisementStartStop
// is queued on success.
func (s *BluetoothStack) StartAdvertisement() error {
	s.mu.Lock()
	switch {
	case s.state != StackRunning:
		s.mu.Unlock()
		return StackErrorInvalidState
	case s.advertising:
		s.mu.Unlock()
		return StackErrorInvalidOperation
	case len(s.connected) >= s.opts.MaxConnections:
		s.mu.Unlock()
		return StackErrorConnectionLimit
	}
	s.mu.Unlock()

	if err := s.adv.Start(); err != nil {
		return fmt.Errorf("start advertisement: %w", err)
	}

	s.mu.Lock()
	s.advertising = true
	s.stopAdvTimer()
	if s.opts.AdvTimeout > 0 {
		gen := s.advGen
		s.advTimer = time.AfterFunc(s.opts.AdvTimeout, func() {
			s.advertisingTimedOut(gen)
		})
	}
	s.mu.Unlock()

	s.post(queued{ev: AdvertisementStartStop{}})
	return nil
}

func (s *BluetoothStack) AlertLevelValue() (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StackStopped {
		return 0, StackErrorNotEnabled
	}
	return s.alertLevel, nil
}

// ProcessEvents dispatches queued events until the queue is empty, including
// events queued by the handlers themselves.
func (s *BluetoothStack) ProcessEvents() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		q := s.queue[0]
		s.queue[0] = queued{}
		s.queue = s.queue[1:]
		switch q.ev.(type) {
		case StackOn:
			s.state = StackRunning
		case ShutdownComplete:
			s.state = StackStopped
		}
		onEvent, onAlert := s.onEvent, s.onAlert
		s.mu.Unlock()

		switch {
		case q.ev != nil && onEvent != nil:
			onEvent(q.ev)
		case q.alert != nil && onAlert != nil:
			onAlert(q.alert)
		}
	}
}

func (s *BluetoothStack) post(q queued) {
	s.mu.Lock()
	s.queue = append(s.queue, q)
	s.mu.Unlock()
	s.opts.IRQ.Raise()
}

// connectionChanged is called by the adapter's connect handler. Addresses are
// not reported on every platform, so a disconnect of an unknown address tears
// down the only remaining link.
func (s *BluetoothStack) connectionChanged(addr string, connected bool) {
	s.mu.Lock()
	if connected {
		s.nextHandle++
		h := ConnHandle{BDHandle: s.nextHandle, AttID: s.nextHandle}
		s.links[addr] = h
		s.connected[h] = true
		wasAdvertising := s.advertising
		s.advertising = false
		s.stopAdvTimer()
		s.mu.Unlock()

		if wasAdvertising {
			// The controller already stopped advertising. Stopping it here
			// too keeps the library from restarting it on disconnect.
			if err := s.adv.Stop(); err != nil {
				s.log.WithError(err).Warn("stop advertisement")
			}
		}
		s.post(queued{ev: DeviceConnected{Handle: h}})
		s.post(queued{ev: GATTConnect{Handle: h}})
		return
	}

	h, ok := s.links[addr]
	if !ok && len(s.links) == 1 {
		for a, lh := range s.links {
			addr, h, ok = a, lh, true
		}
	}
	if ok {
		delete(s.links, addr)
		delete(s.connected, h)
	}
	if len(s.connected) == 0 {
		s.alertLevel = byte(AlertNone)
	}
	s.mu.Unlock()

	s.log.WithField("address", addr).Debug("link closed")
	s.post(queued{ev: GATTDisconnect{Handle: h}})
	s.post(queued{ev: DeviceDisconnected{Handle: h}})
}

// alertWritten is the Alert Level write handler. The characteristic holds a
// single byte; anything else is not stored.
func (s *BluetoothStack) alertWritten(offset int, value []byte) {
	if offset != 0 || len(value) != 1 {
		return
	}
	s.mu.Lock()
	s.alertLevel = value[0]
	s.mu.Unlock()
	s.post(queued{alert: AlertLevelWrite{}})
}

func (s *BluetoothStack) advertisingTimedOut(gen uint32) {
	s.mu.Lock()
	if gen != s.advGen || !s.advertising {
		s.mu.Unlock()
		return
	}
	s.advertising = false
	s.advTimer = nil
	s.mu.Unlock()

	if err := s.adv.Stop(); err != nil {
		s.log.WithError(err).Warn("stop advertisement")
	}
	s.post(queued{ev: Timeout{Reason: TimeoutAdvertising}})
	s.post(queued{ev: AdvertisementStartStop{}})
}

// stopAdvTimer must be called with s.mu held.
func (s *BluetoothStack) stopAdvTimer() {
	s.advGen++
	if s.advTimer != nil {
		s.advTimer.Stop()
		s.advTimer = nil
	}
}
