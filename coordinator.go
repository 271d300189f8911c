package findme

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Phase is the application-level state of the peripheral. It is derived from
// the events the Coordinator has seen; the stack stays the authority on
// advertising and connection state.
type Phase uint8

const (
	PhaseStopped Phase = iota
	PhaseStarting
	PhaseIdle
	PhaseAdvertising
	PhaseConnected
	PhaseShuttingDown
	PhaseHibernated
)

func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseStarting:
		return "starting"
	case PhaseIdle:
		return "idle"
	case PhaseAdvertising:
		return "advertising"
	case PhaseConnected:
		return "connected"
	case PhaseShuttingDown:
		return "shutting down"
	case PhaseHibernated:
		return "hibernated"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Config holds the collaborators of a Coordinator.
type Config struct {
	Stack Stack
	Wake  *WakeScheduler

	// Status shows advertising (blinking) and connection (on) state.
	Status Indicator

	// Alert shows the alert level: off, blinking (mild) or on (high).
	Alert Indicator

	Power Power

	// Console is polled before hibernating so pending log output is not
	// cut off. It may be nil.
	Console TxMonitor

	// MaxConnections defaults to the MaxConnections constant.
	MaxConnections int

	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// Coordinator reacts to protocol events and owns the main loop policy:
// sleep, dispatch queued events, then refresh the indicators if the wake
// timer fired.
//
// All methods must be called from the main loop. Only the WakeScheduler is
// touched from interrupt context.
type Coordinator struct {
	stack    Stack
	wake     *WakeScheduler
	status   Indicator
	alert    Indicator
	power    Power
	console  TxMonitor
	maxConns int
	log      logrus.FieldLogger

	alertLevel AlertLevel
	conn       ConnHandle
	phase      Phase
}

// NewCoordinator returns a Coordinator in PhaseStopped. Call Init before
// Process or Run.
func NewCoordinator(cfg Config) *Coordinator {
	c := &Coordinator{
		stack:    cfg.Stack,
		wake:     cfg.Wake,
		status:   cfg.Status,
		alert:    cfg.Alert,
		power:    cfg.Power,
		console:  cfg.Console,
		maxConns: cfg.MaxConnections,
		log:      cfg.Logger,
	}
	if c.maxConns <= 0 {
		c.maxConns = MaxConnections
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c
}

// Init registers the event handlers, starts the stack in low power mode and
// starts the wake timer.
func (c *Coordinator) Init() error {
	c.stack.SetEventHandler(c.HandleEvent)
	c.phase = PhaseStarting
	if err := c.stack.Enable(); err != nil {
		c.phase = PhaseStopped
		return fmt.Errorf("enable BLE stack: %w", err)
	}
	if err := c.stack.EnableLowPowerMode(); err != nil {
		c.phase = PhaseStopped
		if derr := c.stack.Disable(); derr != nil {
			c.log.WithError(derr).Error("Failed to stop BLE stack")
		}
		return fmt.Errorf("enable BLE low power mode: %w", err)
	}
	c.stack.SetAlertHandler(c.HandleAlert)
	c.wake.Init()
	c.log.WithFields(logrus.Fields{
		"wake_period":     WakeupTimerDelay,
		"wake_irq_prio":   WakeupIRQPriority,
		"bless_irq_prio":  BLESSIRQPriority,
		"max_connections": c.maxConns,
	}).Debug("Find Me initialized")
	return nil
}

// Run calls Process until ctx is done or the device hibernated. It returns
// nil when ctx is done and ErrHibernated after hibernating.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		err := c.Process(ctx)
		if err == nil {
			continue
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	}
}

// Process runs one cycle of the main loop.
func (c *Coordinator) Process(ctx context.Context) error {
	if c.phase == PhaseHibernated {
		return ErrHibernated
	}
	if err := c.enterLowPowerMode(ctx); err != nil {
		return err
	}

	c.stack.ProcessEvents()

	if c.wake.Take() {
		c.refreshIndicators()
	}
	return nil
}

// enterLowPowerMode sleeps until the next interrupt, or hibernates if the
// stack has been turned off. Only the wake pin may bring the device out of
// hibernate, so the wake timer is stopped first. A failed hibernate leaves
// the phase unchanged and the next Process tries again.
func (c *Coordinator) enterLowPowerMode(ctx context.Context) error {
	if c.stack.State() != StackStopped {
		return c.power.DeepSleep(ctx)
	}

	c.log.Info("Entering hibernate mode")
	c.status.Set(false)
	c.alert.Set(false)
	c.wake.Stop()
	for c.console != nil && c.console.TxActive() {
		runtime.Gosched()
	}
	if err := c.power.Hibernate(); err != nil {
		return fmt.Errorf("hibernate: %w", err)
	}
	c.phase = PhaseHibernated
	return ErrHibernated
}

func (c *Coordinator) refreshIndicators() {
	switch {
	case c.stack.AdvertisementState() == AdvAdvertising:
		c.status.Toggle()
	case c.stack.ConnectionState(c.conn) == ConnConnected:
		c.status.Set(true)
	default:
		c.status.Set(false)
	}

	switch c.alertLevel {
	case AlertNone:
		c.alert.Set(false)
	case AlertMild:
		c.alert.Toggle()
	case AlertHigh:
		c.alert.Set(true)
	}
}

// HandleEvent is the stack event handler.
func (c *Coordinator) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case StackOn:
		c.log.Info("BLE stack started")
		c.phase = PhaseIdle
		c.startAdvertisement()

	case Timeout:
		switch ev.Reason {
		case TimeoutAdvertising:
			c.log.Info("Advertisement timeout event")
		case TimeoutGATTResponse:
			c.log.Info("GATT response timeout")
		default:
			c.log.WithField("reason", ev.Reason).Info("BLE timeout event")
		}

	case SetEventMaskComplete:
		c.log.Info("Set LE mask event mask command completed")

	case SetDeviceAddressComplete:
		c.log.Info("Set device address command has completed")

	case SetTxPowerComplete:
		c.log.Info("Set Tx power command completed")

	case ShutdownComplete:
		c.log.Info("BLE shutdown complete")
		c.phase = PhaseStopped

	case DeviceConnected:
		c.log.Info("GAP device connected")
		c.connected(ev.Handle)

	case EnhancedConnectionComplete:
		c.log.Info("GAP enhanced connection complete")
		c.connected(ev.Handle)

	case DeviceDisconnected:
		if c.stack.ConnectionState(c.conn) != ConnDisconnected {
			break
		}
		c.log.Info("GAP device disconnected")
		c.alertLevel = AlertNone
		c.phase = PhaseIdle
		c.startAdvertisement()

	case AdvertisementStartStop:
		switch {
		case c.stack.AdvertisementState() == AdvAdvertising:
			c.log.Info("BLE advertisement started")
			c.phase = PhaseAdvertising
		case c.stack.ActiveConnections() > 0:
			c.log.Info("BLE advertisement stopped for connection")
		default:
			c.log.Info("BLE advertisement stopped")
			c.phase = PhaseShuttingDown
			if err := c.stack.Disable(); err != nil {
				c.log.WithError(err).Error("Failed to stop BLE stack")
			}
		}

	case GATTConnect:
		c.log.Info("GATT device connected")
		c.connected(ev.Handle)

	case GATTDisconnect:
		c.log.Info("GATT device disconnected")

	case MTUExchangeRequest:
		c.log.WithField("mtu", ev.MTU).Info("GATT MTU Exchange Request received")

	case ReadCharacteristicRequest:
		c.log.WithField("attribute", ev.Attribute).Info("GATT read characteristic request received")

	case Other:
		c.log.Infof("BLE Event 0x%X", uint32(ev.EventCode))

	default:
		c.log.Infof("BLE Event 0x%X", uint32(ev.Code()))
	}
}

// HandleAlert is the Immediate Alert Service event handler.
func (c *Coordinator) HandleAlert(ev AlertEvent) {
	if _, ok := ev.(AlertLevelWrite); !ok {
		return
	}
	v, err := c.stack.AlertLevelValue()
	if err != nil {
		c.log.WithError(err).Error("Failed to read alert level")
		return
	}
	level := AlertLevel(v)
	if !level.Valid() {
		c.log.WithField("level", level).Warn("Undefined alert level written")
	}
	c.alertLevel = level
}

func (c *Coordinator) connected(h ConnHandle) {
	c.conn = h
	c.phase = PhaseConnected
}

// startAdvertisement starts advertising unless the peripheral is already
// advertising or has no free connection slot. A failure is only logged: the
// next disconnect or stack start tries again.
func (c *Coordinator) startAdvertisement() {
	if c.stack.AdvertisementState() == AdvAdvertising ||
		c.stack.ActiveConnections() >= c.maxConns {
		return
	}
	if err := c.stack.StartAdvertisement(); err != nil {
		c.log.WithError(err).Error("Failed to start advertisement")
	}
}

// AlertLevel returns the alert level last written by a central.
func (c *Coordinator) AlertLevel() AlertLevel {
	return c.alertLevel
}

// Conn returns the handle of the most recent connection.
func (c *Coordinator) Conn() ConnHandle {
	return c.conn
}

// Phase returns the application-level state.
func (c *Coordinator) Phase() Phase {
	return c.phase
}
