package findme

import "strconv"

// StackState is the lifecycle state of the protocol stack. The stack owns
// it; the Coordinator only reads it.
type StackState uint8

const (
	StackStopped StackState = iota
	StackInitializing
	StackRunning
	StackShuttingDown
)

func (s StackState) String() string {
	switch s {
	case StackStopped:
		return "stopped"
	case StackInitializing:
		return "initializing"
	case StackRunning:
		return "running"
	case StackShuttingDown:
		return "shutting down"
	default:
		return "StackState(" + strconv.Itoa(int(s)) + ")"
	}
}

// AdvState is the advertising state of the peripheral.
type AdvState uint8

const (
	AdvStopped AdvState = iota
	AdvAdvertising
)

// ConnState is the state of a single link.
type ConnState uint8

const (
	ConnDisconnected ConnState = iota
	ConnConnected
)

// ConnHandle identifies a link. It is assigned by the stack when a central
// connects.
type ConnHandle struct {
	BDHandle uint8
	AttID    uint8
}

// Stack is the protocol stack as seen by the Coordinator.
//
// Handlers registered with SetEventHandler and SetAlertHandler are only ever
// invoked from ProcessEvents, in the order the stack queued the events.
type Stack interface {
	SetEventHandler(h func(Event))
	SetAlertHandler(h func(AlertEvent))

	// Enable starts the stack. StackOn is reported once it is running.
	Enable() error
	EnableLowPowerMode() error

	// Disable stops the stack. ShutdownComplete is reported once it has
	// stopped, after which State returns StackStopped.
	Disable() error

	State() StackState
	AdvertisementState() AdvState
	ConnectionState(h ConnHandle) ConnState
	ActiveConnections() int

	StartAdvertisement() error

	// AlertLevelValue reads the Alert Level characteristic from the local
	// attribute store.
	AlertLevelValue() (byte, error)

	// ProcessEvents dispatches all queued events to the registered handlers.
	ProcessEvents()
}
