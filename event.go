package findme

import "strconv"

// EventCode identifies the kind of an Event. Codes for events this package
// knows about are fixed; anything else the stack reports is carried in an
// Other event with the raw code.
type EventCode uint32

const (
	EventStackOn EventCode = 0x01 + iota
	EventTimeout
	EventSetEventMaskComplete
	EventSetDeviceAddressComplete
	EventSetTxPowerComplete
	EventShutdownComplete
	EventDeviceConnected
	EventEnhancedConnectionComplete
	EventDeviceDisconnected
	EventAdvertisementStartStop
	EventGATTConnect
	EventGATTDisconnect
	EventMTUExchangeRequest
	EventReadCharacteristicRequest
)

var eventNames = [...]string{
	EventStackOn:                    "StackOn",
	EventTimeout:                    "Timeout",
	EventSetEventMaskComplete:       "SetEventMaskComplete",
	EventSetDeviceAddressComplete:   "SetDeviceAddressComplete",
	EventSetTxPowerComplete:         "SetTxPowerComplete",
	EventShutdownComplete:           "ShutdownComplete",
	EventDeviceConnected:            "DeviceConnected",
	EventEnhancedConnectionComplete: "EnhancedConnectionComplete",
	EventDeviceDisconnected:         "DeviceDisconnected",
	EventAdvertisementStartStop:     "AdvertisementStartStop",
	EventGATTConnect:                "GATTConnect",
	EventGATTDisconnect:             "GATTDisconnect",
	EventMTUExchangeRequest:         "MTUExchangeRequest",
	EventReadCharacteristicRequest:  "ReadCharacteristicRequest",
}

func (c EventCode) String() string {
	if int(c) < len(eventNames) && eventNames[c] != "" {
		return eventNames[c]
	}
	return "EventCode(0x" + strconv.FormatUint(uint64(c), 16) + ")"
}

// Event is a protocol event reported by the stack. The set of events is
// closed: only the types in this file implement it.
type Event interface {
	Code() EventCode
	isEvent()
}

// TimeoutReason tells which protocol timer expired.
type TimeoutReason uint8

const (
	TimeoutAdvertising TimeoutReason = iota + 1
	TimeoutGATTResponse
	TimeoutAuthentication
	TimeoutScanning
)

// StackOn is reported once the stack finished starting up.
type StackOn struct{}

// Timeout is reported when one of the stack's protocol timers expires.
type Timeout struct {
	Reason TimeoutReason
}

// SetEventMaskComplete reports completion of the LE Set Event Mask command.
type SetEventMaskComplete struct{}

// SetDeviceAddressComplete reports completion of the set device address
// command.
type SetDeviceAddressComplete struct{}

// SetTxPowerComplete reports completion of the set Tx power command.
type SetTxPowerComplete struct{}

// ShutdownComplete is reported once the stack has stopped.
type ShutdownComplete struct{}

// DeviceConnected is reported at the GAP level when a central connected.
type DeviceConnected struct {
	Handle ConnHandle
}

// EnhancedConnectionComplete replaces DeviceConnected when link layer privacy
// is enabled.
type EnhancedConnectionComplete struct {
	Handle ConnHandle
}

// DeviceDisconnected is reported when a link was torn down or a connection
// attempt failed.
type DeviceDisconnected struct {
	Handle ConnHandle
}

// AdvertisementStartStop is reported whenever advertising starts or stops.
// Query Stack.AdvertisementState to know which one happened.
type AdvertisementStartStop struct{}

// GATTConnect is reported at the GATT level after a connection completed.
type GATTConnect struct {
	Handle ConnHandle
}

// GATTDisconnect is reported at the GATT level after a disconnection.
type GATTDisconnect struct {
	Handle ConnHandle
}

// MTUExchangeRequest is reported when the central requests an ATT MTU.
type MTUExchangeRequest struct {
	Handle ConnHandle
	MTU    uint16
}

// ReadCharacteristicRequest is reported when the central reads a
// characteristic value.
type ReadCharacteristicRequest struct {
	Handle    ConnHandle
	Attribute uint16
}

// Other is any event this package has no dedicated type for.
type Other struct {
	EventCode EventCode
}

func (StackOn) Code() EventCode                    { return EventStackOn }
func (Timeout) Code() EventCode                    { return EventTimeout }
func (SetEventMaskComplete) Code() EventCode       { return EventSetEventMaskComplete }
func (SetDeviceAddressComplete) Code() EventCode   { return EventSetDeviceAddressComplete }
func (SetTxPowerComplete) Code() EventCode         { return EventSetTxPowerComplete }
func (ShutdownComplete) Code() EventCode           { return EventShutdownComplete }
func (DeviceConnected) Code() EventCode            { return EventDeviceConnected }
func (EnhancedConnectionComplete) Code() EventCode { return EventEnhancedConnectionComplete }
func (DeviceDisconnected) Code() EventCode         { return EventDeviceDisconnected }
func (AdvertisementStartStop) Code() EventCode     { return EventAdvertisementStartStop }
func (GATTConnect) Code() EventCode                { return EventGATTConnect }
func (GATTDisconnect) Code() EventCode             { return EventGATTDisconnect }
func (MTUExchangeRequest) Code() EventCode         { return EventMTUExchangeRequest }
func (ReadCharacteristicRequest) Code() EventCode  { return EventReadCharacteristicRequest }
func (e Other) Code() EventCode                    { return e.EventCode }

func (StackOn) isEvent()                    {}
func (Timeout) isEvent()                    {}
func (SetEventMaskComplete) isEvent()       {}
func (SetDeviceAddressComplete) isEvent()   {}
func (SetTxPowerComplete) isEvent()         {}
func (ShutdownComplete) isEvent()           {}
func (DeviceConnected) isEvent()            {}
func (EnhancedConnectionComplete) isEvent() {}
func (DeviceDisconnected) isEvent()         {}
func (AdvertisementStartStop) isEvent()     {}
func (GATTConnect) isEvent()                {}
func (GATTDisconnect) isEvent()             {}
func (MTUExchangeRequest) isEvent()         {}
func (ReadCharacteristicRequest) isEvent()  {}
func (Other) isEvent()                      {}

// AlertEvent is an event scoped to the Immediate Alert Service.
type AlertEvent interface {
	isAlertEvent()
}

// AlertLevelWrite is reported after a central wrote the Alert Level
// characteristic. The new value is in the attribute store, see
// Stack.AlertLevelValue.
type AlertLevelWrite struct{}

// OtherAlertEvent is any Immediate Alert Service event other than a write.
type OtherAlertEvent struct {
	EventCode EventCode
}

func (AlertLevelWrite) isAlertEvent() {}
func (OtherAlertEvent) isAlertEvent() {}
