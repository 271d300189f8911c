package findme

import "strconv"

// AlertLevel is the value of the Alert Level characteristic (0x2A06).
//
// Values outside the three defined levels can be written by a misbehaving
// central. They are kept as-is: Valid reports whether the level is one of the
// defined ones, and the indicator refresh leaves the alert indicator alone for
// anything else.
type AlertLevel uint8

const (
	AlertNone AlertLevel = iota
	AlertMild
	AlertHigh
)

// Valid returns true if the alert level is one of the levels defined by the
// Immediate Alert Service.
func (l AlertLevel) Valid() bool {
	return l <= AlertHigh
}

func (l AlertLevel) String() string {
	switch l {
	case AlertNone:
		return "none"
	case AlertMild:
		return "mild"
	case AlertHigh:
		return "high"
	default:
		return "AlertLevel(" + strconv.Itoa(int(l)) + ")"
	}
}
