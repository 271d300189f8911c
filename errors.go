package findme

import "errors"

// ErrHibernated is returned by Coordinator.Process once the device entered
// hibernate. On hardware that call never returns; on hosts and in tests the
// coordinator stays in this state until it is recreated.
var ErrHibernated = errors.New("findme: hibernated")

// StackError is a result code of a Stack API call.
type StackError uint16

const (
	StackErrorInvalidParameter StackError = 0x0001 + iota
	StackErrorInvalidOperation
	StackErrorMemoryAllocation
	StackErrorInsufficientResources
	StackErrorInvalidState
	StackErrorConnectionLimit
	StackErrorNotEnabled
)

func (e StackError) Error() string {
	switch e {
	case StackErrorInvalidParameter:
		return "invalid parameter"
	case StackErrorInvalidOperation:
		return "invalid operation"
	case StackErrorMemoryAllocation:
		return "memory allocation failed"
	case StackErrorInsufficientResources:
		return "not enough resources for operation"
	case StackErrorInvalidState:
		return "invalid state, operation disallowed in this state"
	case StackErrorConnectionLimit:
		return "maximum connection count exceeded"
	case StackErrorNotEnabled:
		return "stack has not been enabled"
	default:
		return "other stack error"
	}
}
