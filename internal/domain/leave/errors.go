package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrLeaveTypeNotSelectable       = errors.New("leave type not selectable for this employee")
	ErrInvalidLeaveType             = errors.New("invalid leave type")
)
