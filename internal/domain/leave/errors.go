package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrAlreadyProcessed     = errors.New("leave request is not pending")
	ErrReviewDenied         = errors.New("only admin or the requester's direct manager can review")
	ErrDeleteDenied         = errors.New("cannot delete others' leave requests")
	ErrDeleteNotPending     = errors.New("can only delete pending leave requests")
	ErrNotVisible           = errors.New("not authorized to view this leave request")
)
