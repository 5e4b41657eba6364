package attendance

import "errors"

// Attendance domain errors
var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrEntryNotFound     = errors.New("attendance entry not found")
	ErrAlreadyConfirmed  = errors.New("attendance already confirmed")
	ErrNothingToConfirm  = errors.New("no attendance entries to confirm")
	ErrNotPendingManager = errors.New("attendance record is not pending manager approval")
	ErrNotRecordOwner    = errors.New("you can only modify your own attendance")
	ErrNotDirectManager  = errors.New("you can only verify attendance for your direct reports")
	ErrNotVisible        = errors.New("not authorized to view this attendance record")
	ErrEntryDeleteDenied = errors.New("only admin or manager can delete attendance entries")
	ErrDeleteDenied      = errors.New("only admin can delete attendance records")
)
