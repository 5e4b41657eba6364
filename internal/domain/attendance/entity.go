package attendance

import "time"

// ApprovalStatus is the three-stage review marker on an attendance record.
type ApprovalStatus string

const (
	StatusPendingManager ApprovalStatus = "Pending_Manager"
	StatusPendingAdmin   ApprovalStatus = "Pending_Admin"
	StatusApproved       ApprovalStatus = "Approved"
)

// EntryType marks a log entry as a check-in or a check-out.
type EntryType string

const (
	EntryIn  EntryType = "in"
	EntryOut EntryType = "out"
)

// AttendanceRecord holds one employee's attendance for one calendar date.
// At most one record exists per (employee, date).
type AttendanceRecord struct {
	ID             int64
	EmployeeID     int64
	Date           time.Time
	CheckInTime    *time.Time
	CheckOutTime   *time.Time
	Status         string // free-text label, defaults to "Present"
	ApprovalStatus ApprovalStatus
	IsConfirmed    bool
	ConfirmedAt    *time.Time

	// DTO / join fields
	EmployeeName *string
	EntriesCount int64
}

// AttendanceEntry is a single check-in/check-out log line owned by one
// attendance record. Entries are listed timestamp ascending.
type AttendanceEntry struct {
	ID                 int64
	AttendanceRecordID int64
	EntryType          EntryType
	Timestamp          time.Time
	Reason             *string
}
