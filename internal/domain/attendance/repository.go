package attendance

import (
	"context"
	"time"
)

// ListFilter narrows a record listing. A nil EmployeeIDs means no
// ownership restriction (admin scope); an empty, non-nil slice matches
// nothing.
type ListFilter struct {
	EmployeeIDs []int64
	EmployeeID  *int64
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	Order       string
	Limit       int
	Offset      int
}

// RecordRepository - interface for the attendance_records table
type RecordRepository interface {
	// UpsertClockIn creates the record for (employeeID, date) or, when it
	// already exists, leaves the first check-in time in place. The unique
	// constraint makes concurrent clock-ins converge on one row.
	UpsertClockIn(ctx context.Context, employeeID int64, date time.Time, checkIn time.Time, status string, initial ApprovalStatus) (AttendanceRecord, error)
	GetByID(ctx context.Context, id int64) (AttendanceRecord, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceRecord, int64, error)
	SetCheckOut(ctx context.Context, id int64, checkOut time.Time) error
	SetStatusLabel(ctx context.Context, id int64, status string) error
	// Confirm flips is_confirmed and moves the record to Pending_Manager,
	// but only while unconfirmed. Returns false when the guard failed.
	Confirm(ctx context.Context, id int64, confirmedAt time.Time) (bool, error)
	// TransitionApproval moves approval_status from one stage to another
	// in a single conditional update. Returns false when the record was
	// not in the expected stage.
	TransitionApproval(ctx context.Context, id int64, from, to ApprovalStatus) (bool, error)
	// Approve sets approval_status to Approved regardless of stage.
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CountToday(ctx context.Context, date time.Time) (int64, error)
}

// EntryRepository - interface for the attendance_entries table
type EntryRepository interface {
	Create(ctx context.Context, entry AttendanceEntry) (AttendanceEntry, error)
	ListByRecord(ctx context.Context, recordID int64) ([]AttendanceEntry, error)
	CountByRecord(ctx context.Context, recordID int64) (int64, error)
	Delete(ctx context.Context, recordID, entryID int64) error
}
