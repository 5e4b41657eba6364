package leave

import "time"

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// DefaultAnnualDays is the leave allowance granted when no balance row
// exists for an employee/year yet.
const DefaultAnnualDays = 17

type LeaveType struct {
	ID   int64
	Name string
}

// LeaveRequest entity
type LeaveRequest struct {
	ID          int64
	EmployeeID  int64
	LeaveTypeID int64

	StartDate time.Time
	EndDate   time.Time

	Reason string

	Status     LeaveStatus
	AppliedAt  time.Time
	ReviewedBy *int64
	ReviewedAt *time.Time

	// DTO / join fields
	EmployeeName  *string
	LeaveTypeName *string
}

// DaysRequested returns the inclusive length of the request in whole
// calendar days (start == end counts as 1).
func (lr *LeaveRequest) DaysRequested() int {
	return DaysBetweenInclusive(lr.StartDate, lr.EndDate)
}

// DaysBetweenInclusive counts whole calendar days from start through end,
// both ends included.
func DaysBetweenInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// LeaveBalance tracks an employee's leave-day counters for one year.
// remaining is always total - used.
type LeaveBalance struct {
	ID         int64
	EmployeeID int64
	Year       int
	TotalDays  int
	UsedDays   int
	Remaining  int
}

// NewDefaultBalance returns the lazily-created balance for an
// employee/year that has no row yet.
func NewDefaultBalance(employeeID int64, year int) LeaveBalance {
	return LeaveBalance{
		EmployeeID: employeeID,
		Year:       year,
		TotalDays:  DefaultAnnualDays,
		UsedDays:   0,
		Remaining:  DefaultAnnualDays,
	}
}

// Apply books days against the balance and recomputes the remainder.
func (b *LeaveBalance) Apply(days int) {
	b.UsedDays += days
	b.Remaining = b.TotalDays - b.UsedDays
}
