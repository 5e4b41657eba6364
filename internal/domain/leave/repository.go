package leave

import (
	"context"
	"time"
)

// TypeRepository - interface for the leave_types table
type TypeRepository interface {
	Create(ctx context.Context, lt LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id int64) (LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// RequestRepository - interface for the leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	// ApprovePending flips a pending request to approved in one
	// conditional update; false means the request was not pending.
	ApprovePending(ctx context.Context, id, reviewerID int64, reviewedAt time.Time) (bool, error)
	// Reject marks the request rejected. With requirePending it behaves
	// like ApprovePending; otherwise it rejects at any status.
	Reject(ctx context.Context, id, reviewerID int64, reviewedAt time.Time, requirePending bool) (bool, error)
	// DeletePending removes the request only while it is still pending;
	// false means the status guard failed.
	DeletePending(ctx context.Context, id int64) (bool, error)
	CountPending(ctx context.Context) (int64, error)
}

// BalanceRepository - interface for the leave_balances table
type BalanceRepository interface {
	GetByEmployeeAndYear(ctx context.Context, employeeID int64, year int) (LeaveBalance, error)
	// AddUsedDays books days against the employee/year balance in one
	// atomic upsert, creating the row with the default allowance when it
	// does not exist yet. remaining is recomputed as total - used.
	AddUsedDays(ctx context.Context, employeeID int64, year, days int) error
}
