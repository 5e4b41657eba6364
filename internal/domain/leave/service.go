package leave

import (
	"context"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
)

type Service interface {
	Create(ctx context.Context, actor employee.Actor, req CreateLeaveRequestRequest) (LeaveRequest, error)
	Get(ctx context.Context, actor employee.Actor, id int64) (LeaveRequest, error)
	List(ctx context.Context, actor employee.Actor, limit, offset int) ([]LeaveRequest, int64, error)
	// Approve books the requested days against the owner's balance in the
	// same transaction that flips the status.
	Approve(ctx context.Context, actor employee.Actor, id int64) (LeaveRequest, error)
	Reject(ctx context.Context, actor employee.Actor, id int64) (LeaveRequest, error)
	Delete(ctx context.Context, actor employee.Actor, id int64) error

	Balance(ctx context.Context, actor employee.Actor, employeeID int64, year int) (LeaveBalance, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
}
