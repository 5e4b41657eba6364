package attendance

import (
	"context"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
)

// Service runs the attendance workflow. Every operation takes the
// authenticated actor; ownership and role checks happen here, state
// guards happen in the same transaction as the write.
type Service interface {
	// Mark clocks the actor in for today, creating the day's record on
	// first call and keeping the first check-in on repeats.
	Mark(ctx context.Context, actor employee.Actor, req MarkAttendanceRequest) (AttendanceRecord, error)
	Update(ctx context.Context, actor employee.Actor, id int64, req UpdateAttendanceRequest) (AttendanceRecord, error)
	Get(ctx context.Context, actor employee.Actor, id int64) (AttendanceRecord, []AttendanceEntry, error)
	List(ctx context.Context, actor employee.Actor, q ListQuery) ([]AttendanceRecord, int64, error)
	Delete(ctx context.Context, actor employee.Actor, id int64) error

	// Confirm locks the actor's own day and submits it for review.
	Confirm(ctx context.Context, actor employee.Actor, id int64) (AttendanceRecord, error)
	// ManagerVerify moves a direct report's confirmed day to the admin stage.
	ManagerVerify(ctx context.Context, actor employee.Actor, id int64) (AttendanceRecord, error)
	// AdminApprove finalizes a record from any stage.
	AdminApprove(ctx context.Context, actor employee.Actor, id int64) (AttendanceRecord, error)

	AddEntry(ctx context.Context, actor employee.Actor, recordID int64, req CreateEntryRequest) (AttendanceEntry, error)
	ListEntries(ctx context.Context, actor employee.Actor, recordID int64) ([]AttendanceEntry, error)
	DeleteEntry(ctx context.Context, actor employee.Actor, recordID, entryID int64) error
}
