package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/validator"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

const defaultStatusLabel = "Present"

type AttendanceServiceImpl struct {
	db           *database.DB
	recordRepo   attendance.RecordRepository
	entryRepo    attendance.EntryRepository
	employeeRepo employee.Repository
}

func NewAttendanceService(
	db *database.DB,
	recordRepo attendance.RecordRepository,
	entryRepo attendance.EntryRepository,
	employeeRepo employee.Repository,
) attendance.Service {
	return &AttendanceServiceImpl{
		db:           db,
		recordRepo:   recordRepo,
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
	}
}

// Mark implements attendance.Service.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, actor employee.Actor, req attendance.MarkAttendanceRequest) (attendance.AttendanceRecord, error) {
	now := time.Now()
	today := dateOnly(now)

	clockIn, _ := validator.IsValidClockTime(req.ClockIn)
	checkIn := atClock(today, clockIn)

	status := req.Status
	if validator.IsEmpty(status) {
		status = defaultStatusLabel
	}

	var record attendance.AttendanceRecord
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		rec, err := s.recordRepo.UpsertClockIn(txCtx, actor.ID, today, checkIn, status, attendance.InitialApprovalStatus(actor.Role))
		if err != nil {
			return fmt.Errorf("failed to upsert attendance record: %w", err)
		}

		if req.ClockOut != nil {
			clockOut, _ := validator.IsValidClockTime(*req.ClockOut)
			checkOut := atClock(today, clockOut)
			if err := s.recordRepo.SetCheckOut(txCtx, rec.ID, checkOut); err != nil {
				return fmt.Errorf("failed to set check-out: %w", err)
			}
			rec.CheckOutTime = &checkOut
		}

		record = rec
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return record, nil
}

// Update implements attendance.Service.
func (s *AttendanceServiceImpl) Update(ctx context.Context, actor employee.Actor, id int64, req attendance.UpdateAttendanceRequest) (attendance.AttendanceRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if actor.ID != rec.EmployeeID && actor.Role != employee.RoleAdmin {
		return attendance.AttendanceRecord{}, attendance.ErrNotRecordOwner
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if req.ClockOut != nil {
			clockOut, _ := validator.IsValidClockTime(*req.ClockOut)
			checkOut := atClock(dateOnly(rec.Date), clockOut)
			if err := s.recordRepo.SetCheckOut(txCtx, id, checkOut); err != nil {
				return err
			}
			rec.CheckOutTime = &checkOut
		}
		if req.Status != nil {
			if err := s.recordRepo.SetStatusLabel(txCtx, id, *req.Status); err != nil {
				return err
			}
			rec.Status = *req.Status
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return rec, nil
}

// Get implements attendance.Service.
func (s *AttendanceServiceImpl) Get(ctx context.Context, actor employee.Actor, id int64) (attendance.AttendanceRecord, []attendance.AttendanceEntry, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceRecord{}, nil, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, rec.EmployeeID)
	if err != nil {
		return attendance.AttendanceRecord{}, nil, err
	}
	if !attendance.CanView(actor.Role, actor.ID, rec.EmployeeID, ownerManagerID) {
		return attendance.AttendanceRecord{}, nil, attendance.ErrNotVisible
	}

	entries, err := s.entryRepo.ListByRecord(ctx, id)
	if err != nil {
		return attendance.AttendanceRecord{}, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return rec, entries, nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, actor employee.Actor, q attendance.ListQuery) ([]attendance.AttendanceRecord, int64, error) {
	scope, err := s.visibilityScope(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	filter := attendance.ListFilter{
		EmployeeIDs: scope,
		EmployeeID:  q.EmployeeID,
		StartDate:   q.StartDate,
		EndDate:     q.EndDate,
		SortBy:      q.SortBy,
		Order:       q.Order,
		Limit:       q.Limit,
		Offset:      (q.Page - 1) * q.Limit,
	}

	return s.recordRepo.List(ctx, filter)
}

// Delete implements attendance.Service.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, actor employee.Actor, id int64) error {
	if actor.Role != employee.RoleAdmin {
		return attendance.ErrDeleteDenied
	}
	return s.recordRepo.Delete(ctx, id)
}

// Confirm implements attendance.Service.
func (s *AttendanceServiceImpl) Confirm(ctx context.Context, actor employee.Actor, id int64) (attendance.AttendanceRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if !attendance.CanTransition(actor.Role, actor.ID, rec.EmployeeID, 0, attendance.TransitionConfirm) {
		return attendance.AttendanceRecord{}, attendance.ErrNotRecordOwner
	}
	if rec.IsConfirmed {
		return attendance.AttendanceRecord{}, attendance.ErrAlreadyConfirmed
	}
	if rec.CheckInTime == nil && rec.EntriesCount == 0 {
		return attendance.AttendanceRecord{}, attendance.ErrNothingToConfirm
	}

	confirmedAt := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ok, err := s.recordRepo.Confirm(txCtx, id, confirmedAt)
		if err != nil {
			return fmt.Errorf("failed to confirm record: %w", err)
		}
		if !ok {
			// Lost the race against another confirm.
			return attendance.ErrAlreadyConfirmed
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return s.recordRepo.GetByID(ctx, id)
}

// ManagerVerify implements attendance.Service.
func (s *AttendanceServiceImpl) ManagerVerify(ctx context.Context, actor employee.Actor, id int64) (attendance.AttendanceRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, rec.EmployeeID)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	if !attendance.CanTransition(actor.Role, actor.ID, rec.EmployeeID, ownerManagerID, attendance.TransitionManagerVerify) {
		return attendance.AttendanceRecord{}, attendance.ErrNotDirectManager
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ok, err := s.recordRepo.TransitionApproval(txCtx, id, attendance.StatusPendingManager, attendance.StatusPendingAdmin)
		if err != nil {
			return fmt.Errorf("failed to verify record: %w", err)
		}
		if !ok {
			return attendance.ErrNotPendingManager
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return s.recordRepo.GetByID(ctx, id)
}

// AdminApprove implements attendance.Service.
func (s *AttendanceServiceImpl) AdminApprove(ctx context.Context, actor employee.Actor, id int64) (attendance.AttendanceRecord, error) {
	if !attendance.CanTransition(actor.Role, actor.ID, 0, 0, attendance.TransitionAdminApprove) {
		return attendance.AttendanceRecord{}, employee.ErrNotAllowed
	}

	if err := s.recordRepo.Approve(ctx, id); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	return s.recordRepo.GetByID(ctx, id)
}

// AddEntry implements attendance.Service.
func (s *AttendanceServiceImpl) AddEntry(ctx context.Context, actor employee.Actor, recordID int64, req attendance.CreateEntryRequest) (attendance.AttendanceEntry, error) {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return attendance.AttendanceEntry{}, err
	}

	// Owners log their own entries; managers and admins may append to
	// any record when correcting a day on someone's behalf.
	if actor.Role == employee.RoleEmployee && actor.ID != rec.EmployeeID {
		return attendance.AttendanceEntry{}, attendance.ErrNotRecordOwner
	}

	now := time.Now()
	entry := attendance.AttendanceEntry{
		AttendanceRecordID: recordID,
		EntryType:          attendance.EntryType(req.EntryType),
		Timestamp:          now,
		Reason:             req.Reason,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.entryRepo.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}
		entry = created

		// An out entry moves the day's check-out forward; the latest one
		// wins. An in entry backfills a missing check-in.
		switch entry.EntryType {
		case attendance.EntryOut:
			if err := s.recordRepo.SetCheckOut(txCtx, recordID, now); err != nil {
				return fmt.Errorf("failed to update check-out: %w", err)
			}
		case attendance.EntryIn:
			if rec.CheckInTime == nil {
				if _, err := s.recordRepo.UpsertClockIn(txCtx, rec.EmployeeID, dateOnly(rec.Date), now, rec.Status, rec.ApprovalStatus); err != nil {
					return fmt.Errorf("failed to update check-in: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceEntry{}, err
	}

	return entry, nil
}

// ListEntries implements attendance.Service.
func (s *AttendanceServiceImpl) ListEntries(ctx context.Context, actor employee.Actor, recordID int64) ([]attendance.AttendanceEntry, error) {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, rec.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !attendance.CanView(actor.Role, actor.ID, rec.EmployeeID, ownerManagerID) {
		return nil, attendance.ErrNotVisible
	}

	return s.entryRepo.ListByRecord(ctx, recordID)
}

// DeleteEntry implements attendance.Service.
func (s *AttendanceServiceImpl) DeleteEntry(ctx context.Context, actor employee.Actor, recordID, entryID int64) error {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, rec.EmployeeID)
	if err != nil {
		return err
	}

	allowed := actor.Role == employee.RoleAdmin ||
		(actor.Role == employee.RoleManager && ownerManagerID != 0 && actor.ID == ownerManagerID)
	if !allowed {
		return attendance.ErrEntryDeleteDenied
	}

	return s.entryRepo.Delete(ctx, recordID, entryID)
}

// visibilityScope returns the employee IDs the actor may list, or nil
// for an unrestricted (admin) scope.
func (s *AttendanceServiceImpl) visibilityScope(ctx context.Context, actor employee.Actor) ([]int64, error) {
	switch actor.Role {
	case employee.RoleAdmin:
		return nil, nil
	case employee.RoleManager:
		reports, err := s.employeeRepo.ListDirectReportIDs(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list direct reports: %w", err)
		}
		return append(reports, actor.ID), nil
	default:
		return []int64{actor.ID}, nil
	}
}

func (s *AttendanceServiceImpl) ownerManagerID(ctx context.Context, ownerID int64) (int64, error) {
	owner, err := s.employeeRepo.GetByID(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get record owner: %w", err)
	}
	if owner.ManagerID == nil {
		return 0, nil
	}
	return *owner.ManagerID, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atClock(date time.Time, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}
