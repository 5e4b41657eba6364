package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/peoplecore/attendance-backend-go/internal/config"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

// DefaultLeaveTypeName is assigned when a request does not name a type.
const DefaultLeaveTypeName = "Leave"

type LeaveServiceImpl struct {
	db           *database.DB
	cfg          config.LeaveConfig
	typeRepo     leave.TypeRepository
	requestRepo  leave.RequestRepository
	balanceRepo  leave.BalanceRepository
	employeeRepo employee.Repository
}

func NewLeaveService(
	db *database.DB,
	cfg config.LeaveConfig,
	typeRepo leave.TypeRepository,
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.Repository,
) leave.Service {
	return &LeaveServiceImpl{
		db:           db,
		cfg:          cfg,
		typeRepo:     typeRepo,
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
	}
}

// Create implements leave.Service.
func (s *LeaveServiceImpl) Create(ctx context.Context, actor employee.Actor, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	start, end := req.Dates()

	var typeID int64
	if req.LeaveTypeID != nil {
		lt, err := s.typeRepo.GetByID(ctx, *req.LeaveTypeID)
		if err != nil {
			return leave.LeaveRequest{}, err
		}
		typeID = lt.ID
	} else {
		lt, err := s.typeRepo.GetByName(ctx, DefaultLeaveTypeName)
		if err != nil {
			if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
				return leave.LeaveRequest{}, err
			}
			lt, err = s.typeRepo.Create(ctx, leave.LeaveType{Name: DefaultLeaveTypeName})
			if err != nil {
				return leave.LeaveRequest{}, fmt.Errorf("failed to create default leave type: %w", err)
			}
		}
		typeID = lt.ID
	}

	request := leave.LeaveRequest{
		EmployeeID:  actor.ID,
		LeaveTypeID: typeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return s.requestRepo.GetByID(ctx, created.ID)
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, actor employee.Actor, id int64) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !leave.CanView(actor.Role, actor.ID, request.EmployeeID, ownerManagerID) {
		return leave.LeaveRequest{}, leave.ErrNotVisible
	}

	return request, nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, actor employee.Actor, limit, offset int) ([]leave.LeaveRequest, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	scope, err := s.visibilityScope(ctx, actor)
	if err != nil {
		return nil, 0, err
	}

	return s.requestRepo.List(ctx, leave.ListFilter{
		EmployeeIDs: scope,
		Limit:       limit,
		Offset:      offset,
	})
}

// Approve implements leave.Service.
func (s *LeaveServiceImpl) Approve(ctx context.Context, actor employee.Actor, id int64) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !leave.CanReview(actor.Role, actor.ID, request.EmployeeID, ownerManagerID) {
		return leave.LeaveRequest{}, leave.ErrReviewDenied
	}

	reviewedAt := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ok, err := s.requestRepo.ApprovePending(txCtx, id, actor.ID, reviewedAt)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !ok {
			return leave.ErrAlreadyProcessed
		}

		// Days are booked in the same transaction as the status flip, so
		// a crash never approves without charging the balance. They are
		// charged against the year the approval happens in, not the year
		// the leave starts.
		year := time.Now().Year()
		if err := s.balanceRepo.AddUsedDays(txCtx, request.EmployeeID, year, request.DaysRequested()); err != nil {
			return fmt.Errorf("failed to book leave days: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, id)
}

// Reject implements leave.Service.
func (s *LeaveServiceImpl) Reject(ctx context.Context, actor employee.Actor, id int64) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	ownerManagerID, err := s.ownerManagerID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !leave.CanReview(actor.Role, actor.ID, request.EmployeeID, ownerManagerID) {
		return leave.LeaveRequest{}, leave.ErrReviewDenied
	}

	ok, err := s.requestRepo.Reject(ctx, id, actor.ID, time.Now(), s.cfg.StrictReject)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to reject leave request: %w", err)
	}
	if !ok {
		return leave.LeaveRequest{}, leave.ErrAlreadyProcessed
	}

	return s.requestRepo.GetByID(ctx, id)
}

// Delete implements leave.Service.
func (s *LeaveServiceImpl) Delete(ctx context.Context, actor employee.Actor, id int64) error {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !leave.CanDelete(actor.Role, actor.ID, request.EmployeeID) {
		return leave.ErrDeleteDenied
	}

	ok, err := s.requestRepo.DeletePending(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if !ok {
		return leave.ErrDeleteNotPending
	}
	return nil
}

// Balance implements leave.Service.
func (s *LeaveServiceImpl) Balance(ctx context.Context, actor employee.Actor, employeeID int64, year int) (leave.LeaveBalance, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	ownerManagerID, err := s.ownerManagerID(ctx, employeeID)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	if !leave.CanView(actor.Role, actor.ID, employeeID, ownerManagerID) {
		return leave.LeaveBalance{}, leave.ErrNotVisible
	}

	return s.balanceRepo.GetByEmployeeAndYear(ctx, employeeID, year)
}

// ListTypes implements leave.Service.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.typeRepo.List(ctx)
}

func (s *LeaveServiceImpl) visibilityScope(ctx context.Context, actor employee.Actor) ([]int64, error) {
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

func (s *LeaveServiceImpl) ownerManagerID(ctx context.Context, ownerID int64) (int64, error) {
	owner, err := s.employeeRepo.GetByID(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to get request owner: %w", err)
	}
	if owner.ManagerID == nil {
		return 0, nil
	}
	return *owner.ManagerID, nil
}
