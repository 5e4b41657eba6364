package leave

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/attendance-backend-go/internal/config"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

// Integration tests; they need a migrated database reachable through
// TEST_DATABASE_URL and are skipped otherwise.
func leaveTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func truncateLeaveTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, `TRUNCATE TABLE leave_requests, leave_balances, leave_types, employees CASCADE`)
	require.NoError(t, err)
}

func seedLeaveEmployee(t *testing.T, ctx context.Context, repo employee.Repository, role employee.Role, managerID *int64) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
		ManagerID:    managerID,
	})
	require.NoError(t, err)
	return emp
}

func newTestLeaveService(db *database.DB, cfg config.LeaveConfig) (leave.Service, employee.Repository, leave.BalanceRepository) {
	employeeRepo := postgresql.NewEmployeeRepository(db)
	typeRepo := postgresql.NewLeaveTypeRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	svc := NewLeaveService(db, cfg, typeRepo, requestRepo, balanceRepo, employeeRepo)
	return svc, employeeRepo, balanceRepo
}

func leaveActor(emp employee.Employee) employee.Actor {
	return employee.Actor{ID: emp.ID, Role: emp.Role}
}

func TestLeaveApprove_BooksBalance(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, balanceRepo := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-09",
		Reason:    "family event",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, request.Status)
	assert.Equal(t, 3, request.DaysRequested())

	approved, err := svc.Approve(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, manager.ID, *approved.ReviewedBy)

	balance, err := balanceRepo.GetByEmployeeAndYear(ctx, worker.ID, time.Now().Year())
	require.NoError(t, err)
	assert.Equal(t, leave.DefaultAnnualDays, balance.TotalDays)
	assert.Equal(t, 3, balance.UsedDays)
	assert.Equal(t, leave.DefaultAnnualDays-3, balance.Remaining)

	// A second approval must not double-book the days.
	_, err = svc.Approve(ctx, leaveActor(manager), request.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	balance, err = balanceRepo.GetByEmployeeAndYear(ctx, worker.ID, time.Now().Year())
	require.NoError(t, err)
	assert.Equal(t, 3, balance.UsedDays)
}

func TestLeaveApprove_BooksApprovalYear(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, balanceRepo := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	// Leave starting next year still charges the year the approval
	// happens in.
	start := time.Now().AddDate(1, 0, 0)
	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: start.Format("2006-01-02"),
		EndDate:   start.AddDate(0, 0, 1).Format("2006-01-02"),
		Reason:    "planned trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)

	thisYear, err := balanceRepo.GetByEmployeeAndYear(ctx, worker.ID, time.Now().Year())
	require.NoError(t, err)
	assert.Equal(t, 2, thisYear.UsedDays)

	nextYear, err := balanceRepo.GetByEmployeeAndYear(ctx, worker.ID, start.Year())
	require.NoError(t, err)
	assert.Equal(t, 0, nextYear.UsedDays)
}

func TestLeaveReview_DeniedForOtherManager(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	otherManager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-07",
		Reason:    "errand",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leaveActor(otherManager), request.ID)
	assert.ErrorIs(t, err, leave.ErrReviewDenied)

	_, err = svc.Reject(ctx, leaveActor(worker), request.ID)
	assert.ErrorIs(t, err, leave.ErrReviewDenied)
}

func TestLeaveReject_AfterApproval(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-08",
		Reason:    "trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)

	// Default policy allows rejecting a request at any status.
	rejected, err := svc.Reject(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
}

func TestLeaveReject_StrictRequiresPending(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{StrictReject: true})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-08",
		Reason:    "trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, leaveActor(manager), request.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveDelete_OnlyPending(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)
	other := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	request, err := svc.Create(ctx, leaveActor(worker), leave.CreateLeaveRequestRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-08",
		Reason:    "trip",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, leaveActor(other), request.ID)
	assert.ErrorIs(t, err, leave.ErrDeleteDenied)

	_, err = svc.Approve(ctx, leaveActor(manager), request.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, leaveActor(worker), request.ID)
	assert.ErrorIs(t, err, leave.ErrDeleteNotPending)
}

func TestLeaveList_VisibilityScopes(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{})

	manager := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	admin := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleAdmin, nil)
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)
	outsider := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	for _, emp := range []employee.Employee{manager, worker, outsider} {
		_, err := svc.Create(ctx, leaveActor(emp), leave.CreateLeaveRequestRequest{
			StartDate: "2026-09-07",
			EndDate:   "2026-09-07",
			Reason:    "errand",
		})
		require.NoError(t, err)
	}

	_, total, err := svc.List(ctx, leaveActor(worker), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.List(ctx, leaveActor(manager), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(ctx, leaveActor(admin), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestLeaveBalance_DefaultWhenMissing(t *testing.T) {
	ctx := context.Background()
	db := leaveTestDB(t)
	truncateLeaveTables(t, ctx, db)

	svc, employeeRepo, _ := newTestLeaveService(db, config.LeaveConfig{})
	worker := seedLeaveEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	balance, err := svc.Balance(ctx, leaveActor(worker), worker.ID, 2026)
	require.NoError(t, err)
	assert.Equal(t, leave.DefaultAnnualDays, balance.TotalDays)
	assert.Equal(t, 0, balance.UsedDays)
	assert.Equal(t, leave.DefaultAnnualDays, balance.Remaining)
}
