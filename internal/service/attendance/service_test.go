package attendance

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

// Integration tests; they need a migrated database reachable through
// TEST_DATABASE_URL and are skipped otherwise.
func attendanceTestDB(t *testing.T) *database.DB {
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

func truncateAttendanceTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, `TRUNCATE TABLE attendance_entries, attendance_records, employees CASCADE`)
	require.NoError(t, err)
}

func seedEmployee(t *testing.T, ctx context.Context, repo employee.Repository, role employee.Role, managerID *int64) employee.Employee {
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

func newTestAttendanceService(db *database.DB) (attendance.Service, employee.Repository) {
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	entryRepo := postgresql.NewAttendanceEntryRepository(db)
	return NewAttendanceService(db, recordRepo, entryRepo, employeeRepo), employeeRepo
}

func actorFor(emp employee.Employee) employee.Actor {
	return employee.Actor{ID: emp.ID, Role: emp.Role}
}

func TestAttendanceWorkflow_FullApproval(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)

	manager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	admin := seedEmployee(t, ctx, employeeRepo, employee.RoleAdmin, nil)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:30"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPendingManager, rec.ApprovalStatus)
	require.NotNil(t, rec.CheckInTime)
	assert.False(t, rec.IsConfirmed)

	confirmed, err := svc.Confirm(ctx, actorFor(worker), rec.ID)
	require.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed)
	assert.Equal(t, attendance.StatusPendingManager, confirmed.ApprovalStatus)

	verified, err := svc.ManagerVerify(ctx, actorFor(manager), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPendingAdmin, verified.ApprovalStatus)

	approved, err := svc.AdminApprove(ctx, actorFor(admin), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusApproved, approved.ApprovalStatus)
}

func TestAttendanceMark_KeepsFirstCheckIn(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	first, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)

	second, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "09:30"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CheckInTime)
	assert.Equal(t, 8, second.CheckInTime.Hour())
	assert.Equal(t, 0, second.CheckInTime.Minute())
}

func TestAttendanceConfirm_SecondConfirmConflicts(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actorFor(worker), rec.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actorFor(worker), rec.ID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyConfirmed)
}

func TestAttendanceConfirm_RequiresCheckInOrEntries(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	// A bare record with neither check-in nor entries.
	var recordID int64
	err := db.QueryRow(ctx, `
		INSERT INTO attendance_records (employee_id, date, status, approval_status)
		VALUES ($1, $2, 'Present', 'Pending_Manager')
		RETURNING id
	`, worker.ID, time.Now().UTC().Truncate(24*time.Hour)).Scan(&recordID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, actorFor(worker), recordID)
	assert.ErrorIs(t, err, attendance.ErrNothingToConfirm)
}

func TestManagerVerify_OnlyDirectManager(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)

	manager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	otherManager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, actorFor(worker), rec.ID)
	require.NoError(t, err)

	_, err = svc.ManagerVerify(ctx, actorFor(otherManager), rec.ID)
	assert.ErrorIs(t, err, attendance.ErrNotDirectManager)

	_, err = svc.ManagerVerify(ctx, actorFor(manager), rec.ID)
	assert.NoError(t, err)

	// The record left Pending_Manager, so verifying again conflicts.
	_, err = svc.ManagerVerify(ctx, actorFor(manager), rec.ID)
	assert.ErrorIs(t, err, attendance.ErrNotPendingManager)
}

func TestManagerRecord_StartsPendingAdmin(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)
	manager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)

	rec, err := svc.Mark(ctx, actorFor(manager), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPendingAdmin, rec.ApprovalStatus)
}

func TestAttendanceList_VisibilityScopes(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)

	manager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	admin := seedEmployee(t, ctx, employeeRepo, employee.RoleAdmin, nil)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)
	outsider := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	for _, emp := range []employee.Employee{manager, worker, outsider} {
		_, err := svc.Mark(ctx, actorFor(emp), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
		require.NoError(t, err)
	}

	query := attendance.ListQuery{Page: 1, Limit: 100, Order: "desc"}

	records, total, err := svc.List(ctx, actorFor(worker), query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, worker.ID, records[0].EmployeeID)

	_, total, err = svc.List(ctx, actorFor(manager), query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, total, err = svc.List(ctx, actorFor(admin), query)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestAttendanceDelete_AdminOnly(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)

	admin := seedEmployee(t, ctx, employeeRepo, employee.RoleAdmin, nil)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)

	err = svc.Delete(ctx, actorFor(worker), rec.ID)
	assert.ErrorIs(t, err, attendance.ErrDeleteDenied)

	err = svc.Delete(ctx, actorFor(admin), rec.ID)
	require.NoError(t, err)

	_, _, err = svc.Get(ctx, actorFor(admin), rec.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestAddEntry_ManagersAndAdminsMayAppend(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)

	manager := seedEmployee(t, ctx, employeeRepo, employee.RoleManager, nil)
	admin := seedEmployee(t, ctx, employeeRepo, employee.RoleAdmin, nil)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)
	peer := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, &manager.ID)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)

	_, err = svc.AddEntry(ctx, actorFor(manager), rec.ID, attendance.CreateEntryRequest{EntryType: "in"})
	assert.NoError(t, err)

	_, err = svc.AddEntry(ctx, actorFor(admin), rec.ID, attendance.CreateEntryRequest{EntryType: "out"})
	assert.NoError(t, err)

	// A plain employee can only log entries on their own record.
	_, err = svc.AddEntry(ctx, actorFor(peer), rec.ID, attendance.CreateEntryRequest{EntryType: "in"})
	assert.ErrorIs(t, err, attendance.ErrNotRecordOwner)
}

func TestAddEntry_OutMovesCheckOut(t *testing.T) {
	ctx := context.Background()
	db := attendanceTestDB(t)
	truncateAttendanceTables(t, ctx, db)

	svc, employeeRepo := newTestAttendanceService(db)
	worker := seedEmployee(t, ctx, employeeRepo, employee.RoleEmployee, nil)

	rec, err := svc.Mark(ctx, actorFor(worker), attendance.MarkAttendanceRequest{ClockIn: "08:00"})
	require.NoError(t, err)

	entry, err := svc.AddEntry(ctx, actorFor(worker), rec.ID, attendance.CreateEntryRequest{EntryType: "out"})
	require.NoError(t, err)
	assert.Equal(t, attendance.EntryOut, entry.EntryType)

	updated, entries, err := svc.Get(ctx, actorFor(worker), rec.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOutTime)
	require.Len(t, entries, 1)
}
