package employee

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

// Integration tests; they need a migrated database reachable through
// TEST_DATABASE_URL and are skipped otherwise.
func employeeTestDB(t *testing.T) *database.DB {
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

func truncateEmployeeTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, `TRUNCATE TABLE employees, departments CASCADE`)
	require.NoError(t, err)
}

// sentEmail records one SendOnboarding call.
type sentEmail struct {
	personalEmail string
	password      string
}

type captureEmailService struct {
	sent []sentEmail
}

func (c *captureEmailService) SendOnboarding(personalEmail, employeeName, companyEmail, tempPassword string) error {
	c.sent = append(c.sent, sentEmail{personalEmail: personalEmail, password: tempPassword})
	return nil
}

func newTestEmployeeService(db *database.DB) (employee.Service, employee.Repository, *captureEmailService) {
	employeeRepo := postgresql.NewEmployeeRepository(db)
	deptRepo := postgresql.NewDepartmentRepository(db)
	emails := &captureEmailService{}
	return NewEmployeeService(db, employeeRepo, deptRepo, emails), employeeRepo, emails
}

func seedDirectoryEmployee(t *testing.T, ctx context.Context, repo employee.Repository, role employee.Role) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         role,
	})
	require.NoError(t, err)
	return emp
}

func directoryActor(emp employee.Employee) employee.Actor {
	return employee.Actor{ID: emp.ID, Role: emp.Role}
}

func TestEmployeeUpdate_AdminOrSelf(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	truncateEmployeeTables(t, ctx, db)

	svc, employeeRepo, _ := newTestEmployeeService(db)

	admin := seedDirectoryEmployee(t, ctx, employeeRepo, employee.RoleAdmin)
	worker := seedDirectoryEmployee(t, ctx, employeeRepo, employee.RoleEmployee)
	other := seedDirectoryEmployee(t, ctx, employeeRepo, employee.RoleEmployee)

	phone := "555-0100"
	updated, err := svc.Update(ctx, directoryActor(worker), worker.ID, employee.UpdateEmployeeRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	// Another employee cannot touch the profile.
	_, err = svc.Update(ctx, directoryActor(other), worker.ID, employee.UpdateEmployeeRequest{Phone: &phone})
	assert.ErrorIs(t, err, employee.ErrNotAllowed)

	designation := "Engineer"
	updated, err = svc.Update(ctx, directoryActor(admin), worker.ID, employee.UpdateEmployeeRequest{Designation: &designation})
	require.NoError(t, err)
	assert.Equal(t, designation, updated.Designation)
}

func TestEmployeeCreate_MailsSuppliedPassword(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	truncateEmployeeTables(t, ctx, db)

	svc, _, emails := newTestEmployeeService(db)

	personal := "newhire@personal.example.com"
	result, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name:          "New Hire",
		Email:         "newhire@company.com",
		PersonalEmail: &personal,
		Password:      "chosen-by-admin",
		Role:          "employee",
	})
	require.NoError(t, err)

	assert.True(t, result.EmailSent)
	assert.Empty(t, result.TempPassword)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, personal, emails.sent[0].personalEmail)
	assert.Equal(t, "chosen-by-admin", emails.sent[0].password)
}

func TestEmployeeCreate_GeneratesTempPassword(t *testing.T) {
	ctx := context.Background()
	db := employeeTestDB(t)
	truncateEmployeeTables(t, ctx, db)

	svc, _, emails := newTestEmployeeService(db)

	personal := "nopass@personal.example.com"
	result, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name:          "No Password",
		Email:         "nopass@company.com",
		PersonalEmail: &personal,
		Role:          "employee",
	})
	require.NoError(t, err)

	assert.True(t, result.EmailSent)
	require.NotEmpty(t, result.TempPassword)
	require.Len(t, emails.sent, 1)
	assert.Equal(t, result.TempPassword, emails.sent[0].password)
}
