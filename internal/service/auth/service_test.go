package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/attendance-backend-go/internal/domain/auth"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/jwt"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

// Integration tests; they need a migrated database reachable through
// TEST_DATABASE_URL and are skipped otherwise.
func authTestDB(t *testing.T) *database.DB {
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

func truncateAuthTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	_, err := db.Exec(ctx, `TRUNCATE TABLE leave_balances, employees, departments CASCADE`)
	require.NoError(t, err)
}

func newTestAuthService(db *database.DB) (auth.Service, employee.Repository, jwt.Service) {
	employeeRepo := postgresql.NewEmployeeRepository(db)
	deptRepo := postgresql.NewDepartmentRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(db, employeeRepo, deptRepo, balanceRepo, jwtService), employeeRepo, jwtService
}

func seedAuthEmployee(t *testing.T, ctx context.Context, repo employee.Repository, password string) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	emp, err := repo.Create(ctx, employee.Employee{
		FirstName:    "Login",
		LastName:     "Tester",
		Email:        fmt.Sprintf("login-%d@example.com", time.Now().UnixNano()),
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
	})
	require.NoError(t, err)
	return emp
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	db := authTestDB(t)
	truncateAuthTables(t, ctx, db)

	svc, employeeRepo, jwtService := newTestAuthService(db)
	emp := seedAuthEmployee(t, ctx, employeeRepo, "password123")

	resp, pair, err := svc.Login(ctx, auth.LoginRequest{Email: emp.Email, Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "Login Tester", resp.User.Name)
	assert.Equal(t, emp.Email, resp.User.Email)
	assert.Equal(t, "employee", resp.User.Role)
	assert.Equal(t, leave.DefaultAnnualDays, resp.User.LeaveBalance)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, pair.RefreshToken)

	token, err := jwtService.JWTAuth().Decode(resp.Token)
	require.NoError(t, err)
	userID, _ := token.Get("user_id")
	assert.Equal(t, fmt.Sprintf("%d", emp.ID), userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	db := authTestDB(t)
	truncateAuthTables(t, ctx, db)

	svc, employeeRepo, _ := newTestAuthService(db)
	emp := seedAuthEmployee(t, ctx, employeeRepo, "password123")

	_, _, err := svc.Login(ctx, auth.LoginRequest{Email: emp.Email, Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	db := authTestDB(t)
	truncateAuthTables(t, ctx, db)

	svc, _, _ := newTestAuthService(db)

	_, _, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	db := authTestDB(t)
	truncateAuthTables(t, ctx, db)

	svc, employeeRepo, _ := newTestAuthService(db)
	emp := seedAuthEmployee(t, ctx, employeeRepo, "password123")

	_, pair, err := svc.Login(ctx, auth.LoginRequest{Email: emp.Email, Password: "password123"})
	require.NoError(t, err)

	resp, newPair, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, emp.Email, resp.User.Email)
	assert.NotEmpty(t, newPair.RefreshToken)

	// The old refresh token was revoked by the rotation.
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	db := authTestDB(t)
	truncateAuthTables(t, ctx, db)

	svc, employeeRepo, _ := newTestAuthService(db)
	emp := seedAuthEmployee(t, ctx, employeeRepo, "password123")

	err := svc.ChangePassword(ctx, emp.ID, auth.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)

	err = svc.ChangePassword(ctx, emp.ID, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, auth.LoginRequest{Email: emp.Email, Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, auth.LoginRequest{Email: emp.Email, Password: "newpassword"})
	assert.NoError(t, err)
}
