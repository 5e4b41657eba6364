package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/attendance-backend-go/internal/domain/auth"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	db           *database.DB
	employeeRepo employee.Repository
	deptRepo     employee.DepartmentRepository
	balanceRepo  leave.BalanceRepository
	jwtService   jwt.Service
}

func NewAuthService(
	db *database.DB,
	employeeRepo employee.Repository,
	deptRepo employee.DepartmentRepository,
	balanceRepo leave.BalanceRepository,
	jwtService jwt.Service,
) auth.Service {
	return &AuthServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		deptRepo:     deptRepo,
		balanceRepo:  balanceRepo,
		jwtService:   jwtService,
	}
}

// Login implements auth.Service.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, auth.TokenPair, error) {
	emp, err := s.employeeRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, emp)
}

// Refresh implements auth.Service.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, auth.TokenPair, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidToken
	}

	emp, err := s.employeeRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidToken
		}
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Single-use: the presented refresh token dies with the rotation.
	s.jwtService.RevokeToken(refreshToken)

	return s.issueTokens(ctx, emp)
}

// Logout implements auth.Service.
func (s *AuthServiceImpl) Logout(refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}

// ChangePassword implements auth.Service.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, actorID int64, req auth.ChangePasswordRequest) error {
	emp, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.employeeRepo.UpdatePasswordHash(ctx, actorID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Me implements auth.Service.
func (s *AuthServiceImpl) Me(ctx context.Context, actorID int64) (auth.UserPayload, error) {
	emp, err := s.employeeRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.UserPayload{}, auth.ErrUserNotFound
		}
		return auth.UserPayload{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return s.userPayload(ctx, emp)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, emp employee.Employee) (auth.LoginResponse, auth.TokenPair, error) {
	var pair auth.TokenPair
	var err error

	pair.AccessToken, pair.AccessExpiresAt, err = s.jwtService.GenerateAccessToken(emp.ID, emp.Email, emp.Role)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to create access token: %w", err)
	}

	pair.RefreshToken, pair.RefreshExpiresAt, err = s.jwtService.GenerateRefreshToken(emp.ID)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	user, err := s.userPayload(ctx, emp)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, err
	}

	return auth.LoginResponse{User: user, Token: pair.AccessToken}, pair, nil
}

func (s *AuthServiceImpl) userPayload(ctx context.Context, emp employee.Employee) (auth.UserPayload, error) {
	payload := auth.UserPayload{
		ID:     fmt.Sprintf("%d", emp.ID),
		Name:   emp.FullName(),
		Email:  emp.Email,
		Role:   string(emp.Role),
		Status: "active",
	}

	if emp.DepartmentID != nil {
		departments, err := s.deptRepo.List(ctx)
		if err != nil {
			return auth.UserPayload{}, fmt.Errorf("failed to list departments: %w", err)
		}
		for _, dept := range departments {
			if dept.ID == *emp.DepartmentID {
				payload.Department = dept.Name
				break
			}
		}
	}

	balance, err := s.balanceRepo.GetByEmployeeAndYear(ctx, emp.ID, time.Now().Year())
	if err != nil {
		return auth.UserPayload{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	payload.LeaveBalance = balance.Remaining

	return payload, nil
}
