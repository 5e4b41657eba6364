package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/database"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/email"
	"github.com/peoplecore/attendance-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.Repository
	deptRepo     employee.DepartmentRepository
	emailService email.EmailService
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.Repository,
	deptRepo employee.DepartmentRepository,
	emailService email.EmailService,
) employee.Service {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		deptRepo:     deptRepo,
		emailService: emailService,
	}
}

// Create implements employee.Service.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.CreateResult, error) {
	var result employee.CreateResult

	password := req.Password
	if password == "" {
		result.TempPassword = uuid.NewString()[:12]
		password = result.TempPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return employee.CreateResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	first, last := req.SplitName()
	emp := employee.Employee{
		FirstName:    first,
		LastName:     last,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         employee.Role(strings.ToLower(req.Role)),
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Designation != nil {
		emp.Designation = *req.Designation
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if req.Department != nil && *req.Department != "" {
			dept, err := s.deptRepo.GetByName(txCtx, *req.Department)
			if err != nil {
				if !errors.Is(err, employee.ErrDepartmentNotFound) {
					return fmt.Errorf("failed to get department: %w", err)
				}
				dept, err = s.deptRepo.Create(txCtx, employee.Department{Name: *req.Department})
				if err != nil {
					return fmt.Errorf("failed to create department: %w", err)
				}
			}
			emp.DepartmentID = &dept.ID
		}

		if req.ReportingTo != nil {
			if _, err := s.employeeRepo.GetByID(txCtx, *req.ReportingTo); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return employee.ErrManagerNotFound
				}
				return fmt.Errorf("failed to get manager: %w", err)
			}
			emp.ManagerID = req.ReportingTo
		}

		created, err := s.employeeRepo.Create(txCtx, emp)
		if err != nil {
			return err
		}
		result.Employee = created
		return nil
	})
	if err != nil {
		return employee.CreateResult{}, err
	}

	// Credentials go out after commit; a mail failure never rolls back
	// the employee row. Admin-supplied passwords are mailed the same as
	// generated ones.
	if req.PersonalEmail != nil && *req.PersonalEmail != "" {
		err := s.emailService.SendOnboarding(*req.PersonalEmail, result.Employee.FullName(), result.Employee.Email, password)
		if err != nil {
			slog.Error("failed to send onboarding email",
				"employee_id", result.Employee.ID,
				"error", err,
			)
		} else {
			result.EmailSent = true
		}
	}

	return result, nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, limit, offset int) ([]employee.Employee, int64, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.employeeRepo.List(ctx, limit, offset)
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, actor employee.Actor, id int64, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if actor.Role != employee.RoleAdmin && actor.ID != id {
		return employee.Employee{}, employee.ErrNotAllowed
	}

	var updated employee.Employee

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			parts := strings.SplitN(strings.TrimSpace(*req.Name), " ", 2)
			emp.FirstName = parts[0]
			emp.LastName = ""
			if len(parts) > 1 {
				emp.LastName = parts[1]
			}
		}
		if req.Email != nil {
			emp.Email = strings.ToLower(*req.Email)
		}
		if req.Phone != nil {
			emp.Phone = *req.Phone
		}
		if req.Designation != nil {
			emp.Designation = *req.Designation
		}
		if req.Department != nil {
			if *req.Department == "" {
				emp.DepartmentID = nil
			} else {
				dept, err := s.deptRepo.GetByName(txCtx, *req.Department)
				if err != nil {
					if !errors.Is(err, employee.ErrDepartmentNotFound) {
						return fmt.Errorf("failed to get department: %w", err)
					}
					dept, err = s.deptRepo.Create(txCtx, employee.Department{Name: *req.Department})
					if err != nil {
						return fmt.Errorf("failed to create department: %w", err)
					}
				}
				emp.DepartmentID = &dept.ID
			}
		}
		if req.ReportingTo != nil {
			if _, err := s.employeeRepo.GetByID(txCtx, *req.ReportingTo); err != nil {
				if errors.Is(err, employee.ErrEmployeeNotFound) {
					return employee.ErrManagerNotFound
				}
				return fmt.Errorf("failed to get manager: %w", err)
			}

			adjacency, err := s.employeeRepo.ManagerAdjacency(txCtx)
			if err != nil {
				return fmt.Errorf("failed to load reporting chains: %w", err)
			}
			if employee.WouldCreateCycle(adjacency, id, *req.ReportingTo) {
				return employee.ErrReportingCycle
			}
			emp.ManagerID = req.ReportingTo
		}

		if err := s.employeeRepo.Update(txCtx, emp); err != nil {
			return err
		}
		updated = emp
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return updated, nil
}

// Delete implements employee.Service.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.employeeRepo.Delete(ctx, id)
}

// CreateDepartment implements employee.Service.
func (s *EmployeeServiceImpl) CreateDepartment(ctx context.Context, req employee.CreateDepartmentRequest) (employee.Department, error) {
	return s.deptRepo.Create(ctx, employee.Department{Name: strings.TrimSpace(req.Name)})
}

// ListDepartments implements employee.Service.
func (s *EmployeeServiceImpl) ListDepartments(ctx context.Context) ([]employee.Department, error) {
	return s.deptRepo.List(ctx)
}

// DeleteDepartment implements employee.Service.
func (s *EmployeeServiceImpl) DeleteDepartment(ctx context.Context, id int64) error {
	return s.deptRepo.Delete(ctx, id)
}
