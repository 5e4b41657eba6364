package employee

import "context"

// Repository - interface for the employees table
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	Update(ctx context.Context, emp Employee) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	ListDirectReportIDs(ctx context.Context, managerID int64) ([]int64, error)
	// ManagerAdjacency returns the id -> manager-id map for every employee
	// that has a manager, for reporting-cycle checks.
	ManagerAdjacency(ctx context.Context) (map[int64]int64, error)
}

// DepartmentRepository - interface for the departments table
type DepartmentRepository interface {
	Create(ctx context.Context, dept Department) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	Delete(ctx context.Context, id int64) error
}
