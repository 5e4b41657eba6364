package employee

import "context"

// CreateResult reports what happened alongside the stored employee:
// whether onboarding credentials went out, and the generated password
// when the request did not carry one.
type CreateResult struct {
	Employee     Employee
	EmailSent    bool
	TempPassword string
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (CreateResult, error)
	Get(ctx context.Context, id int64) (Employee, error)
	List(ctx context.Context, limit, offset int) ([]Employee, int64, error)
	// Update is allowed for admins and for the employee themselves.
	Update(ctx context.Context, actor Actor, id int64, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id int64) error

	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
