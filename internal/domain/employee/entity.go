package employee

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Regular employee
	RoleManager  Role = "manager"  // Can verify attendance / approve leave for direct reports
	RoleAdmin    Role = "admin"    // Full access
)

// ValidRoles lists every assignable role.
var ValidRoles = []string{string(RoleEmployee), string(RoleManager), string(RoleAdmin)}

type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	Designation  string
	Role         Role
	DepartmentID *int64
	ManagerID    *int64
	CreatedAt    time.Time

	// DTO / join fields
	ManagerName *string
}

// FullName returns the display name used across responses.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// IsAdmin checks if the employee has the admin role
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// IsManager checks if the employee has the manager role
func (e *Employee) IsManager() bool {
	return e.Role == RoleManager
}

type Department struct {
	ID   int64
	Name string
}

// Actor identifies the authenticated caller of an operation, resolved
// from the session token.
type Actor struct {
	ID   int64
	Role Role
}
