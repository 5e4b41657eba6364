package employee

import (
	"strings"

	"github.com/peoplecore/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	PersonalEmail *string `json:"personalEmail,omitempty"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	Department    *string `json:"department,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	ReportingTo   *int64  `json:"reportingTo,omitempty,string"`
	Designation   *string `json:"designation,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if r.PersonalEmail != nil && !validator.IsValidEmail(*r.PersonalEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "personalEmail",
			Message: "personalEmail must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !validator.IsInSlice(strings.ToLower(r.Role), ValidRoles) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of employee, manager, admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SplitName breaks the display name into first/last parts, matching how
// records are stored.
func (r *CreateEmployeeRequest) SplitName() (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(r.Name), " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		last = parts[1]
	}
	return first, last
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Department  *string `json:"department,omitempty"`
	ReportingTo *int64  `json:"reportingTo,omitempty,string"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
