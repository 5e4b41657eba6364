package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrDepartmentExists   = errors.New("department already exists")
	ErrReportingCycle     = errors.New("reporting assignment would create a cycle")
	ErrManagerNotFound    = errors.New("reporting manager not found")
	ErrNotAllowed         = errors.New("not authorized to modify this employee")
)
