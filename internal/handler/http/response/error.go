package response

import (
	"errors"
	"net/http"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/domain/auth"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/holiday"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Reporting manager not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrDepartmentExists):
		Conflict(w, "Department already exists")
	case errors.Is(err, employee.ErrReportingCycle):
		Conflict(w, "Assignment would create a reporting cycle")
	case errors.Is(err, employee.ErrNotAllowed):
		Forbidden(w, "Not allowed")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEntryNotFound):
		NotFound(w, "Attendance entry not found")
	case errors.Is(err, attendance.ErrAlreadyConfirmed):
		Conflict(w, "Attendance already confirmed")
	case errors.Is(err, attendance.ErrNothingToConfirm):
		Conflict(w, "No attendance entries to confirm")
	case errors.Is(err, attendance.ErrNotPendingManager):
		Conflict(w, "Attendance record is not pending manager approval")
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, "You can only modify your own attendance")
	case errors.Is(err, attendance.ErrNotDirectManager):
		Forbidden(w, "You can only verify attendance for your direct reports")
	case errors.Is(err, attendance.ErrNotVisible):
		Forbidden(w, "Not authorized to view this attendance record")
	case errors.Is(err, attendance.ErrEntryDeleteDenied):
		Forbidden(w, "Only admin or manager can delete attendance entries")
	case errors.Is(err, attendance.ErrDeleteDenied):
		Forbidden(w, "Only admin can delete attendance records")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrReviewDenied):
		Forbidden(w, "Only admin or the requester's direct manager can review")
	case errors.Is(err, leave.ErrDeleteDenied):
		Forbidden(w, "Cannot delete others' leave requests")
	case errors.Is(err, leave.ErrDeleteNotPending):
		Conflict(w, "Can only delete pending leave requests")
	case errors.Is(err, leave.ErrNotVisible):
		Forbidden(w, "Not authorized to view this leave request")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
