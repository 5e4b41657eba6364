package attendance

import (
	"strconv"
	"time"

	"github.com/peoplecore/attendance-backend-go/internal/pkg/validator"
)

// SortFields whitelists the columns a listing may be ordered by.
var SortFields = []string{"date", "check_in_time", "check_out_time"}

type MarkAttendanceRequest struct {
	ClockIn  string  `json:"clockIn"`
	ClockOut *string `json:"clockOut,omitempty"`
	Status   string  `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clockIn",
			Message: "clockIn is required",
		})
	} else if _, ok := validator.IsValidClockTime(r.ClockIn); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "clockIn",
			Message: "clockIn must be in HH:MM format",
		})
	}

	if r.ClockOut != nil {
		if _, ok := validator.IsValidClockTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clockOut",
				Message: "clockOut must be in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ClockOut *string `json:"clockOut,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockOut != nil {
		if _, ok := validator.IsValidClockTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clockOut",
				Message: "clockOut must be in HH:MM format",
			})
		}
	}

	if r.Status != nil && validator.IsEmpty(*r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateEntryRequest struct {
	EntryType string  `json:"entryType"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.EntryType, []string{string(EntryIn), string(EntryOut)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "entryType",
			Message: "entryType must be 'in' or 'out'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListQuery captures listing filters after validation.
type ListQuery struct {
	EmployeeID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	Order      string
	Page       int
	Limit      int
}

// ParseListQuery validates raw query-string values into a ListQuery.
// Unknown sort fields and order values are validation errors, never
// silently ignored.
func ParseListQuery(employeeID, startDate, endDate, sortBy, order, page, limit string) (ListQuery, error) {
	var errs validator.ValidationErrors
	q := ListQuery{Page: 1, Limit: 100, Order: "desc"}

	if employeeID != "" {
		if !validator.IsNumeric(employeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_id",
				Message: "employee_id must be numeric",
			})
		} else {
			id := parseInt64(employeeID)
			q.EmployeeID = &id
		}
	}

	if startDate != "" {
		d, ok := validator.IsValidDate(startDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			q.StartDate = &d
		}
	}

	if endDate != "" {
		d, ok := validator.IsValidDate(endDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			q.EndDate = &d
		}
	}

	if sortBy != "" {
		if !validator.IsInSlice(sortBy, SortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of date, check_in_time, check_out_time",
			})
		} else {
			q.SortBy = sortBy
		}
	}

	if order != "" {
		if !validator.IsInSlice(order, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "order",
				Message: "order must be 'asc' or 'desc'",
			})
		} else {
			q.Order = order
		}
	}

	if page != "" {
		if !validator.IsNumeric(page) {
			errs = append(errs, validator.ValidationError{
				Field:   "page",
				Message: "page must be numeric",
			})
		} else if p := int(parseInt64(page)); p > 0 {
			q.Page = p
		}
	}

	if limit != "" {
		if !validator.IsNumeric(limit) {
			errs = append(errs, validator.ValidationError{
				Field:   "limit",
				Message: "limit must be numeric",
			})
		} else if l := int(parseInt64(limit)); l > 0 {
			q.Limit = l
		}
	}

	if len(errs) > 0 {
		return ListQuery{}, errs
	}

	return q, nil
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
