package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/domain/leave"
	"github.com/peoplecore/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

type leaveRequestResponse struct {
	ID           int64   `json:"id,string"`
	EmployeeID   int64   `json:"employeeId,string"`
	EmployeeName string  `json:"employeeName,omitempty"`
	LeaveType    string  `json:"leaveType,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Days         int     `json:"days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AppliedAt    string  `json:"appliedAt"`
	ReviewedBy   *string `json:"reviewedBy,omitempty"`
	ReviewedAt   *string `json:"reviewedAt,omitempty"`
}

type leaveBalanceResponse struct {
	EmployeeID int64 `json:"employeeId,string"`
	Year       int   `json:"year"`
	TotalDays  int   `json:"totalDays"`
	UsedDays   int   `json:"usedDays"`
	Remaining  int   `json:"remaining"`
}

type leaveTypeResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

func toLeaveRequestResponse(request leave.LeaveRequest) leaveRequestResponse {
	resp := leaveRequestResponse{
		ID:         request.ID,
		EmployeeID: request.EmployeeID,
		StartDate:  request.StartDate.Format("2006-01-02"),
		EndDate:    request.EndDate.Format("2006-01-02"),
		Days:       request.DaysRequested(),
		Reason:     request.Reason,
		Status:     string(request.Status),
		AppliedAt:  request.AppliedAt.Format(time.RFC3339),
	}
	if request.EmployeeName != nil {
		resp.EmployeeName = *request.EmployeeName
	}
	if request.LeaveTypeName != nil {
		resp.LeaveType = *request.LeaveTypeName
	}
	if request.ReviewedBy != nil {
		reviewedBy := strconv.FormatInt(*request.ReviewedBy, 10)
		resp.ReviewedBy = &reviewedBy
	}
	if request.ReviewedAt != nil {
		reviewedAt := request.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create leave request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.leaveService.Create(r.Context(), actor, req)
	if err != nil {
		slog.Error("Create leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", toLeaveRequestResponse(request))
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}

	requests, total, err := h.leaveService.List(r.Context(), actor, limit, (page-1)*limit)
	if err != nil {
		slog.Error("List leave requests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]leaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, toLeaveRequestResponse(request))
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

// Get implements LeaveHandler.
func (h *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid leave request id", nil)
		return
	}

	request, err := h.leaveService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toLeaveRequestResponse(request))
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.leaveService.Approve, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.leaveService.Reject, "Leave request rejected")
}

// Delete implements LeaveHandler.
func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid leave request id", nil)
		return
	}

	if err := h.leaveService.Delete(r.Context(), actor, id); err != nil {
		slog.Error("Delete leave request service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// Balance implements LeaveHandler.
func (h *LeaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := actor.ID
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, ok := urlID(raw)
		if !ok {
			response.BadRequest(w, "Invalid employee id", nil)
			return
		}
		employeeID = id
	}

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = y
	}

	balance, err := h.leaveService.Balance(r.Context(), actor, employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveBalanceResponse{
		EmployeeID: balance.EmployeeID,
		Year:       balance.Year,
		TotalDays:  balance.TotalDays,
		UsedDays:   balance.UsedDays,
		Remaining:  balance.Remaining,
	})
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		slog.Error("List leave types service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]leaveTypeResponse, 0, len(types))
	for _, lt := range types {
		items = append(items, leaveTypeResponse{ID: lt.ID, Name: lt.Name})
	}
	response.Success(w, items)
}

func (h *LeaveHandlerImpl) review(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, employee.Actor, int64) (leave.LeaveRequest, error),
	message string,
) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid leave request id", nil)
		return
	}

	request, err := fn(r.Context(), actor, id)
	if err != nil {
		slog.Error("Leave review error", "request_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, toLeaveRequestResponse(request))
}
