package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/attendance"
	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Confirm(w http.ResponseWriter, r *http.Request)
	ManagerVerify(w http.ResponseWriter, r *http.Request)
	AdminApprove(w http.ResponseWriter, r *http.Request)

	AddEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

type attendanceRecordResponse struct {
	ID             int64   `json:"id,string"`
	EmployeeID     int64   `json:"employeeId,string"`
	EmployeeName   string  `json:"employeeName,omitempty"`
	Date           string  `json:"date"`
	CheckInTime    *string `json:"checkInTime"`
	CheckOutTime   *string `json:"checkOutTime"`
	Status         string  `json:"status"`
	ApprovalStatus string  `json:"approvalStatus"`
	IsConfirmed    bool    `json:"isConfirmed"`
	ConfirmedAt    *string `json:"confirmedAt,omitempty"`
	EntriesCount   int64   `json:"entriesCount"`
}

type attendanceEntryResponse struct {
	ID        int64   `json:"id,string"`
	EntryType string  `json:"entryType"`
	Timestamp string  `json:"timestamp"`
	Reason    *string `json:"reason,omitempty"`
}

func toRecordResponse(rec attendance.AttendanceRecord) attendanceRecordResponse {
	resp := attendanceRecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		Date:           rec.Date.Format("2006-01-02"),
		Status:         rec.Status,
		ApprovalStatus: string(rec.ApprovalStatus),
		IsConfirmed:    rec.IsConfirmed,
		EntriesCount:   rec.EntriesCount,
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.CheckInTime != nil {
		checkIn := rec.CheckInTime.Format("15:04:05")
		resp.CheckInTime = &checkIn
	}
	if rec.CheckOutTime != nil {
		checkOut := rec.CheckOutTime.Format("15:04:05")
		resp.CheckOutTime = &checkOut
	}
	if rec.ConfirmedAt != nil {
		confirmedAt := rec.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedAt
	}
	return resp
}

func toEntryResponse(entry attendance.AttendanceEntry) attendanceEntryResponse {
	return attendanceEntryResponse{
		ID:        entry.ID,
		EntryType: string(entry.EntryType),
		Timestamp: entry.Timestamp.Format(time.RFC3339),
		Reason:    entry.Reason,
	}
}

// Mark implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.Mark(r.Context(), actor, req)
	if err != nil {
		slog.Error("Mark attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked", toRecordResponse(rec))
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	query := r.URL.Query()
	listQuery, err := attendance.ParseListQuery(
		query.Get("employee_id"),
		query.Get("start_date"),
		query.Get("end_date"),
		query.Get("sort_by"),
		query.Get("order"),
		query.Get("page"),
		query.Get("limit"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, total, err := h.attendanceService.List(r.Context(), actor, listQuery)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]attendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toRecordResponse(rec))
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       listQuery.Page,
		Limit:      listQuery.Limit,
		TotalItems: total,
		TotalPages: int((total + int64(listQuery.Limit) - 1) / int64(listQuery.Limit)),
	})
}

// Get implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	rec, entries, err := h.attendanceService.Get(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entryItems := make([]attendanceEntryResponse, 0, len(entries))
	for _, entry := range entries {
		entryItems = append(entryItems, toEntryResponse(entry))
	}

	response.Success(w, map[string]interface{}{
		"record":  toRecordResponse(rec),
		"entries": entryItems,
	})
}

// Update implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.Update(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Update attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", toRecordResponse(rec))
}

// Delete implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), actor, id); err != nil {
		slog.Error("Delete attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}

// Confirm implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.Confirm, "Attendance confirmed")
}

// ManagerVerify implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ManagerVerify(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.ManagerVerify, "Attendance verified")
}

// AdminApprove implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AdminApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.attendanceService.AdminApprove, "Attendance approved")
}

// AddEntry implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AddEntry(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordID, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	var req attendance.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add entry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.attendanceService.AddEntry(r.Context(), actor, recordID, req)
	if err != nil {
		slog.Error("Add entry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry added", toEntryResponse(entry))
}

// ListEntries implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordID, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	entries, err := h.attendanceService.ListEntries(r.Context(), actor, recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]attendanceEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toEntryResponse(entry))
	}

	response.Success(w, items)
}

// DeleteEntry implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	recordID, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	entryID, ok := urlID(chi.URLParam(r, "entryID"))
	if !ok {
		response.BadRequest(w, "Invalid entry id", nil)
		return
	}

	if err := h.attendanceService.DeleteEntry(r.Context(), actor, recordID, entryID); err != nil {
		slog.Error("Delete entry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted", nil)
}

func (h *AttendanceHandlerImpl) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, employee.Actor, int64) (attendance.AttendanceRecord, error),
	message string,
) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid attendance record id", nil)
		return
	}

	rec, err := fn(r.Context(), actor, id)
	if err != nil {
		slog.Error("Attendance transition error", "record_id", id, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, toRecordResponse(rec))
}
