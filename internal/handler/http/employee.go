package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
	"github.com/peoplecore/attendance-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	CreateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

type employeeResponse struct {
	ID           int64   `json:"id,string"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Designation  string  `json:"designation,omitempty"`
	Role         string  `json:"role"`
	DepartmentID *int64  `json:"departmentId,omitempty"`
	ReportingTo  *string `json:"reportingTo,omitempty"`
	ManagerName  *string `json:"managerName,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

type departmentResponse struct {
	ID   int64  `json:"id,string"`
	Name string `json:"name"`
}

func toEmployeeResponse(emp employee.Employee) employeeResponse {
	resp := employeeResponse{
		ID:           emp.ID,
		Name:         emp.FullName(),
		Email:        emp.Email,
		Phone:        emp.Phone,
		Designation:  emp.Designation,
		Role:         string(emp.Role),
		DepartmentID: emp.DepartmentID,
		ManagerName:  emp.ManagerName,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
	}
	if emp.ManagerID != nil {
		managerID := strconv.FormatInt(*emp.ManagerID, 10)
		resp.ReportingTo = &managerID
	}
	return resp
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", map[string]interface{}{
		"employee":  toEmployeeResponse(result.Employee),
		"emailSent": result.EmailSent,
	})
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}

	employees, total, err := h.employeeService.List(r.Context(), limit, (page-1)*limit)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		items = append(items, toEmployeeResponse(emp))
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	})
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.Update(r.Context(), actor, id, req)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", toEmployeeResponse(emp))
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid employee id", nil)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// CreateDepartment implements EmployeeHandler.
func (h *EmployeeHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create department decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	dept, err := h.employeeService.CreateDepartment(r.Context(), req)
	if err != nil {
		slog.Error("Create department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", departmentResponse{ID: dept.ID, Name: dept.Name})
}

// ListDepartments implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.employeeService.ListDepartments(r.Context())
	if err != nil {
		slog.Error("List departments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	items := make([]departmentResponse, 0, len(departments))
	for _, dept := range departments {
		items = append(items, departmentResponse{ID: dept.ID, Name: dept.Name})
	}
	response.Success(w, items)
}

// DeleteDepartment implements EmployeeHandler.
func (h *EmployeeHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(chi.URLParam(r, "id"))
	if !ok {
		response.BadRequest(w, "Invalid department id", nil)
		return
	}

	if err := h.employeeService.DeleteDepartment(r.Context(), id); err != nil {
		slog.Error("Delete department service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}
