package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
	"github.com/timeqr/timeqr-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Badge(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := employee.ListFilter{
		Branch:     query.Get("branch"),
		Position:   query.Get("position"),
		ActiveOnly: query.Get("active") == "true",
	}

	resp, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list employees", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", resp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", resp)
}

// Deactivate implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.employeeService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Failed to deactivate employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated successfully", nil)
}

// Badge implements EmployeeHandler. Serves the printable QR badge PNG.
func (h *EmployeeHandlerImpl) Badge(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	png, err := h.employeeService.Badge(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PNG(w, png)
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}
