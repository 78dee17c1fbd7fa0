package handlers

import (
	"net/http"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func NewEmployeeHandler(s *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.CreateEmployee(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to create employee", err)
		return
	}

	utils.Success(w, http.StatusCreated, "Employee created", out)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	out, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, r, "Employee not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list employees", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.UpdateEmployee(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, "Failed to update employee", err)
		return
	}

	utils.Success(w, http.StatusOK, "Employee updated", out)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete employee", err)
		return
	}

	utils.Success(w, http.StatusOK, "Employee deleted", nil)
}
