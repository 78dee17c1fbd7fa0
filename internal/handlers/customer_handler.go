package handlers

import (
	"net/http"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	customer, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to create customer", err)
		return
	}

	utils.Success(w, http.StatusCreated, "Customer created", customer)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	customer, err := h.Service.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, "Customer not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", customer)
}

// ListCustomers handles GET /api/customers, or a phone lookup when ?phone= is given
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if phone := r.URL.Query().Get("phone"); phone != "" {
		customer, err := h.Service.SearchByPhone(r.Context(), phone)
		if err != nil {
			writeError(w, r, "Customer not found", err)
			return
		}
		utils.Success(w, http.StatusOK, "", []*models.Customer{customer})
		return
	}

	customers, err := h.Service.ListCustomers(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list customers", err)
		return
	}

	utils.Success(w, http.StatusOK, "", customers)
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	customer, err := h.Service.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, "Failed to update customer", err)
		return
	}

	utils.Success(w, http.StatusOK, "Customer updated", customer)
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete customer", err)
		return
	}

	utils.Success(w, http.StatusOK, "Customer deleted", nil)
}
