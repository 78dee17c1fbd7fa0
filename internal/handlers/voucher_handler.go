package handlers

import (
	"net/http"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"
)

type VoucherHandler struct {
	Service *services.VoucherService
}

func NewVoucherHandler(s *services.VoucherService) *VoucherHandler {
	return &VoucherHandler{Service: s}
}

func (h *VoucherHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req models.VoucherRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.CreateVoucher(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to create voucher", err)
		return
	}

	utils.Success(w, http.StatusCreated, "Voucher created", out)
}

func (h *VoucherHandler) GetVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	out, err := h.Service.GetVoucher(r.Context(), id)
	if err != nil {
		writeError(w, r, "Voucher not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *VoucherHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ListVouchers(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list vouchers", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *VoucherHandler) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.VoucherRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.UpdateVoucher(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, "Failed to update voucher", err)
		return
	}

	utils.Success(w, http.StatusOK, "Voucher updated", out)
}

func (h *VoucherHandler) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteVoucher(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete voucher", err)
		return
	}

	utils.Success(w, http.StatusOK, "Voucher deleted", nil)
}
