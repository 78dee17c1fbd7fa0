package handlers

import (
	"net/http"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"
)

type JewelHandler struct {
	Service *services.JewelService
}

func NewJewelHandler(s *services.JewelService) *JewelHandler {
	return &JewelHandler{Service: s}
}

func (h *JewelHandler) CreateJewel(w http.ResponseWriter, r *http.Request) {
	var req models.JewelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.CreateJewel(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to create jewel", err)
		return
	}

	utils.Success(w, http.StatusCreated, "Jewel created", out)
}

func (h *JewelHandler) GetJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	out, err := h.Service.GetJewel(r.Context(), id)
	if err != nil {
		writeError(w, r, "Jewel not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *JewelHandler) ListJewels(w http.ResponseWriter, r *http.Request) {
	out, err := h.Service.ListJewels(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list jewels", err)
		return
	}

	utils.Success(w, http.StatusOK, "", out)
}

func (h *JewelHandler) UpdateJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.JewelRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.UpdateJewel(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, "Failed to update jewel", err)
		return
	}

	utils.Success(w, http.StatusOK, "Jewel updated", out)
}

func (h *JewelHandler) DeleteJewel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteJewel(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete jewel", err)
		return
	}

	utils.Success(w, http.StatusOK, "Jewel deleted", nil)
}
