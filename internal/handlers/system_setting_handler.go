package handlers

import (
	"net/http"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type SystemSettingHandler struct {
	Service *services.SystemSettingService
}

func NewSystemSettingHandler(service *services.SystemSettingService) *SystemSettingHandler {
	return &SystemSettingHandler{Service: service}
}

func (h *SystemSettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Service.GetSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, r, "Setting not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", setting)
}

func (h *SystemSettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.ListSettings(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list settings", err)
		return
	}

	utils.Success(w, http.StatusOK, "", settings)
}

// GetDateOverride handles GET /api/settings/date-override
func (h *SystemSettingHandler) GetDateOverride(w http.ResponseWriter, r *http.Request) {
	override, err := h.Service.GetDateOverride(r.Context())
	if err != nil {
		writeError(w, r, "Failed to read date override", err)
		return
	}

	utils.Success(w, http.StatusOK, "", override)
}

// SetDateOverride handles PUT /api/settings/date-override
func (h *SystemSettingHandler) SetDateOverride(w http.ResponseWriter, r *http.Request) {
	var req models.DateOverrideRequest
	if !decodeBody(w, r, &req) {
		return
	}

	override, err := h.Service.SetDateOverride(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to set date override", err)
		return
	}

	utils.Success(w, http.StatusOK, "Date override updated", override)
}

// ClearDateOverride handles DELETE /api/settings/date-override
func (h *SystemSettingHandler) ClearDateOverride(w http.ResponseWriter, r *http.Request) {
	override, err := h.Service.ClearDateOverride(r.Context())
	if err != nil {
		writeError(w, r, "Failed to clear date override", err)
		return
	}

	utils.Success(w, http.StatusOK, "Date override cleared", override)
}
