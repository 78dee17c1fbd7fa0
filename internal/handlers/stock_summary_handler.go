package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type StockSummaryHandler struct {
	Service *services.StockSummaryService
}

func NewStockSummaryHandler(s *services.StockSummaryService) *StockSummaryHandler {
	return &StockSummaryHandler{Service: s}
}

type stockSummaryResponse struct {
	Success bool `json:"success"`
	*models.StockSummaryQueryResult
}

// filterFromQuery reads search, dateFilter, statusFilter and jewelTypeFilter
func filterFromQuery(r *http.Request) models.StockSummaryFilter {
	q := r.URL.Query()
	return models.StockSummaryFilter{
		Search:          q.Get("search"),
		DateFilter:      q.Get("dateFilter"),
		StatusFilter:    q.Get("statusFilter"),
		JewelTypeFilter: q.Get("jewelTypeFilter"),
	}
}

// GetStockSummary handles GET /api/stock-summary
func (h *StockSummaryHandler) GetStockSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.Service.Query(r.Context(), filterFromQuery(r), page, limit)
	if err != nil {
		writeError(w, r, "Failed to fetch stock summary", err)
		return
	}

	utils.JSON(w, http.StatusOK, stockSummaryResponse{Success: true, StockSummaryQueryResult: result})
}

// Sync handles POST /api/stock-summary/sync
func (h *StockSummaryHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Sync(r.Context())
	if err != nil {
		writeError(w, r, "Failed to sync stock summary", err)
		return
	}

	utils.Success(w, http.StatusOK, fmt.Sprintf("Stock summary synced with %d loans", result.TotalLoans), result)
}

// Dashboard handles GET /api/stock-summary/dashboard
func (h *StockSummaryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, "Failed to fetch dashboard stats", err)
		return
	}

	utils.Success(w, http.StatusOK, "", stats)
}

// UpdateOverdue handles POST /api/stock-summary/update-overdue
func (h *StockSummaryHandler) UpdateOverdue(w http.ResponseWriter, r *http.Request) {
	modified, err := h.Service.SweepOverdue(r.Context())
	if err != nil {
		writeError(w, r, "Failed to update overdue loans", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       fmt.Sprintf("Updated %d loans", modified),
		"modifiedCount": modified,
	})
}

// Reset handles DELETE /api/stock-summary/reset
func (h *StockSummaryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Reset(r.Context())
	if err != nil {
		writeError(w, r, "Failed to reset stock summary", err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Stock summary reset",
		"deletedCount": deleted,
	})
}

// GetLoan handles GET /api/stock-summary/{id}
func (h *StockSummaryHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Service.GetLoan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, "Loan not found", err)
		return
	}

	utils.Success(w, http.StatusOK, "", loan)
}

// UpdateStatus handles PUT /api/stock-summary/{id}/status
func (h *StockSummaryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLoanStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loan, err := h.Service.SetStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, r, "Failed to update loan status", err)
		return
	}

	utils.Success(w, http.StatusOK, "Loan status updated", loan)
}
