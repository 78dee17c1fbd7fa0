package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pawn-backend/internal/services"
	"pawn-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// StockSummaryPDF handles GET /api/stock-summary/report.pdf with the list filters
func (h *ReportHandler) StockSummaryPDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Service.GenerateStockSummaryPDF(ctx, filterFromQuery(r))
	if err != nil {
		writeError(w, r, "Failed to generate PDF", err)
		return
	}

	filename := fmt.Sprintf("stock_summary_%s.pdf", timeutil.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}

// StockSummaryCSV handles GET /api/stock-summary/report.csv with the list filters
func (h *ReportHandler) StockSummaryCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Service.GenerateStockSummaryCSV(ctx, filterFromQuery(r))
	if err != nil {
		writeError(w, r, "Failed to generate CSV", err)
		return
	}

	filename := fmt.Sprintf("stock_summary_%s.csv", timeutil.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}
