package handlers

import (
	"net/http"
	"strconv"

	"pawn-backend/internal/models"
	"pawn-backend/internal/services"
	"pawn-backend/internal/timeutil"
	"pawn-backend/pkg/utils"
)

type DayBookHandler struct {
	Service *services.DayBookService
}

func NewDayBookHandler(s *services.DayBookService) *DayBookHandler {
	return &DayBookHandler{Service: s}
}

func (h *DayBookHandler) CreateDayBook(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDayBookRequest
	if !decodeBody(w, r, &req) {
		return
	}

	book, err := h.Service.CreateDayBook(r.Context(), &req)
	if err != nil {
		writeError(w, r, "Failed to create day book", err)
		return
	}

	utils.Success(w, http.StatusCreated, "Day book created", book)
}

// ListDayBooks handles GET /api/day-books?startDate=&endDate=&limit=&offset=
func (h *DayBookHandler) ListDayBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.DayBookFilter{}

	if v := q.Get("startDate"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD", err, false)
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := timeutil.ParseDate(v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD", err, false)
			return
		}
		end := timeutil.EndOfDay(t)
		filter.EndDate = &end
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		filter.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		filter.Offset = n
	}

	books, err := h.Service.ListDayBooks(r.Context(), filter)
	if err != nil {
		writeError(w, r, "Failed to list day books", err)
		return
	}

	utils.Success(w, http.StatusOK, "", books)
}
