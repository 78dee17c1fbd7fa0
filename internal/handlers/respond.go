package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pawn-backend/internal/logger"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/services"
	"pawn-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// IncludeStack attaches stack traces to 500 responses; main turns it off in production
var IncludeStack = true

var errInvalidID = errors.New("id must be a positive integer")

// writeError maps service errors onto the failure envelope
func writeError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, services.ErrSnapshotNotFound),
		errors.Is(err, services.ErrLoanNotFound),
		errors.Is(err, repositories.ErrNotFound):
		utils.Error(w, http.StatusNotFound, message, err, false)
	case services.IsValidationError(err):
		utils.Error(w, http.StatusBadRequest, message, err, false)
	default:
		logger.Component("handlers").WithField("path", r.URL.Path).WithError(err).Error(message)
		utils.Error(w, http.StatusInternalServerError, message, err, IncludeStack)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body", err, false)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		utils.Error(w, http.StatusBadRequest, "Invalid id", errInvalidID, false)
		return 0, false
	}
	return id, true
}
