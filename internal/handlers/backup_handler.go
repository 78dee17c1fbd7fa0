package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"pawn-backend/internal/services"
	"pawn-backend/internal/storage"
	"pawn-backend/pkg/utils"
)

type BackupHandler struct {
	Service     *services.BackupService
	Remote      *storage.R2Store
	MaxUploadMB int64
}

func NewBackupHandler(s *services.BackupService, remote *storage.R2Store, maxUploadMB int64) *BackupHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &BackupHandler{Service: s, Remote: remote, MaxUploadMB: maxUploadMB}
}

// Export handles GET /api/backup/export and streams the workbook
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Export(r.Context())
	if err != nil {
		writeError(w, r, "Failed to export backup", err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.FileName))
	if result.Log != nil && result.Log.RemoteKey != "" {
		w.Header().Set("X-Backup-Remote-Key", result.Log.RemoteKey)
	}
	w.Write(result.Data)
}

// Import handles POST /api/backup/import with the workbook in the "file" form field
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(h.MaxUploadMB << 20); err != nil {
		utils.Error(w, http.StatusBadRequest, "Upload too large or not multipart", err, false)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Missing file field", err, false)
		return
	}
	defer file.Close()

	entry, err := h.Service.Import(r.Context(), file, header.Filename)
	if err != nil {
		writeError(w, r, "Failed to import backup", err)
		return
	}

	utils.Success(w, http.StatusOK, "Backup imported", entry)
}

// Logs handles GET /api/backup/logs?limit=
func (h *BackupHandler) Logs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Service.ListLogs(r.Context(), limit)
	if err != nil {
		writeError(w, r, "Failed to list backup logs", err)
		return
	}

	utils.Success(w, http.StatusOK, "", logs)
}

// ListRemote handles GET /api/backup/remote, listing mirrored workbooks
func (h *BackupHandler) ListRemote(w http.ResponseWriter, r *http.Request) {
	if h.Remote == nil {
		utils.Error(w, http.StatusServiceUnavailable, "Remote backup storage is not configured", errors.New("r2 disabled"), false)
		return
	}

	objects, err := h.Remote.List(r.Context())
	if err != nil {
		writeError(w, r, "Failed to list remote backups", err)
		return
	}

	utils.Success(w, http.StatusOK, "", objects)
}
