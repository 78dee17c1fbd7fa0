package models

import "time"

const (
	BackupActionExport = "export"
	BackupActionImport = "import"

	BackupStatusSuccess = "success"
	BackupStatusFailed  = "failed"
)

// BackupLog is one row of the backup/restore audit trail
type BackupLog struct {
	ID           int            `json:"id"`
	Action       string         `json:"action"`
	FileName     string         `json:"fileName"`
	RecordCounts map[string]int `json:"recordCounts"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	RemoteKey    string         `json:"remoteKey,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
