package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"pawn-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BackupLogRepository struct {
	DB *pgxpool.Pool
}

func NewBackupLogRepository(db *pgxpool.Pool) *BackupLogRepository {
	return &BackupLogRepository{DB: db}
}

func (r *BackupLogRepository) Create(ctx context.Context, l *models.BackupLog) error {
	counts := l.RecordCounts
	if counts == nil {
		counts = map[string]int{}
	}
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return err
	}

	return r.DB.QueryRow(ctx,
		`INSERT INTO backup_logs (action, file_name, record_counts, status, error_message, remote_key)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		l.Action, l.FileName, countsJSON, l.Status, l.ErrorMessage, l.RemoteKey,
	).Scan(&l.ID, &l.CreatedAt)
}

// List returns the most recent backup log rows
func (r *BackupLogRepository) List(ctx context.Context, limit int) ([]*models.BackupLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, action, COALESCE(file_name, ''), COALESCE(record_counts, '{}'::jsonb), status,
             COALESCE(error_message, ''), COALESCE(remote_key, ''), created_at
         FROM backup_logs
         ORDER BY created_at DESC
         LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.BackupLog
	for rows.Next() {
		var l models.BackupLog
		var counts []byte
		if err := rows.Scan(&l.ID, &l.Action, &l.FileName, &counts, &l.Status,
			&l.ErrorMessage, &l.RemoteKey, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(counts, &l.RecordCounts); err != nil {
			return nil, fmt.Errorf("backup log %d: record_counts: %w", l.ID, err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
