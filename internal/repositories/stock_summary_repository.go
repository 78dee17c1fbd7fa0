package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pawn-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// currentSummaryKey is the only key a snapshot is ever stored under
const currentSummaryKey = "current"

// StockSummaryRepository persists the single stock summary snapshot
type StockSummaryRepository struct {
	DB *pgxpool.Pool
}

func NewStockSummaryRepository(db *pgxpool.Pool) *StockSummaryRepository {
	return &StockSummaryRepository{DB: db}
}

// Load returns the current snapshot, or nil when none has been stored
func (r *StockSummaryRepository) Load(ctx context.Context) (*models.StockSummary, error) {
	var s models.StockSummary
	var loans []byte
	err := r.DB.QueryRow(ctx,
		`SELECT id::text, data_source, loans, last_synced_at, last_updated, sync_status, data_version
         FROM stock_summaries WHERE summary_key = $1`, currentSummaryKey,
	).Scan(&s.ID, &s.DataSource, &loans, &s.LastSyncedAt, &s.LastUpdated, &s.SyncStatus, &s.DataVersion)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stock summary: %w", err)
	}

	if err := json.Unmarshal(loans, &s.Loans); err != nil {
		return nil, fmt.Errorf("stock summary loans: %w", err)
	}
	if s.Loans == nil {
		s.Loans = []models.DerivedLoan{}
	}
	return &s, nil
}

// Replace deletes every stored snapshot and inserts s in one transaction,
// so readers never observe an empty gap between the two.
func (r *StockSummaryRepository) Replace(ctx context.Context, s *models.StockSummary) error {
	id, loans, err := encodeSnapshot(s)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM stock_summaries`); err != nil {
		return fmt.Errorf("failed to clear stock summaries: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO stock_summaries (summary_key, id, data_source, loans, last_synced_at, last_updated, sync_status, data_version)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		currentSummaryKey, id, s.DataSource, loans, s.LastSyncedAt, s.LastUpdated, s.SyncStatus, s.DataVersion)
	if err != nil {
		return fmt.Errorf("failed to insert stock summary: %w", err)
	}

	return tx.Commit(ctx)
}

// Save writes back a modified snapshot in place
func (r *StockSummaryRepository) Save(ctx context.Context, s *models.StockSummary) error {
	id, loans, err := encodeSnapshot(s)
	if err != nil {
		return err
	}

	_, err = r.DB.Exec(ctx,
		`INSERT INTO stock_summaries (summary_key, id, data_source, loans, last_synced_at, last_updated, sync_status, data_version)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         ON CONFLICT (summary_key) DO UPDATE SET
             id = EXCLUDED.id, data_source = EXCLUDED.data_source, loans = EXCLUDED.loans,
             last_synced_at = EXCLUDED.last_synced_at, last_updated = EXCLUDED.last_updated,
             sync_status = EXCLUDED.sync_status, data_version = EXCLUDED.data_version`,
		currentSummaryKey, id, s.DataSource, loans, s.LastSyncedAt, s.LastUpdated, s.SyncStatus, s.DataVersion)
	if err != nil {
		return fmt.Errorf("failed to save stock summary: %w", err)
	}
	return nil
}

// DeleteAll removes every snapshot and reports how many rows went
func (r *StockSummaryRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM stock_summaries`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stock summaries: %w", err)
	}
	return tag.RowsAffected(), nil
}

func encodeSnapshot(s *models.StockSummary) (uuid.UUID, []byte, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("stock summary id %q: %w", s.ID, err)
	}
	loans := s.Loans
	if loans == nil {
		loans = []models.DerivedLoan{}
	}
	data, err := json.Marshal(loans)
	return id, data, err
}
