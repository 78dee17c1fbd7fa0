package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pawn-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DayBookRepository struct {
	DB *pgxpool.Pool
}

func NewDayBookRepository(db *pgxpool.Pool) *DayBookRepository {
	return &DayBookRepository{DB: db}
}

// Create stores a day book with its embedded transaction lists
func (r *DayBookRepository) Create(ctx context.Context, d *models.DayBook) error {
	disbursed, err := marshalTransactions(d.LoansDisbursed)
	if err != nil {
		return err
	}
	closed, err := marshalTransactions(d.ClosedLoans)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO day_books (date, opening_balance, closing_balance, loans_disbursed, closed_loans, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(ctx, query,
		d.Date, d.OpeningBalance, d.ClosingBalance, disbursed, closed, d.Notes,
	).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("failed to create day book: %w", err)
	}
	return nil
}

// ListByDateDesc returns every day book, newest first. This is the
// fallback loan source read during stock summary synchronization.
func (r *DayBookRepository) ListByDateDesc(ctx context.Context) ([]*models.DayBook, error) {
	return r.List(ctx, &models.DayBookFilter{})
}

// List returns day books with optional date filters
func (r *DayBookRepository) List(ctx context.Context, filter *models.DayBookFilter) ([]*models.DayBook, error) {
	var conditions []string
	var args []interface{}
	argNum := 1

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argNum))
		args = append(args, *filter.StartDate)
		argNum++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argNum))
		args = append(args, *filter.EndDate)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitClause := ""
	if filter.Limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT id, date, COALESCE(opening_balance, 0)::float8, COALESCE(closing_balance, 0)::float8,
			COALESCE(loans_disbursed, '[]'::jsonb), COALESCE(closed_loans, '[]'::jsonb),
			COALESCE(notes, ''), created_at
		FROM day_books
		%s
		ORDER BY date DESC, id DESC
		%s
	`, whereClause, limitClause)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day books: %w", err)
	}
	defer rows.Close()

	var books []*models.DayBook
	for rows.Next() {
		var d models.DayBook
		var disbursed, closed []byte
		if err := rows.Scan(
			&d.ID, &d.Date, &d.OpeningBalance, &d.ClosingBalance,
			&disbursed, &closed, &d.Notes, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(disbursed, &d.LoansDisbursed); err != nil {
			return nil, fmt.Errorf("day book %d: loans_disbursed: %w", d.ID, err)
		}
		if err := json.Unmarshal(closed, &d.ClosedLoans); err != nil {
			return nil, fmt.Errorf("day book %d: closed_loans: %w", d.ID, err)
		}
		books = append(books, &d)
	}

	return books, rows.Err()
}

func marshalTransactions(txns []models.DayBookTransaction) ([]byte, error) {
	if txns == nil {
		txns = []models.DayBookTransaction{}
	}
	return json.Marshal(txns)
}
