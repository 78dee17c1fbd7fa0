package repositories

import (
	"context"
	"errors"

	"pawn-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JewelRepository struct {
	DB *pgxpool.Pool
}

func NewJewelRepository(db *pgxpool.Pool) *JewelRepository {
	return &JewelRepository{DB: db}
}

func (r *JewelRepository) Create(ctx context.Context, j *models.Jewel) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO jewels(name, jewel_type, purity, rate_per_gram, description)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		j.Name, j.JewelType, j.Purity, j.RatePerGram, j.Description,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

// Upsert inserts or updates by catalogue name
func (r *JewelRepository) Upsert(ctx context.Context, j *models.Jewel) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO jewels(name, jewel_type, purity, rate_per_gram, description)
         VALUES($1, $2, $3, $4, $5)
         ON CONFLICT (name) DO UPDATE
         SET jewel_type = EXCLUDED.jewel_type, purity = EXCLUDED.purity,
             rate_per_gram = EXCLUDED.rate_per_gram, description = EXCLUDED.description,
             updated_at = CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		j.Name, j.JewelType, j.Purity, j.RatePerGram, j.Description,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JewelRepository) Get(ctx context.Context, id int) (*models.Jewel, error) {
	var j models.Jewel
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, jewel_type, COALESCE(purity, ''), COALESCE(rate_per_gram, 0)::float8,
             COALESCE(description, ''), created_at, updated_at
         FROM jewels WHERE id=$1`, id,
	).Scan(&j.ID, &j.Name, &j.JewelType, &j.Purity, &j.RatePerGram, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JewelRepository) List(ctx context.Context) ([]*models.Jewel, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, jewel_type, COALESCE(purity, ''), COALESCE(rate_per_gram, 0)::float8,
             COALESCE(description, ''), created_at, updated_at
         FROM jewels ORDER BY jewel_type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jewels []*models.Jewel
	for rows.Next() {
		var j models.Jewel
		if err := rows.Scan(&j.ID, &j.Name, &j.JewelType, &j.Purity, &j.RatePerGram,
			&j.Description, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jewels = append(jewels, &j)
	}
	return jewels, rows.Err()
}

func (r *JewelRepository) Update(ctx context.Context, j *models.Jewel) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE jewels SET name=$1, jewel_type=$2, purity=$3, rate_per_gram=$4, description=$5,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		j.Name, j.JewelType, j.Purity, j.RatePerGram, j.Description, j.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JewelRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM jewels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
