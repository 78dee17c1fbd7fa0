package repositories

import (
	"context"
	"errors"

	"pawn-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

const employeeColumns = `id, name, COALESCE(phone, ''), email, role, COALESCE(salary, 0)::float8,
	joined_at, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.Role, &e.Salary,
		&e.JoinedAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO employees(name, phone, email, role, salary, joined_at, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		e.Name, e.Phone, e.Email, e.Role, e.Salary, e.JoinedAt, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// Upsert inserts or updates by email
func (r *EmployeeRepository) Upsert(ctx context.Context, e *models.Employee) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO employees(name, phone, email, role, salary, joined_at, is_active)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         ON CONFLICT (email) DO UPDATE
         SET name = EXCLUDED.name, phone = EXCLUDED.phone, role = EXCLUDED.role,
             salary = EXCLUDED.salary, joined_at = EXCLUDED.joined_at, is_active = EXCLUDED.is_active,
             updated_at = CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		e.Name, e.Phone, e.Email, e.Role, e.Salary, e.JoinedAt, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	e, err := scanEmployee(r.DB.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE employees SET name=$1, phone=$2, email=$3, role=$4, salary=$5, joined_at=$6,
             is_active=$7, updated_at=CURRENT_TIMESTAMP
         WHERE id=$8`,
		e.Name, e.Phone, e.Email, e.Role, e.Salary, e.JoinedAt, e.IsActive, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
