package services

import (
	"context"

	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/timeutil"
)

type EmployeeService struct {
	Repo *repositories.EmployeeRepository
}

func NewEmployeeService(repo *repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, req *models.EmployeeRequest) (*models.Employee, error) {
	e, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return s.Repo.Get(ctx, id)
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	return s.Repo.List(ctx)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int, req *models.EmployeeRequest) (*models.Employee, error) {
	e, err := employeeFromRequest(req)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.Repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func employeeFromRequest(req *models.EmployeeRequest) (*models.Employee, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	joined := timeutil.Now()
	if req.JoinedAt != "" {
		d, err := timeutil.ParseDate(req.JoinedAt)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"JoinedAt": "datetime"}}
		}
		joined = d
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return &models.Employee{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Role:     req.Role,
		Salary:   req.Salary,
		JoinedAt: joined,
		IsActive: active,
	}, nil
}
