package services

import (
	"context"

	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
	"pawn-backend/internal/timeutil"
)

type DayBookService struct {
	Repo *repositories.DayBookRepository
}

func NewDayBookService(repo *repositories.DayBookRepository) *DayBookService {
	return &DayBookService{Repo: repo}
}

func (s *DayBookService) CreateDayBook(ctx context.Context, req *models.CreateDayBookRequest) (*models.DayBook, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"Date": "datetime"}}
	}

	d := &models.DayBook{
		Date:           date,
		OpeningBalance: req.OpeningBalance,
		ClosingBalance: req.ClosingBalance,
		LoansDisbursed: req.LoansDisbursed,
		ClosedLoans:    req.ClosedLoans,
		Notes:          req.Notes,
	}
	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DayBookService) ListDayBooks(ctx context.Context, filter *models.DayBookFilter) ([]*models.DayBook, error) {
	return s.Repo.List(ctx, filter)
}
