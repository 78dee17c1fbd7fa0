package services

import (
	"context"

	"pawn-backend/internal/models"
	"pawn-backend/internal/repositories"
)

type JewelService struct {
	Repo *repositories.JewelRepository
}

func NewJewelService(repo *repositories.JewelRepository) *JewelService {
	return &JewelService{Repo: repo}
}

func (s *JewelService) CreateJewel(ctx context.Context, req *models.JewelRequest) (*models.Jewel, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	j := jewelFromRequest(req)
	if err := s.Repo.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JewelService) GetJewel(ctx context.Context, id int) (*models.Jewel, error) {
	return s.Repo.Get(ctx, id)
}

func (s *JewelService) ListJewels(ctx context.Context) ([]*models.Jewel, error) {
	return s.Repo.List(ctx)
}

func (s *JewelService) UpdateJewel(ctx context.Context, id int, req *models.JewelRequest) (*models.Jewel, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	j := jewelFromRequest(req)
	j.ID = id
	if err := s.Repo.Update(ctx, j); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *JewelService) DeleteJewel(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func jewelFromRequest(req *models.JewelRequest) *models.Jewel {
	return &models.Jewel{
		Name:        req.Name,
		JewelType:   req.JewelType,
		Purity:      req.Purity,
		RatePerGram: req.RatePerGram,
		Description: req.Description,
	}
}
