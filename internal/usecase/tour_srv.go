package usecase

import (
	"context"
	"fmt"

	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/response"

	"go.uber.org/zap"
)

type TourService interface {
	GetTours(ctx context.Context) ([]response.TourResponse, error)
	GetTourByID(ctx context.Context, tourID int) (*response.TourResponse, error)
}

type tourService struct {
	repo repository.TourRepository
	log  *zap.Logger
}

func NewTourService(repo repository.TourRepository, log *zap.Logger) TourService {
	return &tourService{
		repo: repo,
		log:  log.With(zap.String("service", "tour")),
	}
}

func (s *tourService) GetTours(ctx context.Context) ([]response.TourResponse, error) {
	tours, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list tours", zap.Error(err))
		return nil, fmt.Errorf("get tours: %w", err)
	}

	out := make([]response.TourResponse, len(tours))
	for i, t := range tours {
		out[i] = response.TourToResponse(t)
	}
	return out, nil
}

func (s *tourService) GetTourByID(ctx context.Context, tourID int) (*response.TourResponse, error) {
	tour, err := s.repo.FindByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("get tour %d: %w", tourID, err)
	}

	resp := response.TourToResponse(tour)
	return &resp, nil
}
