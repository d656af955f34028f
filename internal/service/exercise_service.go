package service

import (
	"context"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/repository"
)

// ExerciseService manages the exercise catalog.
type ExerciseService interface {
	Create(ctx context.Context, req *domain.CreateExerciseRequest) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

type exerciseService struct {
	repo repository.ExerciseRepository
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(repo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{repo: repo}
}

func (s *exerciseService) Create(ctx context.Context, req *domain.CreateExerciseRequest) (*domain.Exercise, error) {
	exercise := &domain.Exercise{
		Name:         req.Name,
		Type:         req.Type,
		Equipment:    req.Equipment,
		IsCompound:   req.IsCompound,
		IsBodyweight: req.IsBodyweight,
		TracksGPS:    req.TracksGPS,
	}

	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}

	return exercise, nil
}

func (s *exerciseService) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *exerciseService) List(ctx context.Context) ([]domain.Exercise, error) {
	return s.repo.List(ctx)
}
