package repository

import (
	"context"
	"errors"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"gorm.io/gorm"
)

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) error
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	err := r.db.WithContext(ctx).Create(exercise).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *exerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	var exercises []domain.Exercise
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&exercises).Error; err != nil {
		return nil, err
	}
	return exercises, nil
}
