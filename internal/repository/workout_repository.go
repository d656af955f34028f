package repository

import (
	"context"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.WorkoutSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) ([]domain.WorkoutSession, error)
	// ListSince returns every session started in [from, now], exercises and
	// sets preloaded, oldest first. This is the history feed for the
	// suggestion engine.
	ListSince(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.WorkoutSession, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.WorkoutSession, error)
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.WorkoutSession) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *workoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	var workout domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&workout, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) ([]domain.WorkoutSession, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("started_at DESC")

	// Apply time filters
	if filter.From != nil {
		query = query.Where("started_at >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("started_at <= ?", filter.To)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: get records with started_at < cursor.StartedAt
			// or same started_at but id < cursor.ID
			query = query.Where(
				"(started_at < ?) OR (started_at = ? AND id < ?)",
				cursor.StartedAt, cursor.StartedAt, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var workouts []domain.WorkoutSession
	if err := query.Find(&workouts).Error; err != nil {
		return nil, err
	}

	return workouts, nil
}

func (r *workoutRepository) ListSince(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.WorkoutSession, error) {
	var workouts []domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND started_at >= ?", userID, from).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Sets", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("started_at ASC").
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *workoutRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.WorkoutSession, error) {
	var workout domain.WorkoutSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&workout).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Not found is not an error for idempotency check
		}
		return nil, err
	}
	return &workout, nil
}
