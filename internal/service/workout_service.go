package service

import (
	"context"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/repository"
	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/pagination"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type WorkoutService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateWorkoutRequest) (*domain.WorkoutSession, bool, error)
	GetByID(ctx context.Context, userID, workoutID uuid.UUID) (*domain.WorkoutSession, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) (*domain.WorkoutListResponse, error)
}

type workoutService struct {
	repo     repository.WorkoutRepository
	userRepo repository.UserRepository
}

func NewWorkoutService(repo repository.WorkoutRepository, userRepo repository.UserRepository) WorkoutService {
	return &workoutService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Create logs a workout session with its exercises and sets.
// Returns (workout, isExisting, error) - isExisting is true if returning an
// existing session due to idempotency.
func (s *workoutService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateWorkoutRequest) (*domain.WorkoutSession, bool, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, domain.ErrNotFound
	}

	// Check for idempotency (duplicate client_request_id)
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	workout := &domain.WorkoutSession{
		UserID:          userID,
		StartedAt:       req.StartedAt.UTC(),
		Notes:           req.Notes,
		ClientRequestID: req.ClientRequestID,
	}
	if req.CompletedAt != nil {
		completed := req.CompletedAt.UTC()
		workout.CompletedAt = &completed
	}

	for i, exercise := range req.Exercises {
		log := domain.ExerciseLog{
			ExerciseName: exercise.ExerciseName,
			Position:     i,
		}
		for j, set := range exercise.Sets {
			log.Sets = append(log.Sets, domain.SetLog{
				Position:        j,
				Weight:          set.Weight,
				Reps:            set.Reps,
				DurationSeconds: set.DurationSeconds,
				DistanceMeters:  set.DistanceMeters,
				Completed:       set.Completed,
			})
		}
		workout.Exercises = append(workout.Exercises, log)
	}

	if err := s.repo.Create(ctx, workout); err != nil {
		return nil, false, err
	}

	return workout, false, nil
}

func (s *workoutService) GetByID(ctx context.Context, userID, workoutID uuid.UUID) (*domain.WorkoutSession, error) {
	workout, err := s.repo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	// Ownership check: a foreign workout is indistinguishable from a missing one
	if workout.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) (*domain.WorkoutListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	workouts, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(workouts) > limit
	if hasMore {
		workouts = workouts[:limit]
	}

	response := &domain.WorkoutListResponse{
		Data: lo.Map(workouts, func(w domain.WorkoutSession, _ int) domain.WorkoutResponse {
			return w.ToResponse()
		}),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	if hasMore && len(workouts) > 0 {
		last := workouts[len(workouts)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			StartedAt: last.StartedAt,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
