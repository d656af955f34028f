package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/google/uuid"
)

// MockWorkoutRepository is a mock implementation of WorkoutRepository
type MockWorkoutRepository struct {
	workouts        map[uuid.UUID]*domain.WorkoutSession
	clientRequestID map[string]*domain.WorkoutSession
	err             error
}

func NewMockWorkoutRepository() *MockWorkoutRepository {
	return &MockWorkoutRepository{
		workouts:        make(map[uuid.UUID]*domain.WorkoutSession),
		clientRequestID: make(map[string]*domain.WorkoutSession),
	}
}

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutSession) error {
	if m.err != nil {
		return m.err
	}
	if workout.ID == uuid.Nil {
		workout.ID = uuid.New()
	}
	workout.CreatedAt = time.Now()
	m.workouts[workout.ID] = workout
	if workout.ClientRequestID != nil {
		key := workout.UserID.String() + ":" + *workout.ClientRequestID
		m.clientRequestID[key] = workout
	}
	return nil
}

func (m *MockWorkoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WorkoutSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	workout, ok := m.workouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return workout, nil
}

func (m *MockWorkoutRepository) List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) ([]domain.WorkoutSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.WorkoutSession
	for _, workout := range m.workouts {
		if workout.UserID != userID {
			continue
		}
		if filter.From != nil && workout.StartedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && workout.StartedAt.After(*filter.To) {
			continue
		}
		result = append(result, *workout)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	return result, nil
}

func (m *MockWorkoutRepository) ListSince(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.WorkoutSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.WorkoutSession
	for _, workout := range m.workouts {
		if workout.UserID == userID && !workout.StartedAt.Before(from) {
			result = append(result, *workout)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result, nil
}

func (m *MockWorkoutRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.WorkoutSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	key := userID.String() + ":" + clientRequestID
	workout, ok := m.clientRequestID[key]
	if !ok {
		return nil, nil
	}
	return workout, nil
}

// MockExerciseRepository is a mock implementation of ExerciseRepository
type MockExerciseRepository struct {
	exercises map[string]*domain.Exercise
	err       error
}

func NewMockExerciseRepository() *MockExerciseRepository {
	return &MockExerciseRepository{
		exercises: make(map[string]*domain.Exercise),
	}
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) error {
	if m.err != nil {
		return m.err
	}
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	key := strings.ToLower(exercise.Name)
	if _, ok := m.exercises[key]; ok {
		return domain.ErrConflict
	}
	m.exercises[key] = exercise
	return nil
}

func (m *MockExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	if m.err != nil {
		return nil, m.err
	}
	exercise, ok := m.exercises[strings.ToLower(name)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return exercise, nil
}

func (m *MockExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Exercise
	for _, exercise := range m.exercises {
		result = append(result, *exercise)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockCoachingLLM is a mock implementation of llm.CoachingLLM
type MockCoachingLLM struct {
	output      *domain.CoachingOutput
	err         error
	lastContext *domain.CoachingContext
}

func (m *MockCoachingLLM) GenerateCoaching(ctx context.Context, coachingCtx *domain.CoachingContext) (*domain.CoachingOutput, error) {
	m.lastContext = coachingCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}
