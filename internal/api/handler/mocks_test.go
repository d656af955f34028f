package handler

import (
	"context"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/langfuse"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/service"
	"github.com/google/uuid"
)

// MockWorkoutService is a mock implementation of WorkoutService
type MockWorkoutService struct {
	createFunc  func(ctx context.Context, userID uuid.UUID, req *domain.CreateWorkoutRequest) (*domain.WorkoutSession, bool, error)
	getByIDFunc func(ctx context.Context, userID, workoutID uuid.UUID) (*domain.WorkoutSession, error)
	listFunc    func(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) (*domain.WorkoutListResponse, error)
}

func (m *MockWorkoutService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateWorkoutRequest) (*domain.WorkoutSession, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.WorkoutSession{
		ID:        uuid.New(),
		UserID:    userID,
		StartedAt: req.StartedAt,
		CreatedAt: time.Now(),
	}, false, nil
}

func (m *MockWorkoutService) GetByID(ctx context.Context, userID, workoutID uuid.UUID) (*domain.WorkoutSession, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, userID, workoutID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockWorkoutService) List(ctx context.Context, userID uuid.UUID, filter domain.WorkoutFilter) (*domain.WorkoutListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.WorkoutListResponse{
		Data:       []domain.WorkoutResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockExerciseService is a mock implementation of ExerciseService
type MockExerciseService struct {
	createFunc    func(ctx context.Context, req *domain.CreateExerciseRequest) (*domain.Exercise, error)
	getByNameFunc func(ctx context.Context, name string) (*domain.Exercise, error)
	listFunc      func(ctx context.Context) ([]domain.Exercise, error)
}

func (m *MockExerciseService) Create(ctx context.Context, req *domain.CreateExerciseRequest) (*domain.Exercise, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.Exercise{
		ID:        uuid.New(),
		Name:      req.Name,
		Type:      req.Type,
		Equipment: req.Equipment,
	}, nil
}

func (m *MockExerciseService) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, domain.ErrNotFound
}

func (m *MockExerciseService) List(ctx context.Context) ([]domain.Exercise, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Exercise{}, nil
}

// MockSuggestionService is a mock implementation of SuggestionService
type MockSuggestionService struct {
	suggestFunc func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.SmartSuggestionResult, error)
	analyzeFunc func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*service.SuggestionBundle, error)
	adaptFunc   func(ctx context.Context, userID uuid.UUID, exerciseName string, req *domain.AdaptRequest) (*domain.AdaptResponse, error)
}

func (m *MockSuggestionService) Suggest(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.SmartSuggestionResult, error) {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, userID, exerciseName, opts)
	}
	return &domain.SmartSuggestionResult{
		Sets: []domain.SetTarget{
			{Weight: 105, Reps: 8},
			{Weight: 105, Reps: 8},
			{Weight: 105, Reps: 8},
		},
		HistorySetCount: 3,
		Pattern:         domain.PatternProgressiveOverload,
		Confidence:      0.8,
	}, nil
}

func (m *MockSuggestionService) Analyze(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*service.SuggestionBundle, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, userID, exerciseName, opts)
	}
	return &service.SuggestionBundle{}, nil
}

func (m *MockSuggestionService) Adapt(ctx context.Context, userID uuid.UUID, exerciseName string, req *domain.AdaptRequest) (*domain.AdaptResponse, error) {
	if m.adaptFunc != nil {
		return m.adaptFunc(ctx, userID, exerciseName, req)
	}
	return &domain.AdaptResponse{
		Shifted:      false,
		SessionState: req.SessionState,
	}, nil
}

// MockCoachingService is a mock implementation of CoachingService
type MockCoachingService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error)
}

func (m *MockCoachingService) Generate(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, exerciseName, opts)
	}
	return &domain.CoachingResponse{
		Insights: domain.CoachingOutput{
			Summary:      "Steady progress.",
			Observations: []string{"Load climbing weekly"},
			Guidance:     []string{"Stick to the plan"},
		},
	}, nil
}

// mockLangfuseClient for testing
type mockLangfuseClient struct {
	enabled    bool
	traceCalls int
	lastTrace  langfuse.TraceInput
	scoreCalls int
	lastScore  langfuse.ScoreInput
}

func (m *mockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *mockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	m.traceCalls++
	m.lastTrace = in
	return "trace-" + in.Name, nil
}

func (m *mockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreCalls++
	m.lastScore = in
	return nil
}
