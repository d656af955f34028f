package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/repository"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/suggestion"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SuggestionBundle is the full analysis produced for one suggestion call.
// Coaching reuses it so the LLM sees the same data the client got.
type SuggestionBundle struct {
	Exercise *domain.Exercise
	Analysis domain.PatternAnalysis
	Result   domain.SmartSuggestionResult
}

// SuggestionService analyzes workout history and produces set targets.
type SuggestionService interface {
	// Suggest returns per-set targets for the user's next session of an exercise.
	Suggest(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.SmartSuggestionResult, error)
	// Analyze runs the same pipeline as Suggest but keeps the intermediate analysis.
	Analyze(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*SuggestionBundle, error)
	// Adapt re-targets the remaining sets of an in-progress session.
	Adapt(ctx context.Context, userID uuid.UUID, exerciseName string, req *domain.AdaptRequest) (*domain.AdaptResponse, error)
}

type suggestionService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	userRepo     repository.UserRepository
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	userRepo repository.UserRepository,
) SuggestionService {
	return &suggestionService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

func (s *suggestionService) Suggest(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.SmartSuggestionResult, error) {
	bundle, err := s.Analyze(ctx, userID, exerciseName, opts)
	if err != nil {
		return nil, err
	}
	return &bundle.Result, nil
}

func (s *suggestionService) Analyze(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*SuggestionBundle, error) {
	tracer := otel.Tracer("hercules-api/suggestion")
	ctx, span := tracer.Start(ctx, "SuggestionService.Analyze",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("exercise.name", exerciseName),
			attribute.Int("target_sets", opts.TargetSets),
		),
	)
	defer span.End()

	now := time.Now().UTC()
	exercise, points, err := s.history(ctx, userID, exerciseName, opts.ExcludeWorkoutID, now)
	if err != nil {
		return nil, err
	}

	// Attach input payload for Langfuse
	inputPayload := map[string]any{
		"user_id":       userID.String(),
		"exercise":      exercise.Name,
		"target_sets":   opts.TargetSets,
		"history_count": len(points),
	}
	if inputJSON, err := json.Marshal(inputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	profile := exercise.Profile()
	analysis := suggestion.Classify(points, profile, now)
	result := suggestion.Generate(analysis, profile, opts.TargetSets)

	span.SetAttributes(
		attribute.String("suggestion.pattern", string(analysis.Pattern)),
		attribute.Float64("suggestion.confidence", analysis.Confidence),
		attribute.Int("suggestion.sessions_used", len(analysis.DataPoints)),
	)

	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(result); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return &SuggestionBundle{
		Exercise: exercise,
		Analysis: analysis,
		Result:   result,
	}, nil
}

func (s *suggestionService) Adapt(ctx context.Context, userID uuid.UUID, exerciseName string, req *domain.AdaptRequest) (*domain.AdaptResponse, error) {
	tracer := otel.Tracer("hercules-api/suggestion")
	ctx, span := tracer.Start(ctx, "SuggestionService.Adapt",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("exercise.name", exerciseName),
		),
	)
	defer span.End()

	now := time.Now().UTC()

	var excludeID uuid.UUID
	if req.ExcludeWorkoutID != nil {
		excludeID = *req.ExcludeWorkoutID
	}

	exercise, points, err := s.history(ctx, userID, exerciseName, excludeID, now)
	if err != nil {
		return nil, err
	}

	profile := exercise.Profile()
	analysis := suggestion.Classify(points, profile, now)

	state := req.SessionState
	shift := suggestion.AdaptSet(suggestion.AdaptInput{
		Actual:    req.CompletedSet,
		Target:    req.PredictedTarget,
		Remaining: req.RemainingTargets,
		Profile:   profile,
		Analysis:  analysis,
		State:     &state,
		Now:       now,
	})

	span.SetAttributes(
		attribute.Bool("adapt.shifted", shift.Shifted),
		attribute.Int("adapt.pattern_shifts_used", state.PatternShiftsUsed),
	)

	return &domain.AdaptResponse{
		Shifted:      shift.Shifted,
		NewTargets:   shift.NewTargets,
		SessionState: state,
	}, nil
}

// history validates the user, resolves the exercise from the catalog, and
// extracts the per-session data points for the lookback window.
func (s *suggestionService) history(ctx context.Context, userID uuid.UUID, exerciseName string, excludeID uuid.UUID, now time.Time) (*domain.Exercise, []domain.ExerciseDataPoint, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, domain.ErrNotFound
	}

	exercise, err := s.exerciseRepo.GetByName(ctx, exerciseName)
	if err != nil {
		return nil, nil, err
	}
	if !exercise.SupportsSuggestions() {
		return nil, nil, domain.ErrUnsupportedExercise
	}

	from := now.Add(-suggestion.LookbackWeeks * 7 * 24 * time.Hour)
	sessions, err := s.workoutRepo.ListSince(ctx, userID, from)
	if err != nil {
		return nil, nil, err
	}

	points := suggestion.BuildDataPoints(sessions, exercise.Name, excludeID, now)
	return exercise, points, nil
}
