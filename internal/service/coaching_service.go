package service

import (
	"context"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/llm"
	"github.com/google/uuid"
)

// CoachingService generates LLM coaching notes around a suggestion.
type CoachingService interface {
	// Generate creates coaching notes for the user's next session of an exercise.
	Generate(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error)
}

type coachingService struct {
	suggestionService SuggestionService
	llmClient         llm.CoachingLLM
}

// NewCoachingService creates a new CoachingService.
func NewCoachingService(suggestionService SuggestionService, llmClient llm.CoachingLLM) CoachingService {
	return &coachingService{
		suggestionService: suggestionService,
		llmClient:         llmClient,
	}
}

func (s *coachingService) Generate(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
	bundle, err := s.suggestionService.Analyze(ctx, userID, exerciseName, opts)
	if err != nil {
		return nil, err
	}

	exerciseResp := bundle.Exercise.ToResponse()

	coachingCtx := &domain.CoachingContext{
		Exercise:       exerciseResp,
		Pattern:        bundle.Analysis.Pattern,
		Confidence:     bundle.Analysis.Confidence,
		SetPattern:     bundle.Analysis.SetPattern,
		SessionsUsed:   len(bundle.Analysis.DataPoints),
		RecentSessions: bundle.Analysis.DataPoints,
		Suggestion:     bundle.Result,
	}

	output, err := s.llmClient.GenerateCoaching(ctx, coachingCtx)
	if err != nil {
		return nil, err
	}

	return &domain.CoachingResponse{
		Exercise:   exerciseResp,
		Suggestion: bundle.Result,
		Insights:   *output,
	}, nil
}
