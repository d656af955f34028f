package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/langfuse"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/llm"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/service"
	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// CoachingHandler handles LLM coaching endpoints.
type CoachingHandler struct {
	coachingService service.CoachingService
	langfuseClient  langfuse.Client
}

// NewCoachingHandler creates a new CoachingHandler.
func NewCoachingHandler(coachingService service.CoachingService, langfuseClient langfuse.Client) *CoachingHandler {
	return &CoachingHandler{
		coachingService: coachingService,
		langfuseClient:  langfuseClient,
	}
}

// Get handles GET /v1/users/{userId}/exercises/{exercise}/coaching
// @Summary Get LLM coaching notes for an exercise
// @Description Generate the next-session suggestion plus LLM coaching notes explaining the detected pattern and targets.
// @Tags coaching
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param exercise path string true "Exercise name" example(Barbell Bench Press)
// @Param target_sets query int false "Number of working sets to plan for (1-10)" example(3)
// @Param exclude_workout_id query string false "Workout UUID to exclude from history" format(uuid)
// @Success 200 {object} domain.CoachingResponse "Suggestion with coaching notes"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User or exercise not found"
// @Failure 422 {object} problem.Problem "Exercise does not support suggestions"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /users/{userId}/exercises/{exercise}/coaching [get]
func (h *CoachingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	exerciseName := chi.URLParam(r, "exercise")
	if exerciseName == "" {
		problem.BadRequest("Exercise name is required").Write(w)
		return
	}

	opts, fieldErrors := parseSuggestionOptions(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	result, err := h.coachingService.Generate(r.Context(), userID, exerciseName, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User or exercise not found").Write(w)
			return
		}
		if errors.Is(err, domain.ErrUnsupportedExercise) {
			problem.New(http.StatusUnprocessableEntity, "unsupported-exercise", "Unsupported Exercise", "This exercise does not support set suggestions").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIUnavailable) {
			problem.New(http.StatusServiceUnavailable, "service-unavailable", "Service Unavailable", "OpenAI service is not configured").Write(w)
			return
		}
		if errors.Is(err, llm.ErrOpenAIRequest) || errors.Is(err, llm.ErrOpenAIResponse) {
			problem.New(http.StatusBadGateway, "llm-error", "LLM Error", "Failed to generate coaching notes from LLM").Write(w)
			return
		}
		problem.InternalError("Failed to generate coaching notes").Write(w)
		return
	}

	// Attach a trace ID to the response for feedback linking. Prefer the
	// OTEL span; when tracing is off, create a standalone Langfuse trace.
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		result.TraceID = span.SpanContext().TraceID().String()
	} else if h.langfuseClient.IsEnabled() {
		traceID, traceErr := h.langfuseClient.CreateTrace(r.Context(), langfuse.TraceInput{
			UserID: userID.String(),
			Name:   "workout-coaching",
			Input:  map[string]any{"exercise": exerciseName, "target_sets": opts.TargetSets},
			Output: result.Insights,
			Tags:   []string{"coaching"},
		})
		if traceErr == nil {
			result.TraceID = traceID
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// FeedbackRequest is the request body for coaching feedback.
// @Description Request body for submitting feedback on coaching notes.
type FeedbackRequest struct {
	// Trace ID from the coaching response
	TraceID string `json:"trace_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" example:"The targets matched how the session felt."`
}

// PostFeedback handles POST /v1/feedback
// @Summary Submit feedback on coaching notes
// @Description Submit a user rating and optional comment for a previous coaching response.
// @Tags coaching
// @Accept json
// @Produce json
// @Param body body FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /feedback [post]
func (h *CoachingHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Write(w)
		return
	}

	// Validate required fields
	if req.TraceID == "" {
		problem.BadRequest("trace_id is required").Write(w)
		return
	}
	if req.Score < 1 || req.Score > 5 {
		problem.BadRequest("score must be between 1 and 5").Write(w)
		return
	}

	// Create score in Langfuse (errors are logged but don't fail the request)
	_ = h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	})

	w.WriteHeader(http.StatusNoContent)
}
