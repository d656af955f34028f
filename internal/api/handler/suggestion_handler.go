package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api/validation"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/service"
	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SuggestionHandler struct {
	service service.SuggestionService
}

func NewSuggestionHandler(service service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{service: service}
}

// Get handles GET /v1/users/{userId}/exercises/{exercise}/suggestion
// @Summary Get set suggestions for the next session
// @Description Analyze the last 8 weeks of history for an exercise and return per-set weight/rep targets with the detected training pattern.
// @Tags suggestions
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param exercise path string true "Exercise name" example(Barbell Bench Press)
// @Param target_sets query integer false "Number of set targets to return" default(3) minimum(1) maximum(10)
// @Param exclude_workout_id query string false "In-progress workout UUID to exclude from history" format(uuid)
// @Success 200 {object} domain.SmartSuggestionResult "Per-set targets with pattern and confidence"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Failure 404 {object} problem.Problem "User or exercise not found"
// @Failure 422 {object} problem.Problem "Exercise does not support suggestions"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/exercises/{exercise}/suggestion [get]
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Suggest(r.Context(), userID, exerciseName, opts)
	if err != nil {
		writeSuggestionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Adapt handles POST /v1/users/{userId}/exercises/{exercise}/adapt
// @Summary Adapt remaining targets mid-session
// @Description Re-target the not-yet-completed sets of an in-progress session after a set finishes. Echo the returned session_state on the next call.
// @Tags suggestions
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param exercise path string true "Exercise name" example(Barbell Bench Press)
// @Param request body domain.AdaptRequest true "Completed set, remaining targets and session state"
// @Success 200 {object} domain.AdaptResponse "Shift decision with updated session state"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User or exercise not found"
// @Failure 422 {object} problem.Problem "Exercise does not support suggestions"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/exercises/{exercise}/adapt [post]
func (h *SuggestionHandler) Adapt(w http.ResponseWriter, r *http.Request) {
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

	var req domain.AdaptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.Adapt(r.Context(), userID, exerciseName, &req)
	if err != nil {
		writeSuggestionError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func parseSuggestionOptions(r *http.Request) (domain.SuggestionOptions, []problem.FieldError) {
	var opts domain.SuggestionOptions
	var fieldErrors []problem.FieldError

	if setsStr := r.URL.Query().Get("target_sets"); setsStr != "" {
		sets, err := strconv.Atoi(setsStr)
		if err != nil || sets < 1 || sets > 10 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "target_sets",
				Message: "must be an integer between 1 and 10",
			})
		} else {
			opts.TargetSets = sets
		}
	}

	if excludeStr := r.URL.Query().Get("exclude_workout_id"); excludeStr != "" {
		excludeID, err := uuid.Parse(excludeStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "exclude_workout_id",
				Message: "must be a valid UUID",
			})
		} else {
			opts.ExcludeWorkoutID = excludeID
		}
	}

	if len(fieldErrors) > 0 {
		return opts, fieldErrors
	}

	return opts, nil
}

func writeSuggestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("User or exercise not found").Write(w)
	case errors.Is(err, domain.ErrUnsupportedExercise):
		problem.New(http.StatusUnprocessableEntity, "unsupported-exercise", "Unsupported Exercise", "This exercise does not support set suggestions").Write(w)
	default:
		problem.InternalError("Failed to compute suggestion").Write(w)
	}
}
