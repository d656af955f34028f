package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api/validation"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/service"
	"github.com/persimmonlabs/hercules-gym-log-sub005/pkg/problem"
	"github.com/samber/lo"
)

type ExerciseHandler struct {
	service service.ExerciseService
}

func NewExerciseHandler(service service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

// Create handles POST /v1/exercises
// @Summary Add an exercise to the catalog
// @Description Register an exercise with its measurement type and equipment class. Names are unique (case-insensitive).
// @Tags exercises
// @Accept json
// @Produce json
// @Param request body domain.CreateExerciseRequest true "Exercise catalog entry"
// @Success 201 {object} domain.ExerciseResponse "Exercise created"
// @Failure 400 {object} problem.Problem "Invalid request body"
// @Failure 409 {object} problem.Problem "Exercise name already exists"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /exercises [post]
func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	exercise, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			problem.Conflict("Exercise name already exists").Write(w)
			return
		}
		problem.InternalError("Failed to create exercise").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(exercise.ToResponse())
}

// List handles GET /v1/exercises
// @Summary List the exercise catalog
// @Description Fetch every catalog entry, sorted by name.
// @Tags exercises
// @Produce json
// @Success 200 {array} domain.ExerciseResponse "Exercise catalog"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /exercises [get]
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.service.List(r.Context())
	if err != nil {
		problem.InternalError("Failed to list exercises").Write(w)
		return
	}

	responses := lo.Map(exercises, func(e domain.Exercise, _ int) domain.ExerciseResponse {
		return e.ToResponse()
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}
