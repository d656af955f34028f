package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/persimmonlabs/hercules-gym-log-sub005/docs"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api/handler"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler       *handler.UserHandler
	workoutHandler    *handler.WorkoutHandler
	exerciseHandler   *handler.ExerciseHandler
	suggestionHandler *handler.SuggestionHandler
	coachingHandler   *handler.CoachingHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	workoutHandler *handler.WorkoutHandler,
	exerciseHandler *handler.ExerciseHandler,
	suggestionHandler *handler.SuggestionHandler,
	coachingHandler *handler.CoachingHandler,
) *Router {
	return &Router{
		userHandler:       userHandler,
		workoutHandler:    workoutHandler,
		exerciseHandler:   exerciseHandler,
		suggestionHandler: suggestionHandler,
		coachingHandler:   coachingHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Exercise catalog
		r.Route("/exercises", func(r chi.Router) {
			r.Post("/", rt.exerciseHandler.Create)
			r.Get("/", rt.exerciseHandler.List)
		})

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Workouts (nested under users)
			r.Route("/{userId}/workouts", func(r chi.Router) {
				r.Post("/", rt.workoutHandler.Create)
				r.Get("/", rt.workoutHandler.List)
				r.Get("/{workoutId}", rt.workoutHandler.GetByID)
			})

			// Suggestions and coaching (nested under users and exercises)
			r.Route("/{userId}/exercises/{exercise}", func(r chi.Router) {
				r.Get("/suggestion", rt.suggestionHandler.Get)
				r.Post("/adapt", rt.suggestionHandler.Adapt)
				r.Get("/coaching", rt.coachingHandler.Get)
			})
		})

		// Coaching feedback
		r.Post("/feedback", rt.coachingHandler.PostFeedback)
	})

	return r
}
