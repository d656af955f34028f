// Hercules Gym Log API
//
// REST API for logging workouts and generating set suggestions.
//
//	@title			Hercules Gym Log API
//	@version		1.0
//	@description	Log workout sessions with exercises and sets, and get smart weight/rep suggestions based on training history.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			workouts
//	@tag.description	Workout session logging endpoints
//
//	@tag.name			exercises
//	@tag.description	Exercise catalog endpoints
//
//	@tag.name			suggestions
//	@tag.description	Set suggestion and intra-session adaptation endpoints
//
//	@tag.name			coaching
//	@tag.description	LLM-backed coaching endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/api/handler"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/config"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/langfuse"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/llm"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/repository"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/seed"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/service"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.Exercise{}, &domain.WorkoutSession{}, &domain.ExerciseLog{}, &domain.SetLog{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "hercules-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Initialize Langfuse client for scores and prompt management
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})
	if !langfuseClient.IsEnabled() {
		log.Println("Langfuse not configured, feedback scores will be dropped")
	}

	// Load the coaching system prompt from Langfuse, falling back to the
	// built-in prompt when unavailable.
	systemPrompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:    cfg.LangfuseBaseURL,
		PublicKey:  cfg.LangfusePublicKey,
		SecretKey:  cfg.LangfuseSecretKey,
		PromptName: cfg.LangfusePromptName,
		SavePath:   "prompts/coaching-system.txt",
	})
	if err != nil {
		log.Printf("Coaching prompt not loaded, using built-in default: %v", err)
		systemPrompt = ""
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	workoutService := service.NewWorkoutService(workoutRepo, userRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	suggestionService := service.NewSuggestionService(workoutRepo, exerciseRepo, userRepo)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAICoachingModel, systemPrompt)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, coaching endpoint will be unavailable")
	}

	coachingService := service.NewCoachingService(suggestionService, openaiClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	coachingHandler := handler.NewCoachingHandler(coachingService, langfuseClient)

	// Setup router
	router := api.NewRouter(userHandler, workoutHandler, exerciseHandler, suggestionHandler, coachingHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
