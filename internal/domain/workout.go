package domain

import (
	"time"

	"github.com/google/uuid"
)

type WorkoutSession struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index:idx_workouts_user_started" json:"user_id"`
	StartedAt       time.Time     `gorm:"not null;index:idx_workouts_user_started,sort:desc" json:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	ClientRequestID *string       `gorm:"type:varchar(255);uniqueIndex:idx_workout_client_request,where:client_request_id IS NOT NULL" json:"client_request_id,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	Exercises       []ExerciseLog `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (WorkoutSession) TableName() string {
	return "workout_sessions"
}

// ExerciseLog is one exercise performed within a workout session.
type ExerciseLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	WorkoutID    uuid.UUID `gorm:"type:uuid;not null;index" json:"workout_id"`
	ExerciseName string    `gorm:"type:varchar(128);not null;index" json:"exercise_name"`
	Position     int       `gorm:"not null" json:"position"`
	Sets         []SetLog  `gorm:"foreignKey:ExerciseLogID;constraint:OnDelete:CASCADE" json:"sets"`
}

func (ExerciseLog) TableName() string {
	return "exercise_logs"
}

// SetLog is a single set within an exercise log. Weight and reps are
// optional because cardio/duration exercises log duration or distance
// instead.
type SetLog struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ExerciseLogID   uuid.UUID `gorm:"type:uuid;not null;index" json:"exercise_log_id"`
	Position        int       `gorm:"not null" json:"position"`
	Weight          *float64  `gorm:"type:numeric" json:"weight,omitempty"`
	Reps            *int      `gorm:"type:smallint" json:"reps,omitempty"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	DistanceMeters  *float64  `json:"distance_meters,omitempty"`
	Completed       bool      `gorm:"not null;default:false" json:"completed"`
}

func (SetLog) TableName() string {
	return "set_logs"
}

// CreateWorkoutRequest is the request body for logging a workout session.
// @Description Request payload for recording a workout session with its exercises and sets.
type CreateWorkoutRequest struct {
	// Workout start time in RFC3339 format
	StartedAt time.Time `json:"started_at" validate:"required" example:"2024-01-15T18:00:00Z"`
	// Workout completion time (must be after started_at when present)
	CompletedAt *time.Time `json:"completed_at,omitempty" validate:"omitempty,gtfield=StartedAt" example:"2024-01-15T19:10:00Z"`
	// Free-form notes
	Notes string `json:"notes,omitempty" validate:"max=2000"`
	// Optional client-generated ID for idempotent requests (max 255 chars)
	ClientRequestID *string `json:"client_request_id,omitempty" validate:"omitempty,max=255"`
	// Exercises performed, in order
	Exercises []CreateExerciseLogRequest `json:"exercises" validate:"required,min=1,dive"`
}

// CreateExerciseLogRequest is one exercise entry within a workout request.
type CreateExerciseLogRequest struct {
	// Catalog name of the exercise
	ExerciseName string `json:"exercise_name" validate:"required,max=128" example:"Barbell Bench Press"`
	// Sets performed, in order
	Sets []CreateSetRequest `json:"sets" validate:"required,min=1,dive"`
}

// CreateSetRequest is one set entry within an exercise log request.
type CreateSetRequest struct {
	// Load used, in the user's input unit
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,min=0" example:"100"`
	// Repetitions performed
	Reps *int `json:"reps,omitempty" validate:"omitempty,min=0,max=100" example:"8"`
	// Duration for timed sets
	DurationSeconds *int `json:"duration_seconds,omitempty" validate:"omitempty,min=0"`
	// Distance for cardio sets
	DistanceMeters *float64 `json:"distance_meters,omitempty" validate:"omitempty,min=0"`
	// True when the set was completed as logged
	Completed bool `json:"completed" example:"true"`
}

// WorkoutResponse is the response body for workout endpoints.
// @Description Workout session record.
type WorkoutResponse struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	ClientRequestID *string       `json:"client_request_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Exercises       []ExerciseLog `json:"exercises"`
}

func (w *WorkoutSession) ToResponse() WorkoutResponse {
	return WorkoutResponse{
		ID:              w.ID,
		UserID:          w.UserID,
		StartedAt:       w.StartedAt,
		CompletedAt:     w.CompletedAt,
		Notes:           w.Notes,
		ClientRequestID: w.ClientRequestID,
		CreatedAt:       w.CreatedAt,
		Exercises:       w.Exercises,
	}
}

// WorkoutListResponse is the response body for listing workouts.
// @Description Paginated list of workout sessions.
type WorkoutListResponse struct {
	// Array of workout records
	Data []WorkoutResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// WorkoutFilter contains filter parameters for listing workouts
type WorkoutFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
