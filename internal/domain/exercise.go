package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExerciseType represents how an exercise is measured and logged.
// @Description Measurement category of an exercise.
type ExerciseType string

const (
	// ExerciseTypeWeight is a standard weighted exercise (barbell, dumbbell, machine...)
	ExerciseTypeWeight ExerciseType = "weight"
	// ExerciseTypeBodyweight is performed against bodyweight, optionally with added load
	ExerciseTypeBodyweight ExerciseType = "bodyweight"
	// ExerciseTypeRepsOnly tracks repetitions without any load
	ExerciseTypeRepsOnly ExerciseType = "reps_only"
	// ExerciseTypeAssisted uses assistance weight that reduces effective load
	ExerciseTypeAssisted ExerciseType = "assisted"
	// ExerciseTypeCardio tracks duration and distance
	ExerciseTypeCardio ExerciseType = "cardio"
	// ExerciseTypeDuration tracks time only (planks, holds)
	ExerciseTypeDuration ExerciseType = "duration"
)

// Equipment identifies the equipment class of an exercise, used to select
// the weight increment policy when rounding suggested loads.
// @Description Equipment class of an exercise.
type Equipment string

const (
	EquipmentBarbell       Equipment = "barbell"
	EquipmentSmithMachine  Equipment = "smith_machine"
	EquipmentTrapBar       Equipment = "trap_bar"
	EquipmentDumbbell      Equipment = "dumbbell"
	EquipmentKettlebell    Equipment = "kettlebell"
	EquipmentCable         Equipment = "cable"
	EquipmentMachine       Equipment = "machine"
	EquipmentBench         Equipment = "bench"
	EquipmentBodyweight    Equipment = "bodyweight"
	EquipmentBands         Equipment = "bands"
	EquipmentCardioMachine Equipment = "cardio_machine"
)

type Exercise struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string       `gorm:"type:varchar(128);not null;uniqueIndex" json:"name"`
	Type        ExerciseType `gorm:"type:varchar(16);not null" json:"type"`
	Equipment   Equipment    `gorm:"type:varchar(32);not null" json:"equipment"`
	IsCompound  bool         `gorm:"not null;default:false" json:"is_compound"`
	IsBodyweight bool        `gorm:"not null;default:false" json:"is_bodyweight"`
	TracksGPS   bool         `gorm:"not null;default:false" json:"tracks_gps"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// Profile returns the classification flags the suggestion engine needs.
func (e *Exercise) Profile() ExerciseProfile {
	return ExerciseProfile{
		Type:         e.Type,
		Equipment:    e.Equipment,
		IsCompound:   e.IsCompound,
		IsBodyweight: e.IsBodyweight,
	}
}

// SupportsSuggestions reports whether this exercise participates in the
// weight/rep progression pipeline. GPS-tracked, cardio and duration-only
// exercises never do.
func (e *Exercise) SupportsSuggestions() bool {
	if e.TracksGPS {
		return false
	}
	switch e.Type {
	case ExerciseTypeCardio, ExerciseTypeDuration:
		return false
	}
	return true
}

// ExerciseProfile carries the catalog flags relevant to suggestion
// generation, decoupled from the stored catalog row.
type ExerciseProfile struct {
	Type         ExerciseType `json:"type"`
	Equipment    Equipment    `json:"equipment"`
	IsCompound   bool         `json:"is_compound"`
	IsBodyweight bool         `json:"is_bodyweight"`
}

// CreateExerciseRequest is the request body for adding a catalog entry.
// @Description Request payload for creating an exercise catalog entry.
type CreateExerciseRequest struct {
	// Unique exercise name
	Name string `json:"name" validate:"required,max=128" example:"Barbell Bench Press"`
	// Measurement type
	Type ExerciseType `json:"type" validate:"required,oneof=weight bodyweight reps_only assisted cardio duration" example:"weight" enums:"weight,bodyweight,reps_only,assisted,cardio,duration"`
	// Equipment class
	Equipment Equipment `json:"equipment" validate:"required,equipment" example:"barbell"`
	// True for multi-joint movements
	IsCompound bool `json:"is_compound" example:"true"`
	// True when load is primarily bodyweight
	IsBodyweight bool `json:"is_bodyweight" example:"false"`
	// True for GPS-tracked outdoor activities
	TracksGPS bool `json:"tracks_gps" example:"false"`
}

// ExerciseResponse is the response body for exercise catalog endpoints.
// @Description Exercise catalog entry.
type ExerciseResponse struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name" example:"Barbell Bench Press"`
	Type         ExerciseType `json:"type" example:"weight"`
	Equipment    Equipment    `json:"equipment" example:"barbell"`
	IsCompound   bool         `json:"is_compound" example:"true"`
	IsBodyweight bool         `json:"is_bodyweight" example:"false"`
	TracksGPS    bool         `json:"tracks_gps" example:"false"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (e *Exercise) ToResponse() ExerciseResponse {
	return ExerciseResponse{
		ID:           e.ID,
		Name:         e.Name,
		Type:         e.Type,
		Equipment:    e.Equipment,
		IsCompound:   e.IsCompound,
		IsBodyweight: e.IsBodyweight,
		TracksGPS:    e.TracksGPS,
		CreatedAt:    e.CreatedAt,
	}
}
