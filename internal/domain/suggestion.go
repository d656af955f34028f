package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrainingPattern classifies how an exercise has been trending over the
// analysis window.
// @Description Detected training pattern for an exercise.
type TrainingPattern string

const (
	// PatternProgressiveOverload is a steady session-over-session load increase
	PatternProgressiveOverload TrainingPattern = "progressive_overload"
	// PatternRepCycling alternates heavy-low-rep and light-high-rep sessions
	PatternRepCycling TrainingPattern = "rep_cycling"
	// PatternDeload is a deliberate volume/intensity reduction after sustained progression
	PatternDeload TrainingPattern = "deload"
	// PatternStable is a flat or noisy trend with adequate data
	PatternStable TrainingPattern = "stable"
	// PatternFallback is the conservative default when history is missing or stale
	PatternFallback TrainingPattern = "fallback"
)

// SetArrangement describes the load shape of the sets within one session.
// @Description Shape of the set ladder in the most recent session.
type SetArrangement string

const (
	ArrangementPyramidUp      SetArrangement = "pyramid_up"
	ArrangementPyramidDown    SetArrangement = "pyramid_down"
	ArrangementStraightAcross SetArrangement = "straight_across"
	// ArrangementNone means no recognizable shape was detected
	ArrangementNone SetArrangement = ""
)

// RoundDirection controls how a raw computed weight is snapped to an
// equipment increment.
type RoundDirection string

const (
	RoundDown    RoundDirection = "down"
	RoundNearest RoundDirection = "nearest"
)

// WeightIncrement is the per-equipment-class rounding policy. A "down"
// policy never increases a target above its raw computed value.
type WeightIncrement struct {
	Increment      float64        `json:"increment"`
	RoundDirection RoundDirection `json:"round_direction"`
}

// SetDetail is one (weight, reps) pair at a set position.
type SetDetail struct {
	Weight float64 `json:"weight" validate:"min=0" example:"100"`
	Reps   int     `json:"reps" validate:"min=0,max=100" example:"8"`
}

// SetTarget is a suggested per-set target, same shape as a logged set.
type SetTarget struct {
	Weight float64 `json:"weight" validate:"min=0" example:"105"`
	Reps   int     `json:"reps" validate:"min=0,max=100" example:"8"`
}

// ExerciseDataPoint summarizes one historical session for one exercise.
// Derived fresh on every suggestion call, never persisted.
type ExerciseDataPoint struct {
	Date         time.Time   `json:"date"`
	AvgWeight    float64     `json:"avg_weight"`
	AvgReps      float64     `json:"avg_reps"`
	TopSetWeight float64     `json:"top_set_weight"`
	TopSetReps   int         `json:"top_set_reps"`
	TotalSets    int         `json:"total_sets"`
	TotalVolume  float64     `json:"total_volume"`
	SetDetails   []SetDetail `json:"set_details"`
	// AllSetsCompleted is true when every set logged for the exercise in
	// this session was completed, not just the completed subset used above.
	AllSetsCompleted bool `json:"all_sets_completed"`
}

// ClusterData splits a data-point series into heavy and light subsequences
// for dual-progression training. NextIsHeavy tells the generator which
// cluster the next session belongs to; it is re-derived from the series on
// every call rather than stored.
type ClusterData struct {
	Heavy       []ExerciseDataPoint `json:"heavy"`
	Light       []ExerciseDataPoint `json:"light"`
	NextIsHeavy bool                `json:"next_is_heavy"`
}

// PatternAnalysis is the classifier output.
// @Description Training pattern classification with supporting statistics.
type PatternAnalysis struct {
	Pattern    TrainingPattern     `json:"pattern" example:"progressive_overload"`
	Confidence float64             `json:"confidence" example:"0.82"`
	DataPoints []ExerciseDataPoint `json:"data_points"`
	// Slope and RSquared are present when a regression was run
	Slope    *float64 `json:"slope,omitempty" example:"4.8"`
	RSquared *float64 `json:"r_squared,omitempty" example:"0.97"`
	// Clusters is present only for rep cycling
	Clusters   *ClusterData   `json:"clusters,omitempty"`
	SetPattern SetArrangement `json:"set_pattern,omitempty" example:"straight_across"`
}

// SmartSuggestionResult is the externally consumed suggestion output.
// @Description Suggested per-set targets for the next session of an exercise.
type SmartSuggestionResult struct {
	// Suggested per-set targets, in set order
	Sets []SetTarget `json:"sets"`
	// Number of returned sets backed by real history (the rest is padding)
	HistorySetCount int             `json:"history_set_count" example:"3"`
	Pattern         TrainingPattern `json:"pattern" example:"progressive_overload"`
	Confidence      float64         `json:"confidence" example:"0.82"`
	// Pass-through for the intra-session adapter
	Clusters   *ClusterData   `json:"clusters,omitempty"`
	SetPattern SetArrangement `json:"set_pattern,omitempty"`
}

// PatternShiftResult is the intra-session adapter output. NewTargets
// replaces every not-yet-completed set, indexed from the first incomplete
// set.
// @Description Re-targeting decision for the remaining sets of an active session.
type PatternShiftResult struct {
	Shifted    bool        `json:"shifted" example:"true"`
	NewTargets []SetTarget `json:"new_targets,omitempty"`
}

// AdapterState is the caller-owned state threaded through intra-session
// adaptation calls. The engine never stores it.
type AdapterState struct {
	// Number of full pattern-shift reclassifications consumed this session (max 1)
	PatternShiftsUsed int `json:"pattern_shifts_used" validate:"min=0" example:"0"`
	// Actual sets completed so far this session, in order
	CompletedActuals []SetDetail `json:"completed_actuals" validate:"dive"`
	// Targets that had been predicted for those completed sets, in order
	CompletedTargets []SetTarget `json:"completed_targets" validate:"dive"`
}

// SuggestionOptions tunes a suggestion request.
type SuggestionOptions struct {
	// TargetSets is how many set targets to return (0 means default)
	TargetSets int
	// ExcludeWorkoutID removes an in-progress session from the history
	ExcludeWorkoutID uuid.UUID
}

// AdaptRequest is the request body for intra-session adaptation.
// @Description Request payload describing a just-completed set and the remaining targets.
type AdaptRequest struct {
	// The just-completed actual set
	CompletedSet SetDetail `json:"completed_set" validate:"required"`
	// The target that had been predicted for that position
	PredictedTarget SetTarget `json:"predicted_target" validate:"required"`
	// Still-incomplete predicted targets for the rest of the session
	RemainingTargets []SetTarget `json:"remaining_targets" validate:"dive"`
	// Caller-owned adapter state; echo it back from the previous response
	SessionState AdapterState `json:"session_state"`
	// ExcludeWorkoutID removes the in-progress session from the history used
	// for a full reclassification
	ExcludeWorkoutID *uuid.UUID `json:"exclude_workout_id,omitempty"`
}

// AdaptResponse is the response body for intra-session adaptation.
// @Description Shift result plus updated session state to echo on the next call.
type AdaptResponse struct {
	Shifted    bool        `json:"shifted"`
	NewTargets []SetTarget `json:"new_targets,omitempty"`
	// Updated state the client must send with the next adapt call
	SessionState AdapterState `json:"session_state"`
}

// CoachingOutput contains the structured coaching notes from the LLM.
// @Description LLM-generated coaching notes for a suggestion.
type CoachingOutput struct {
	// Summary of the training trend and suggestion (2-3 sentences)
	Summary string `json:"summary" example:"Your bench press has been climbing steadily..."`
	// Observations about the detected pattern (3-6 items)
	Observations []string `json:"observations" example:"[\"Load increased 5 sessions in a row\"]"`
	// Actionable guidance for the next session (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Aim for 105 across all three sets\"]"`
}

// CoachingContext is the context object sent to the LLM.
// @Description Context data for coaching note generation.
type CoachingContext struct {
	Exercise       ExerciseResponse      `json:"exercise"`
	Pattern        TrainingPattern       `json:"pattern"`
	Confidence     float64               `json:"confidence"`
	SetPattern     SetArrangement        `json:"set_pattern,omitempty"`
	SessionsUsed   int                   `json:"sessions_used"`
	RecentSessions []ExerciseDataPoint   `json:"recent_sessions"`
	Suggestion     SmartSuggestionResult `json:"suggestion"`
}

// CoachingResponse is the response for the coaching endpoint.
// @Description Suggestion plus LLM coaching notes.
type CoachingResponse struct {
	Exercise   ExerciseResponse      `json:"exercise"`
	Suggestion SmartSuggestionResult `json:"suggestion"`
	Insights   CoachingOutput        `json:"insights"`
	// Trace ID for feedback (only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty"`
}
