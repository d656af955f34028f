// Package suggestion implements the smart set-suggestion engine: it turns
// workout history into per-exercise data points, classifies the training
// pattern, computes next-session set targets, and re-targets remaining
// sets mid-session. Every function is pure; callers pass hydrated history
// and an explicit clock, and identical inputs always yield identical
// output.
package suggestion

import (
	"sort"
	"strings"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// LookbackWeeks is how far back history contributes data points.
	LookbackWeeks = 8

	// MaxSessions caps the data-point series; the oldest beyond the cap are dropped.
	MaxSessions = 20
)

// BuildDataPoints turns a user's session history into an ordered, bounded
// series of per-exercise data points. Sessions outside the lookback
// window, the excluded in-progress session, and sessions without at least
// one completed weight/rep set for the exercise contribute nothing. The
// result is sorted most-recent-last and truncated to MaxSessions.
func BuildDataPoints(sessions []domain.WorkoutSession, exerciseName string, excludeID uuid.UUID, now time.Time) []domain.ExerciseDataPoint {
	cutoff := now.Add(-LookbackWeeks * 7 * 24 * time.Hour)

	points := make([]domain.ExerciseDataPoint, 0, len(sessions))
	for _, session := range sessions {
		if excludeID != uuid.Nil && session.ID == excludeID {
			continue
		}
		if session.StartedAt.Before(cutoff) || session.StartedAt.After(now) {
			continue
		}

		if point, ok := buildDataPoint(session, exerciseName); ok {
			points = append(points, point)
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if len(points) > MaxSessions {
		points = points[len(points)-MaxSessions:]
	}
	return points
}

// buildDataPoint summarizes one session's completed sets for the exercise.
// Returns ok=false when the session holds no completed set for it.
func buildDataPoint(session domain.WorkoutSession, exerciseName string) (domain.ExerciseDataPoint, bool) {
	var logged, completed []domain.SetLog
	for _, exercise := range session.Exercises {
		if !strings.EqualFold(exercise.ExerciseName, exerciseName) {
			continue
		}
		logged = append(logged, exercise.Sets...)
	}
	completed = lo.Filter(logged, func(s domain.SetLog, _ int) bool { return s.Completed })
	if len(completed) == 0 {
		return domain.ExerciseDataPoint{}, false
	}

	sort.Slice(completed, func(i, j int) bool { return completed[i].Position < completed[j].Position })

	point := domain.ExerciseDataPoint{
		Date:             session.StartedAt,
		TotalSets:        len(completed),
		AllSetsCompleted: len(completed) == len(logged),
		SetDetails:       make([]domain.SetDetail, 0, len(completed)),
	}

	var weightSum, repsSum float64
	for _, set := range completed {
		weight := 0.0
		if set.Weight != nil {
			weight = *set.Weight
		}
		reps := 0
		if set.Reps != nil {
			reps = *set.Reps
		}

		point.SetDetails = append(point.SetDetails, domain.SetDetail{Weight: weight, Reps: reps})
		weightSum += weight
		repsSum += float64(reps)
		point.TotalVolume += weight * float64(reps)

		if weight > point.TopSetWeight || (weight == point.TopSetWeight && reps > point.TopSetReps) {
			point.TopSetWeight = weight
			point.TopSetReps = reps
		}
	}

	point.AvgWeight = round2(weightSum / float64(len(completed)))
	point.AvgReps = round2(repsSum / float64(len(completed)))
	return point, true
}
