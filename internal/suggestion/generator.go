package suggestion

import (
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

const (
	// Per-session increase caps for progressive overload.
	MaxIncreaseCompound  = 0.05
	MaxIncreaseIsolation = 0.10

	// MaxDecrease bounds a deload reduction.
	MaxDecrease = 0.10

	// SmallBumpPercent is the flat bump for thin clusters and the
	// straight-across reward.
	SmallBumpPercent = 0.025

	// MinClusterSessions is the minimum cluster size to regress within it.
	MinClusterSessions = 2

	// Rep clamp for every suggested set.
	MinReps = 1
	MaxReps = 30

	// DefaultTargetSets is used when the caller does not ask for a count.
	DefaultTargetSets = 3

	// Static fallback rep targets for exercises with no history at all.
	DefaultWeightedReps   = 8
	DefaultBodyweightReps = 10
)

// Generate turns a classification into concrete next-session set targets,
// applying equipment rounding and percentage caps. Rounding is the last
// step before a weight is placed into the result.
func Generate(analysis domain.PatternAnalysis, profile domain.ExerciseProfile, targetSets int) domain.SmartSuggestionResult {
	if targetSets <= 0 {
		targetSets = DefaultTargetSets
	}
	inc := IncrementFor(profile.Equipment)

	result := domain.SmartSuggestionResult{
		Pattern:    analysis.Pattern,
		Confidence: analysis.Confidence,
		Clusters:   analysis.Clusters,
		SetPattern: analysis.SetPattern,
	}

	// No history at all: return the fixed type-appropriate default table.
	if len(analysis.DataPoints) == 0 {
		result.Sets = defaultTargets(profile, targetSets)
		return result
	}

	base, growth := baseAndGrowth(analysis, profile)
	if len(base.SetDetails) == 0 {
		result.Sets = defaultTargets(profile, targetSets)
		return result
	}

	result.HistorySetCount = len(base.SetDetails)
	if result.HistorySetCount > targetSets {
		result.HistorySetCount = targetSets
	}

	result.Sets = make([]domain.SetTarget, 0, targetSets)
	for i := 0; i < targetSets; i++ {
		idx := i
		if idx >= len(base.SetDetails) {
			// Padding beyond history repeats the last historical set's target.
			idx = len(base.SetDetails) - 1
		}
		detail := base.SetDetails[idx]

		raw := detail.Weight * (1 + growth)
		result.Sets = append(result.Sets, domain.SetTarget{
			Weight: RoundWeight(raw, inc),
			Reps:   clampInt(detail.Reps, MinReps, MaxReps),
		})
	}
	return result
}

// baseAndGrowth picks the session the targets are derived from and the
// fractional weight change to apply, per pattern.
func baseAndGrowth(analysis domain.PatternAnalysis, profile domain.ExerciseProfile) (domain.ExerciseDataPoint, float64) {
	latest := analysis.DataPoints[len(analysis.DataPoints)-1]

	switch analysis.Pattern {
	case domain.PatternProgressiveOverload:
		return latest, cappedIncrease(slopeFraction(analysis.Slope, latest.AvgWeight), profile)

	case domain.PatternRepCycling:
		return repCyclingBase(analysis, profile, latest)

	case domain.PatternDeload:
		return latest, -MaxDecrease

	case domain.PatternStable:
		// A straight-across session completed in full earns a small reward bump.
		if analysis.SetPattern == domain.ArrangementStraightAcross && latest.AllSetsCompleted {
			return latest, SmallBumpPercent
		}
		return latest, 0

	default:
		// Fallback carries the last actuals forward unchanged.
		return latest, 0
	}
}

// repCyclingBase selects the cluster matching nextIsHeavy and derives the
// growth from a within-cluster regression when the cluster is deep enough,
// else a flat small bump.
func repCyclingBase(analysis domain.PatternAnalysis, profile domain.ExerciseProfile, latest domain.ExerciseDataPoint) (domain.ExerciseDataPoint, float64) {
	if analysis.Clusters == nil {
		return latest, SmallBumpPercent
	}

	cluster := analysis.Clusters.Light
	if analysis.Clusters.NextIsHeavy {
		cluster = analysis.Clusters.Heavy
	}
	if len(cluster) == 0 {
		return latest, SmallBumpPercent
	}

	base := cluster[len(cluster)-1]
	if len(cluster) < MinClusterSessions {
		return base, SmallBumpPercent
	}

	weights := make([]float64, len(cluster))
	for i, p := range cluster {
		weights[i] = p.AvgWeight
	}
	slope, _, _ := linearRegression(weights)
	return base, cappedIncrease(slopeFraction(&slope, base.AvgWeight), profile)
}

// slopeFraction converts a per-session weight slope into a fractional
// increase relative to the reference weight.
func slopeFraction(slope *float64, reference float64) float64 {
	if slope == nil || *slope <= 0 || reference <= 0 {
		return 0
	}
	return *slope / reference
}

// cappedIncrease clamps a regression-implied increase to the per-exercise
// safety cap.
func cappedIncrease(fraction float64, profile domain.ExerciseProfile) float64 {
	limit := MaxIncreaseIsolation
	if profile.IsCompound {
		limit = MaxIncreaseCompound
	}
	if fraction > limit {
		return limit
	}
	if fraction < 0 {
		return 0
	}
	return fraction
}

// defaultTargets is the fixed fallback table for exercises with zero
// history: bodyweight and reps-only exercises get a rep target with no
// weight, assisted exercises get zero assistance weight, and standard
// weighted exercises get zero weight with a fixed rep target.
func defaultTargets(profile domain.ExerciseProfile, targetSets int) []domain.SetTarget {
	reps := DefaultWeightedReps
	switch profile.Type {
	case domain.ExerciseTypeBodyweight, domain.ExerciseTypeRepsOnly:
		reps = DefaultBodyweightReps
	}

	sets := make([]domain.SetTarget, targetSets)
	for i := range sets {
		sets[i] = domain.SetTarget{Weight: 0, Reps: reps}
	}
	return sets
}
