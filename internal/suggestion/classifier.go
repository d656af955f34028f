package suggestion

import (
	"sort"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

const (
	// MinSessions is the minimum series length for any classification.
	MinSessions = 3

	// MinSessionsRepCycling is the minimum series length to detect rep cycling.
	MinSessionsRepCycling = 4

	// RepCyclingStdDev is the reps-per-session standard deviation above
	// which the series is a rep-cycling candidate.
	RepCyclingStdDev = 3.0

	// StaleGapDays invalidates trend projection after a layoff this long.
	StaleGapDays = 21

	// MinWeeksDeloadAuto is the minimum history span before a deload is
	// auto-detected.
	MinWeeksDeloadAuto = 12

	// DeloadVolumeDrop is how far the latest session's volume must sit
	// below the trailing average to count as a deload.
	DeloadVolumeDrop = 0.20

	// R² thresholds for progressive overload, by exercise classification.
	RSquaredCompound  = 0.6
	RSquaredIsolation = 0.5

	// PyramidThreshold is the last-over-first weight ratio marking a pyramid.
	PyramidThreshold = 0.10

	// StraightAcrossThreshold bounds per-set deviation from the set mean
	// for a straight-across arrangement.
	StraightAcrossThreshold = 0.05

	// Confidence weights. Confidence is a monotonic combination of R²,
	// data-point coverage and recency; the weights themselves are a
	// documented choice, not derived.
	confidenceWeightRSquared = 0.5
	confidenceWeightCoverage = 0.3
	confidenceWeightRecency  = 0.2
)

// Classify runs the statistical analysis of a data-point series and emits
// a classified pattern with confidence and supporting structures.
//
// The decision policy is evaluated in strict precedence order:
// insufficient data, stale history, rep cycling, deload, progressive
// overload, stable. Staleness overrides an otherwise-strong trend because
// a long layoff invalidates projected progress.
func Classify(points []domain.ExerciseDataPoint, profile domain.ExerciseProfile, now time.Time) domain.PatternAnalysis {
	// A data point with no sets carries no signal; drop it rather than fail.
	points = filterValid(points)

	analysis := domain.PatternAnalysis{
		Pattern:    domain.PatternFallback,
		DataPoints: points,
	}
	if len(points) > 0 {
		analysis.SetPattern = detectSetArrangement(points[len(points)-1].SetDetails)
	}

	if len(points) < MinSessions {
		return analysis
	}

	latest := points[len(points)-1]
	daysSinceLast := now.Sub(latest.Date).Hours() / 24
	if daysSinceLast > StaleGapDays {
		return analysis
	}

	weights := make([]float64, len(points))
	reps := make([]float64, len(points))
	for i, p := range points {
		weights[i] = p.AvgWeight
		reps[i] = p.AvgReps
	}

	slope, _, rSquared := linearRegression(weights)
	analysis.Slope = &slope
	analysis.RSquared = &rSquared

	coverage := float64(len(points)) / float64(MaxSessions)
	recency := 1 - clamp01(daysSinceLast/StaleGapDays)
	analysis.Confidence = confidenceScore(rSquared, coverage, recency)

	if clusters, ok := detectRepCycling(points, reps); ok {
		analysis.Pattern = domain.PatternRepCycling
		analysis.Clusters = clusters
		return analysis
	}

	if isDeload(points) {
		analysis.Pattern = domain.PatternDeload
		return analysis
	}

	threshold := RSquaredIsolation
	if profile.IsCompound {
		threshold = RSquaredCompound
	}
	if slope > 0 && rSquared >= threshold {
		analysis.Pattern = domain.PatternProgressiveOverload
		return analysis
	}

	analysis.Pattern = domain.PatternStable
	return analysis
}

// confidenceScore combines R², coverage of the session cap, and recency
// into [0, 1]. Monotonic in all three inputs.
func confidenceScore(rSquared, coverage, recency float64) float64 {
	score := confidenceWeightRSquared*clamp01(rSquared) +
		confidenceWeightCoverage*clamp01(coverage) +
		confidenceWeightRecency*clamp01(recency)
	return round2(clamp01(score))
}

// detectRepCycling checks for alternating heavy/light training: high
// reps-per-session variance plus a series separable into two weight bands.
// The split is a median split on per-session average weight. Bands keep
// chronological order, and nextIsHeavy is the inverse of the band the most
// recent point belongs to (strict alternation).
func detectRepCycling(points []domain.ExerciseDataPoint, reps []float64) (*domain.ClusterData, bool) {
	if len(points) < MinSessionsRepCycling {
		return nil, false
	}
	if stdDev(reps) <= RepCyclingStdDev {
		return nil, false
	}

	weights := make([]float64, len(points))
	for i, p := range points {
		weights[i] = p.AvgWeight
	}
	median := medianOf(weights)

	clusters := &domain.ClusterData{}
	latestIsHeavy := false
	for _, p := range points {
		if p.AvgWeight > median {
			clusters.Heavy = append(clusters.Heavy, p)
			latestIsHeavy = true
		} else {
			clusters.Light = append(clusters.Light, p)
			latestIsHeavy = false
		}
	}
	if len(clusters.Heavy) == 0 || len(clusters.Light) == 0 {
		return nil, false
	}

	clusters.NextIsHeavy = !latestIsHeavy
	return clusters, true
}

// isDeload reports whether the latest session's volume dropped at least
// DeloadVolumeDrop below the trailing average, over a long enough history.
func isDeload(points []domain.ExerciseDataPoint) bool {
	latest := points[len(points)-1]
	span := latest.Date.Sub(points[0].Date).Hours() / 24
	if span < MinWeeksDeloadAuto*7 {
		return false
	}

	var trailing float64
	for _, p := range points[:len(points)-1] {
		trailing += p.TotalVolume
	}
	trailing /= float64(len(points) - 1)
	if trailing <= 0 {
		return false
	}

	return latest.TotalVolume <= trailing*(1-DeloadVolumeDrop)
}

// detectSetArrangement classifies the load shape of a single session's set
// ladder from its first/last weights and spread around the mean.
func detectSetArrangement(details []domain.SetDetail) domain.SetArrangement {
	if len(details) < 2 {
		return domain.ArrangementNone
	}

	first := details[0].Weight
	last := details[len(details)-1].Weight

	if first > 0 && last >= first*(1+PyramidThreshold) {
		return domain.ArrangementPyramidUp
	}
	if last > 0 && first >= last*(1+PyramidThreshold) {
		return domain.ArrangementPyramidDown
	}

	weights := make([]float64, len(details))
	for i, d := range details {
		weights[i] = d.Weight
	}
	avg := mean(weights)
	if avg <= 0 {
		return domain.ArrangementNone
	}
	for _, w := range weights {
		if w < avg*(1-StraightAcrossThreshold) || w > avg*(1+StraightAcrossThreshold) {
			return domain.ArrangementNone
		}
	}
	return domain.ArrangementStraightAcross
}

func filterValid(points []domain.ExerciseDataPoint) []domain.ExerciseDataPoint {
	valid := make([]domain.ExerciseDataPoint, 0, len(points))
	for _, p := range points {
		if p.TotalSets > 0 && len(p.SetDetails) > 0 {
			valid = append(valid, p)
		}
	}
	return valid
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}
