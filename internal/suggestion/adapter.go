package suggestion

import (
	"math"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

const (
	// EasyRepsAbove marks a set as "easy" when actual reps beat the target
	// by at least this much.
	EasyRepsAbove = 2

	// MissRepsBelow marks a set as a "miss" when actual reps fall short of
	// the target by at least this much.
	MissRepsBelow = 2

	// EasyBumpPercent scales remaining targets up after an easy set.
	EasyBumpPercent = 0.025

	// MissReducePercent scales remaining targets down after a miss.
	MissReducePercent = 0.05

	// Cumulative-deviation thresholds gating a full reclassification.
	PatternShiftWeightThreshold = 0.15
	PatternShiftRepsThreshold   = 0.30

	// PatternShiftMaxSimilarity: when a historical session matches the live
	// one at least this closely, the deviation is a known pattern, not a shift.
	PatternShiftMaxSimilarity = 0.30

	// MaxPatternShiftsPerSession is the oscillation guard: once consumed,
	// later deviations only trigger the simple bump.
	MaxPatternShiftsPerSession = 1
)

// AdaptInput carries one just-completed set, the targets it was measured
// against, and the context needed for a full reclassification. State is
// caller-owned; the engine mutates it in place and never stores it.
type AdaptInput struct {
	Actual    domain.SetDetail
	Target    domain.SetTarget
	Remaining []domain.SetTarget
	Profile   domain.ExerciseProfile
	Analysis  domain.PatternAnalysis
	State     *domain.AdapterState
	Now       time.Time
}

// AdaptSet re-targets the remaining sets of an in-progress session after a
// set completes. A simple easy/miss bump handles single-set deviations; a
// full pattern-shift reclassification runs at most once per session, and
// only when the cumulative deviation is large and no historical session
// resembles the live one.
func AdaptSet(in AdaptInput) domain.PatternShiftResult {
	if in.State == nil {
		in.State = &domain.AdapterState{}
	}
	in.State.CompletedActuals = append(in.State.CompletedActuals, in.Actual)
	in.State.CompletedTargets = append(in.State.CompletedTargets, in.Target)

	if len(in.Remaining) == 0 {
		return domain.PatternShiftResult{Shifted: false}
	}

	if shouldReclassify(in) {
		in.State.PatternShiftsUsed++
		return domain.PatternShiftResult{
			Shifted:    true,
			NewTargets: reclassifyRemaining(in),
		}
	}

	repDiff := in.Actual.Reps - in.Target.Reps
	switch {
	case repDiff >= EasyRepsAbove:
		return domain.PatternShiftResult{
			Shifted:    true,
			NewTargets: scaleTargets(in.Remaining, 1+EasyBumpPercent, in.Profile.Equipment),
		}
	case repDiff <= -MissRepsBelow:
		return domain.PatternShiftResult{
			Shifted:    true,
			NewTargets: scaleTargets(in.Remaining, 1-MissReducePercent, in.Profile.Equipment),
		}
	default:
		return domain.PatternShiftResult{Shifted: false}
	}
}

// scaleTargets multiplies every remaining weight by factor and re-rounds
// via the equipment policy. Reps are left untouched.
func scaleTargets(targets []domain.SetTarget, factor float64, equipment domain.Equipment) []domain.SetTarget {
	inc := IncrementFor(equipment)
	scaled := make([]domain.SetTarget, len(targets))
	for i, t := range targets {
		scaled[i] = domain.SetTarget{
			Weight: RoundWeight(t.Weight*factor, inc),
			Reps:   t.Reps,
		}
	}
	return scaled
}

// shouldReclassify gates the full pattern-shift path.
func shouldReclassify(in AdaptInput) bool {
	if in.State.PatternShiftsUsed >= MaxPatternShiftsPerSession {
		return false
	}

	weightDev, repsDev := cumulativeDeviation(in.State)
	if weightDev < PatternShiftWeightThreshold && repsDev < PatternShiftRepsThreshold {
		return false
	}

	return !matchesHistoricalPattern(in.State.CompletedActuals, in.Analysis.DataPoints)
}

// cumulativeDeviation averages the relative per-set deviation of actuals
// from their predicted targets across the session so far.
func cumulativeDeviation(state *domain.AdapterState) (weightDev, repsDev float64) {
	n := len(state.CompletedActuals)
	if n == 0 || len(state.CompletedTargets) < n {
		return 0, 0
	}

	var weightSum, repsSum float64
	var weightCount, repsCount int
	for i := 0; i < n; i++ {
		actual := state.CompletedActuals[i]
		target := state.CompletedTargets[i]
		if target.Weight > 0 {
			weightSum += math.Abs(actual.Weight-target.Weight) / target.Weight
			weightCount++
		}
		if target.Reps > 0 {
			repsSum += math.Abs(float64(actual.Reps-target.Reps)) / float64(target.Reps)
			repsCount++
		}
	}
	if weightCount > 0 {
		weightDev = weightSum / float64(weightCount)
	}
	if repsCount > 0 {
		repsDev = repsSum / float64(repsCount)
	}
	return weightDev, repsDev
}

// matchesHistoricalPattern reports whether any historical session's set
// ladder sits within the similarity bound of the live session so far. A
// live session that looks like a previously seen one is treated as a known
// pattern rather than a shift.
func matchesHistoricalPattern(live []domain.SetDetail, points []domain.ExerciseDataPoint) bool {
	if len(live) == 0 {
		return false
	}
	for _, p := range points {
		if matchesSetLadder(live, p.SetDetails) {
			return true
		}
	}
	return false
}

// matchesSetLadder reports whether every overlapping set position is
// within the similarity bound on both weight and reps, relative to the
// historical values.
func matchesSetLadder(live []domain.SetDetail, history []domain.SetDetail) bool {
	n := len(live)
	if len(history) < n {
		n = len(history)
	}
	if n == 0 {
		return false
	}

	for i := 0; i < n; i++ {
		if relativeDistance(live[i].Weight, history[i].Weight) > PatternShiftMaxSimilarity {
			return false
		}
		if relativeDistance(float64(live[i].Reps), float64(history[i].Reps)) > PatternShiftMaxSimilarity {
			return false
		}
	}
	return true
}

// relativeDistance measures |a-b| relative to the historical reference b.
func relativeDistance(a, b float64) float64 {
	if b == 0 {
		if a == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(a-b) / math.Abs(b)
}

// reclassifyRemaining re-runs classification and generation with the live
// partial session appended as fresh evidence, then keeps only the targets
// for the not-yet-completed positions.
func reclassifyRemaining(in AdaptInput) []domain.SetTarget {
	livePoint := buildLivePoint(in.State, in.Now)

	points := make([]domain.ExerciseDataPoint, 0, len(in.Analysis.DataPoints)+1)
	points = append(points, in.Analysis.DataPoints...)
	points = append(points, livePoint)

	analysis := Classify(points, in.Profile, in.Now)

	completed := len(in.State.CompletedActuals)
	regenerated := Generate(analysis, in.Profile, completed+len(in.Remaining))

	if len(regenerated.Sets) <= completed {
		return scaleTargets(in.Remaining, 1, in.Profile.Equipment)
	}
	targets := regenerated.Sets[completed:]
	if len(targets) > len(in.Remaining) {
		targets = targets[:len(in.Remaining)]
	}
	return targets
}

// buildLivePoint summarizes the sets completed so far in the live session
// as a synthetic data point.
func buildLivePoint(state *domain.AdapterState, now time.Time) domain.ExerciseDataPoint {
	point := domain.ExerciseDataPoint{
		Date:             now,
		TotalSets:        len(state.CompletedActuals),
		SetDetails:       append([]domain.SetDetail(nil), state.CompletedActuals...),
		AllSetsCompleted: true,
	}

	var weightSum, repsSum float64
	for _, s := range state.CompletedActuals {
		weightSum += s.Weight
		repsSum += float64(s.Reps)
		point.TotalVolume += s.Weight * float64(s.Reps)
		if s.Weight > point.TopSetWeight || (s.Weight == point.TopSetWeight && s.Reps > point.TopSetReps) {
			point.TopSetWeight = s.Weight
			point.TopSetReps = s.Reps
		}
	}
	if point.TotalSets > 0 {
		point.AvgWeight = round2(weightSum / float64(point.TotalSets))
		point.AvgReps = round2(repsSum / float64(point.TotalSets))
	}
	return point
}
