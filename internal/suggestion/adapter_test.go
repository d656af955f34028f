package suggestion

import (
	"testing"
	"time"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

func adaptInput(now time.Time) AdaptInput {
	points := weeklyPoints(now, []float64{100, 105, 110, 115, 120}, []int{5, 5, 5, 5, 5})
	return AdaptInput{
		Profile:  compoundBarbell,
		Analysis: Classify(points, compoundBarbell, now),
		State:    &domain.AdapterState{},
		Now:      now,
	}
}

func TestAdaptSet_EasyBumpsRemaining(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	in := adaptInput(now)
	in.Actual = domain.SetDetail{Weight: 125, Reps: 7}
	in.Target = domain.SetTarget{Weight: 125, Reps: 5}
	in.Remaining = []domain.SetTarget{{Weight: 200, Reps: 5}, {Weight: 200, Reps: 5}}

	result := AdaptSet(in)

	if !result.Shifted {
		t.Fatal("expected a shift after 2 extra reps")
	}
	if len(result.NewTargets) != 2 {
		t.Fatalf("expected 2 new targets, got %d", len(result.NewTargets))
	}
	// 200 * 1.025 = 205, already on the barbell increment.
	for i, target := range result.NewTargets {
		if target.Weight != 205 {
			t.Errorf("target %d weight = %v, want 205", i, target.Weight)
		}
		if target.Reps != 5 {
			t.Errorf("target %d reps = %d, want unchanged 5", i, target.Reps)
		}
	}
}

func TestAdaptSet_MissReducesRemaining(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	in := adaptInput(now)
	in.Actual = domain.SetDetail{Weight: 125, Reps: 3}
	in.Target = domain.SetTarget{Weight: 125, Reps: 5}
	in.Remaining = []domain.SetTarget{{Weight: 200, Reps: 5}}

	result := AdaptSet(in)

	if !result.Shifted {
		t.Fatal("expected a shift after missing by 2 reps")
	}
	// 200 * 0.95 = 190, on the increment.
	if result.NewTargets[0].Weight != 190 {
		t.Errorf("weight = %v, want 190", result.NewTargets[0].Weight)
	}
}

func TestAdaptSet_WithinBandNoShift(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		actualReps int
	}{
		{"exactly on target", 5},
		{"one above", 6},
		{"one below", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := adaptInput(now)
			in.Actual = domain.SetDetail{Weight: 125, Reps: tt.actualReps}
			in.Target = domain.SetTarget{Weight: 125, Reps: 5}
			in.Remaining = []domain.SetTarget{{Weight: 125, Reps: 5}}

			result := AdaptSet(in)
			if result.Shifted {
				t.Errorf("unexpected shift for %d reps vs target 5", tt.actualReps)
			}
			if len(result.NewTargets) != 0 {
				t.Errorf("expected no new targets, got %d", len(result.NewTargets))
			}
		})
	}
}

func TestAdaptSet_NoRemainingSets(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	in := adaptInput(now)
	in.Actual = domain.SetDetail{Weight: 125, Reps: 9}
	in.Target = domain.SetTarget{Weight: 125, Reps: 5}

	if result := AdaptSet(in); result.Shifted {
		t.Error("nothing left to re-target, expected no shift")
	}
}

func TestAdaptSet_FullReclassificationOncePerSession(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	// The lifter shows up far stronger than anything in history: large
	// cumulative weight deviation, no similar historical session.
	in := adaptInput(now)
	in.Actual = domain.SetDetail{Weight: 170, Reps: 5}
	in.Target = domain.SetTarget{Weight: 125, Reps: 5}
	in.Remaining = []domain.SetTarget{{Weight: 125, Reps: 5}, {Weight: 125, Reps: 5}}

	result := AdaptSet(in)

	if !result.Shifted {
		t.Fatal("expected a full pattern-shift reclassification")
	}
	if len(result.NewTargets) != 2 {
		t.Fatalf("expected 2 new targets, got %d", len(result.NewTargets))
	}
	if in.State.PatternShiftsUsed != 1 {
		t.Fatalf("PatternShiftsUsed = %d, want 1", in.State.PatternShiftsUsed)
	}

	// A second large deviation in the same session must not reclassify
	// again. With reps on target the simple bump does not fire either, so
	// despite the huge weight deviation the result is no shift.
	second := in
	second.Actual = domain.SetDetail{Weight: 50, Reps: 5}
	second.Target = domain.SetTarget{Weight: 125, Reps: 5}
	second.Remaining = []domain.SetTarget{{Weight: 125, Reps: 5}}

	secondResult := AdaptSet(second)

	if secondResult.Shifted {
		t.Error("oscillation guard breached: second full reclassification")
	}
	if in.State.PatternShiftsUsed != 1 {
		t.Errorf("PatternShiftsUsed = %d, want still 1", in.State.PatternShiftsUsed)
	}
}

func TestAdaptSet_KnownHistoricalPatternSuppressesShift(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	// History alternates 100/60; the live session at 60 deviates >15% from
	// its 100-weight targets but matches the light sessions closely, so the
	// deviation is a known pattern and only the simple rules apply.
	points := weeklyPoints(now, []float64{100, 60, 100, 60, 100, 60}, []int{5, 12, 6, 13, 5, 12})
	in := AdaptInput{
		Profile:   compoundBarbell,
		Analysis:  Classify(points, compoundBarbell, now),
		State:     &domain.AdapterState{},
		Now:       now,
		Actual:    domain.SetDetail{Weight: 60, Reps: 12},
		Target:    domain.SetTarget{Weight: 100, Reps: 12},
		Remaining: []domain.SetTarget{{Weight: 100, Reps: 12}},
	}

	result := AdaptSet(in)

	if in.State.PatternShiftsUsed != 0 {
		t.Errorf("PatternShiftsUsed = %d, want 0 (known pattern)", in.State.PatternShiftsUsed)
	}
	// Reps were on target, so no simple bump either.
	if result.Shifted {
		t.Error("expected no shift for a recognized historical pattern")
	}
}

func TestAdaptSet_StateAccumulates(t *testing.T) {
	now := time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)

	state := &domain.AdapterState{}
	for i := 0; i < 3; i++ {
		in := adaptInput(now)
		in.State = state
		in.Actual = domain.SetDetail{Weight: 125, Reps: 5}
		in.Target = domain.SetTarget{Weight: 125, Reps: 5}
		in.Remaining = []domain.SetTarget{{Weight: 125, Reps: 5}}
		AdaptSet(in)
	}

	if len(state.CompletedActuals) != 3 || len(state.CompletedTargets) != 3 {
		t.Errorf("state holds %d actuals / %d targets, want 3 / 3",
			len(state.CompletedActuals), len(state.CompletedTargets))
	}
}
