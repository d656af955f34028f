package suggestion

import (
	"math"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
)

// weightIncrements maps each equipment class to its rounding policy.
// Plate-loaded and pin-stack equipment rounds down to the nearest 5-unit
// step so a suggestion never overshoots what the hardware can load;
// bodyweight-style loads adjust in 1-unit steps, rounded to nearest.
var weightIncrements = map[domain.Equipment]domain.WeightIncrement{
	domain.EquipmentBarbell:       {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentSmithMachine:  {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentTrapBar:       {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentDumbbell:      {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentKettlebell:    {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentCable:         {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentMachine:       {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentBench:         {Increment: 5, RoundDirection: domain.RoundDown},
	domain.EquipmentBodyweight:    {Increment: 1, RoundDirection: domain.RoundNearest},
	domain.EquipmentBands:         {Increment: 1, RoundDirection: domain.RoundNearest},
	domain.EquipmentCardioMachine: {Increment: 1, RoundDirection: domain.RoundNearest},
}

// defaultIncrement applies to unknown equipment tags.
var defaultIncrement = domain.WeightIncrement{Increment: 5, RoundDirection: domain.RoundDown}

// IncrementFor returns the rounding policy for an equipment class.
func IncrementFor(equipment domain.Equipment) domain.WeightIncrement {
	if inc, ok := weightIncrements[equipment]; ok {
		return inc
	}
	return defaultIncrement
}

// RoundWeight snaps a raw computed weight to the increment policy. This is
// always the last step before a weight is placed into a suggestion.
func RoundWeight(raw float64, inc domain.WeightIncrement) float64 {
	if raw <= 0 {
		return 0
	}
	if inc.Increment <= 0 {
		return raw
	}

	steps := raw / inc.Increment
	switch inc.RoundDirection {
	case domain.RoundNearest:
		return math.Round(steps) * inc.Increment
	default:
		// Tolerate float error so a raw value sitting on a step boundary
		// is not floored a whole increment down.
		return math.Floor(steps+1e-9) * inc.Increment
	}
}
