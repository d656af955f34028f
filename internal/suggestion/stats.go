package suggestion

import "math"

// mean calculates the arithmetic mean of a slice of values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev calculates the sample standard deviation.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

// linearRegression fits y = slope*x + intercept by ordinary least squares
// against the session index (x = 0..n-1) and returns the slope, intercept
// and coefficient of determination.
func linearRegression(y []float64) (slope, intercept, rSquared float64) {
	n := len(y)
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0, mean(y), 0
	}

	slope = (fn*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / fn

	// R² = 1 - SSres/SStot
	yMean := sumY / fn
	var ssRes, ssTot float64
	for i, v := range y {
		fit := slope*float64(i) + intercept
		ssRes += (v - fit) * (v - fit)
		ssTot += (v - yMean) * (v - yMean)
	}
	if ssTot == 0 {
		// A perfectly flat series is a perfect fit of a flat line
		return slope, intercept, 1
	}
	rSquared = 1 - ssRes/ssTot
	if rSquared < 0 {
		rSquared = 0
	}
	return slope, intercept, rSquared
}

// clamp01 clamps a value to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
