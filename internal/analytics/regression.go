package analytics

import "math"

// TrendDirection summarises the sign of a fitted slope.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// stableSlopeRatio: slopes smaller than this share of the series mean are "stable".
const stableSlopeRatio = 0.05

// Fit is an ordinary least-squares line through evenly spaced points.
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
}

// At evaluates the fitted line at x.
func (f Fit) At(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// LinearRegression fits y = intercept + slope*x for x = 0..n-1.
// Fewer than two points give a flat line through the only value, if any.
func LinearRegression(points []float64) Fit {
	n := float64(len(points))
	if n == 0 {
		return Fit{}
	}
	if n < 2 {
		return Fit{Intercept: points[0]}
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range points {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return Fit{Intercept: sumY / n}
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i, y := range points {
		predicted := slope*float64(i) + intercept
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}
	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	return Fit{Slope: slope, Intercept: intercept, RSquared: r2}
}

// Direction classifies a fit relative to the mean of the series it came from.
func (f Fit) Direction(mean float64) TrendDirection {
	if mean == 0 {
		switch {
		case f.Slope > 0:
			return TrendIncreasing
		case f.Slope < 0:
			return TrendDecreasing
		default:
			return TrendStable
		}
	}
	ratio := f.Slope / math.Abs(mean)
	switch {
	case ratio > stableSlopeRatio:
		return TrendIncreasing
	case ratio < -stableSlopeRatio:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Mean returns the arithmetic mean, 0 for an empty series.
func Mean(points []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	return Sum(points...) / float64(len(points))
}

// StdDev returns the population standard deviation.
func StdDev(points []float64) float64 {
	if len(points) < 2 {
		return 0
	}
	m := Mean(points)
	var ss float64
	for _, p := range points {
		ss += (p - m) * (p - m)
	}
	return math.Sqrt(ss / float64(len(points)))
}
