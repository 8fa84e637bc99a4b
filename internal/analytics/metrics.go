// Package analytics holds the pure computations behind budget reports:
// variance and utilization metrics, status classification, per-category
// aggregation, time bucketing and trend fitting. Nothing here performs I/O.
package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Status classifies spend against an allocation.
type Status string

const (
	StatusUnder   Status = "under"
	StatusOnTrack Status = "on-track"
	StatusOver    Status = "over"
)

// EfficiencyStatus classifies a spent/allocated ratio.
type EfficiencyStatus string

const (
	Efficient   EfficiencyStatus = "efficient"
	Inefficient EfficiencyStatus = "inefficient"
)

// VarianceType says whether a variance works for or against the budget.
type VarianceType string

const (
	Favorable   VarianceType = "favorable"
	Unfavorable VarianceType = "unfavorable"
)

// Level is shared by variance impact, insight priority and risk severity.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Classification cut points. Impact and insight priority use the same
// percentage scale so a "high" impact variance never yields a "low" insight.
const (
	// EfficiencyThreshold is the highest spent/allocated ratio still considered efficient.
	EfficiencyThreshold = 0.8
	// HighImpactVariancePercent and up is a high impact variance.
	HighImpactVariancePercent = 20.0
	// MediumImpactVariancePercent and up is a medium impact variance.
	MediumImpactVariancePercent = 10.0
	// NegligibleVariancePercent: variances below this are reported as low priority.
	NegligibleVariancePercent = 5.0
)

// Variance returns spent - allocated. Negative means under budget.
func Variance(spent, allocated float64) float64 {
	return decimal.NewFromFloat(spent).Sub(decimal.NewFromFloat(allocated)).InexactFloat64()
}

// VariancePercentage returns the variance as a percentage of allocated, or 0
// when nothing was allocated.
func VariancePercentage(spent, allocated float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return Variance(spent, allocated) / allocated * 100
}

// Utilization returns spent as a percentage of allocated, or 0 when nothing was allocated.
func Utilization(spent, allocated float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return spent / allocated * 100
}

// ClassifyStatus maps a utilization percentage to a status. Exactly 100 is on-track.
func ClassifyStatus(utilization float64) Status {
	switch {
	case utilization < 100:
		return StatusUnder
	case utilization == 100:
		return StatusOnTrack
	default:
		return StatusOver
	}
}

// StatusOf classifies a spent/allocated pair. Amounts are compared at cent
// precision so float noise in the utilization never moves a boundary.
func StatusOf(spent, allocated float64) Status {
	if allocated <= 0 {
		return ClassifyStatus(0)
	}
	cmp := Cents(spent).Cmp(Cents(allocated))
	switch {
	case cmp < 0:
		return StatusUnder
	case cmp == 0:
		return StatusOnTrack
	default:
		return StatusOver
	}
}

// Efficiency returns the spent/allocated ratio, or 0 when nothing was allocated.
func Efficiency(spent, allocated float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return spent / allocated
}

// ClassifyEfficiency returns Efficient when ratio <= EfficiencyThreshold.
func ClassifyEfficiency(ratio float64) EfficiencyStatus {
	if ratio <= EfficiencyThreshold {
		return Efficient
	}
	return Inefficient
}

// ClassifyVariance returns Favorable for variances at or under budget.
func ClassifyVariance(variance float64) VarianceType {
	if variance <= 0 {
		return Favorable
	}
	return Unfavorable
}

// ClassifyImpact grades a variance percentage by magnitude.
func ClassifyImpact(variancePercentage float64) Level {
	abs := math.Abs(variancePercentage)
	switch {
	case abs >= HighImpactVariancePercent:
		return LevelHigh
	case abs >= MediumImpactVariancePercent:
		return LevelMedium
	default:
		return LevelLow
	}
}

// InsightPriority grades how loudly a variance should be reported: overspend
// is always high, a negligible variance low, anything else medium.
func InsightPriority(variance, variancePercentage float64) Level {
	switch {
	case variance > 0:
		return LevelHigh
	case math.Abs(variancePercentage) < NegligibleVariancePercent:
		return LevelLow
	default:
		return LevelMedium
	}
}
