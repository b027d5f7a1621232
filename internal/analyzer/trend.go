package analyzer

import (
	"sort"

	"github.com/scopeworks/fpoint/domain"
)

// TrendOutcome holds the classified movement of a metric across
// estimate versions
type TrendOutcome struct {
	Direction        domain.TrendDirection
	PercentageChange float64

	// True when the first value is zero and the last is not. The
	// relative change has no baseline then; no number is invented.
	BaselineUndefined bool

	FirstValue float64
	LastValue  float64
}

// SeriesForMetric extracts one metric from a version history, ordered
// by ascending version number. The input order does not matter.
func SeriesForMetric(estimates []*domain.Estimate, metric domain.TrendMetric) ([]domain.TrendPoint, error) {
	if !metric.IsValid() {
		return nil, domain.NewUnsupportedMetricError(string(metric))
	}

	ordered := make([]*domain.Estimate, len(estimates))
	copy(ordered, estimates)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Version < ordered[j].Version
	})

	points := make([]domain.TrendPoint, 0, len(ordered))
	for _, est := range ordered {
		var value float64
		switch metric {
		case domain.TrendMetricAFP:
			value = est.AdjustedFP
		case domain.TrendMetricEffort:
			value = est.EffortHours
		case domain.TrendMetricVAF:
			value = est.VAF
		}
		points = append(points, domain.TrendPoint{Version: est.Version, Value: value})
	}
	return points, nil
}

// AnalyzeSeries classifies the movement from the first to the last
// value of a series. Movements within the stable threshold (in
// percent, around zero) count as stable. A single-element series is
// stable with zero change.
func AnalyzeSeries(points []domain.TrendPoint, stableThresholdPercent float64) (*TrendOutcome, error) {
	if len(points) == 0 {
		return nil, domain.NewInvalidInputError("history must contain at least one estimate", nil)
	}

	first := points[0].Value
	last := points[len(points)-1].Value
	outcome := &TrendOutcome{
		Direction:  domain.TrendStable,
		FirstValue: first,
		LastValue:  last,
	}

	if len(points) == 1 {
		return outcome, nil
	}

	if first == 0 {
		if last == 0 {
			return outcome, nil
		}
		// Any move off a zero baseline is a real move, but its
		// relative size is undefined
		outcome.BaselineUndefined = true
		if last > 0 {
			outcome.Direction = domain.TrendIncreasing
		} else {
			outcome.Direction = domain.TrendDecreasing
		}
		return outcome, nil
	}

	change := (last - first) / first * 100
	outcome.PercentageChange = change

	switch {
	case change > stableThresholdPercent:
		outcome.Direction = domain.TrendIncreasing
	case change < -stableThresholdPercent:
		outcome.Direction = domain.TrendDecreasing
	default:
		outcome.Direction = domain.TrendStable
	}
	return outcome, nil
}
