package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/analyzer"
	"github.com/scopeworks/fpoint/internal/version"
)

// TrendServiceImpl implements the TrendService interface
type TrendServiceImpl struct {
	reader domain.EstimateReader
}

// NewTrendService creates a new trend service implementation
func NewTrendService() *TrendServiceImpl {
	return &TrendServiceImpl{
		reader: NewEstimateReader(),
	}
}

// AnalyzeTrend computes direction and change across versions
func (s *TrendServiceImpl) AnalyzeTrend(ctx context.Context, req domain.TrendRequest) (*domain.TrendResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("trend analysis cancelled: %w", ctx.Err())
	default:
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	estimates := req.Estimates
	if req.HistoryPath != "" {
		loaded, err := s.reader.ReadHistory(req.HistoryPath)
		if err != nil {
			return nil, err
		}
		estimates = loaded
	}

	// Versions stored as component inventories carry no derived
	// values yet; price them before extracting the series.
	for _, est := range estimates {
		if est.AdjustedFP == 0 && len(est.Components) > 0 {
			if err := priceEstimate(est); err != nil {
				return nil, err
			}
		}
	}

	threshold := req.StableThresholdPercent
	if threshold == 0 {
		threshold = domain.DefaultStableThresholdPercent
	}

	points, err := analyzer.SeriesForMetric(estimates, req.Metric)
	if err != nil {
		return nil, err
	}

	outcome, err := analyzer.AnalyzeSeries(points, threshold)
	if err != nil {
		return nil, err
	}

	return &domain.TrendResult{
		Metric:            req.Metric,
		Direction:         outcome.Direction,
		PercentageChange:  outcome.PercentageChange,
		BaselineUndefined: outcome.BaselineUndefined,
		FirstValue:        outcome.FirstValue,
		LastValue:         outcome.LastValue,
		Points:            points,

		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

// priceEstimate fills in the derived values of one history version.
// Components that cannot be classified contribute nothing, matching
// how the calculation treats invalid counts.
func priceEstimate(est *domain.Estimate) error {
	ratings := make([]analyzer.Rating, 0, len(est.Components))
	for i := range est.Components {
		rating, err := analyzer.ClassifyComponent(est.Components[i])
		if err != nil {
			continue
		}
		ratings = append(ratings, *rating)
	}

	ufp := analyzer.ComputeUFP(ratings)
	vaf, err := analyzer.ComputeVAF(est.GSC)
	if err != nil {
		return err
	}
	afp := analyzer.ComputeAFP(ufp, vaf)

	est.UnadjustedFP = ufp
	est.VAF = vaf
	est.AdjustedFP = afp
	if est.ProductivityFactor > 0 {
		effort, err := analyzer.ComputeEffort(afp, est.ProductivityFactor)
		if err != nil {
			return err
		}
		est.EffortHours = effort
	}
	return nil
}
