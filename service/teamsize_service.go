package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/analyzer"
	"github.com/scopeworks/fpoint/internal/version"
)

// TeamSizeServiceImpl implements the TeamSizeService interface
type TeamSizeServiceImpl struct{}

// NewTeamSizeService creates a new team size service implementation
func NewTeamSizeService() *TeamSizeServiceImpl {
	return &TeamSizeServiceImpl{}
}

// EstimateTeam derives team size and duration from effort
func (s *TeamSizeServiceImpl) EstimateTeam(ctx context.Context, req domain.TeamSizeRequest) (*domain.TeamSizeResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("team estimation cancelled: %w", ctx.Err())
	default:
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	effortHours := req.TotalEffortHours
	if effortHours <= 0 {
		derived, err := analyzer.ComputeEffort(req.AdjustedFP, req.ProductivityFactor)
		if err != nil {
			return nil, err
		}
		effortHours = derived
	}

	plan, err := analyzer.SolveTeamPlan(req.AdjustedFP, effortHours, req.HoursPerDay, req.BufferPercent, req.FixedDurationMonths, req.FixedTeamSize)
	if err != nil {
		return nil, err
	}

	result := &domain.TeamSizeResult{
		AdjustedFP:       req.AdjustedFP,
		TotalEffortHours: effortHours,
		BufferPercent:    req.BufferPercent,
		HoursPerDay:      req.HoursPerDay,

		BufferedEffortHours: plan.BufferedEffortHours,
		RecommendedTeamSize: plan.RecommendedTeamSize,
		MinTeamSize:         plan.MinTeamSize,
		MaxTeamSize:         plan.MaxTeamSize,
		DurationMonths:      plan.DurationMonths,
		MinDurationMonths:   plan.MinDurationMonths,
		MaxDurationMonths:   plan.MaxDurationMonths,

		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}

	// The experience tiers need a magnitude; skip them when the
	// caller supplied effort directly
	if req.AdjustedFP > 0 {
		result.IdealMinTeamSize, result.IdealMaxTeamSize = analyzer.IdealTeamSizeRange(req.AdjustedFP)
	}

	return result, nil
}
