package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

func TestTeamSizeUseCase(t *testing.T) {
	uc, err := NewTeamSizeUseCaseBuilder().
		WithService(service.NewTeamSizeService()).
		WithFormatter(service.NewTeamSizeFormatter()).
		Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	req := domain.TeamSizeRequest{
		AdjustedFP:         250,
		ProductivityFactor: 10,
		HoursPerDay:        6,
		BufferPercent:      20,
		OutputFormat:       domain.OutputFormatText,
		OutputWriter:       &buf,
	}

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Contains(t, buf.String(), "Team Size Estimate")
	assert.Contains(t, buf.String(), "8 people")
}

func TestTeamSizeUseCaseRequiresWriter(t *testing.T) {
	uc, err := NewTeamSizeUseCaseBuilder().
		WithService(service.NewTeamSizeService()).
		WithFormatter(service.NewTeamSizeFormatter()).
		Build()
	require.NoError(t, err)

	err = uc.Execute(context.Background(), domain.TeamSizeRequest{
		AdjustedFP:         100,
		ProductivityFactor: 10,
		HoursPerDay:        6,
	})
	assert.Error(t, err)
}

func TestTeamSizeUseCaseBuilderRequiresDependencies(t *testing.T) {
	_, err := NewTeamSizeUseCaseBuilder().Build()
	assert.Error(t, err)
}
