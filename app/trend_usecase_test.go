package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/service"
)

func newTrendUseCase(t *testing.T) *TrendUseCase {
	t.Helper()
	uc, err := NewTrendUseCaseBuilder().
		WithService(service.NewTrendService()).
		WithFormatter(service.NewTrendFormatter()).
		Build()
	require.NoError(t, err)
	return uc
}

func TestTrendUseCaseFromHistoryFile(t *testing.T) {
	dir := t.TempDir()
	content := `project: billing
versions:
  - version: 1
    status: superseded
    components:
      - {name: File, kind: ILF, det: 5, ret: 1}
  - version: 2
    components:
      - {name: File, kind: ILF, det: 25, ret: 2}
      - {name: Report, kind: EO, det: 10, ftr: 2}
`
	path := filepath.Join(dir, "history.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	var buf bytes.Buffer
	uc := newTrendUseCase(t)
	err := uc.Execute(context.Background(), domain.TrendRequest{
		HistoryPath:  path,
		Metric:       domain.TrendMetricAFP,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Estimate Trend Analysis")
}

func TestTrendUseCaseInlineEstimates(t *testing.T) {
	estimates := []*domain.Estimate{
		{Version: 1, Status: domain.EstimateStatusSuperseded, AdjustedFP: 100},
		{Version: 2, Status: domain.EstimateStatusFinalized, AdjustedFP: 130},
	}

	var buf bytes.Buffer
	uc := newTrendUseCase(t)
	err := uc.Execute(context.Background(), domain.TrendRequest{
		Estimates:    estimates,
		Metric:       domain.TrendMetricAFP,
		OutputFormat: domain.OutputFormatText,
		OutputWriter: &buf,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "increasing")
	assert.Contains(t, buf.String(), "+30.0%")
}

func TestTrendUseCaseRequiresWriter(t *testing.T) {
	uc := newTrendUseCase(t)
	err := uc.Execute(context.Background(), domain.TrendRequest{
		Estimates: []*domain.Estimate{{Version: 1}},
		Metric:    domain.TrendMetricAFP,
	})
	assert.Error(t, err)
}
