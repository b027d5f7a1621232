package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeworks/fpoint/domain"
)

func buildTestEstimate() *domain.Estimate {
	est := domain.NewDraftEstimate("billing", "Billing System")
	est.Components = []domain.Component{
		{Name: "Customer master", Kind: domain.KindILF, DET: 22, RET: 3},
		{Name: "Tax rate feed", Kind: domain.KindEIF, DET: 10, RET: 1},
		{Name: "Register payment", Kind: domain.KindEI, DET: 10, FTR: 1},
		{Name: "Monthly statement", Kind: domain.KindEO, DET: 25, FTR: 2},
		{Name: "Account lookup", Kind: domain.KindEQ,
			Dual: &domain.EQSides{InputFTR: 1, InputDET: 4, OutputFTR: 1, OutputDET: 10}},
	}
	// Total influence 28 -> VAF 0.93
	est.GSC = domain.GSCVector{3, 2, 3, 2, 2, 3, 2, 2, 2, 1, 1, 2, 1, 2}
	return est
}

func defaultCalcRequest() domain.CalculateRequest {
	return domain.CalculateRequest{
		OutputFormat: domain.OutputFormatText,
		SortBy:       domain.SortByKind,
		Validation:   domain.ValidationOptions{EQDETCeiling: domain.DefaultEQDETCeiling, BoundaryWarnings: false},
	}
}

func TestCalculateEstimate(t *testing.T) {
	svc := NewCalculationService()
	est := buildTestEstimate()

	result, err := svc.CalculateEstimate(context.Background(), est, defaultCalcRequest())
	require.NoError(t, err)

	// ILF average(10) + EIF low(5) + EI average(4) + EO average(5) + EQ dual(4)
	assert.Equal(t, 28, result.UnadjustedFP)
	assert.Equal(t, 28, result.TotalInfluence)
	assert.InDelta(t, 0.93, result.VAF, 1e-9)
	assert.InDelta(t, 26.04, result.AdjustedFP, 1e-9)
	assert.True(t, result.Valid)

	// No productivity factor anywhere, so no effort figure
	assert.Zero(t, result.EffortHours)

	// Derived values land back on the draft
	assert.Equal(t, 28, est.UnadjustedFP)
	assert.False(t, est.CalculatedAt.IsZero())
}

func TestCalculateEstimateWithProductivityFactor(t *testing.T) {
	svc := NewCalculationService()
	req := defaultCalcRequest()
	req.ProductivityFactor = 10

	result, err := svc.CalculateEstimate(context.Background(), buildTestEstimate(), req)
	require.NoError(t, err)
	assert.InDelta(t, 260.4, result.EffortHours, 1e-9)
}

func TestCalculateEstimateRequestFactorWinsOverFile(t *testing.T) {
	svc := NewCalculationService()
	est := buildTestEstimate()
	est.ProductivityFactor = 20

	req := defaultCalcRequest()
	req.ProductivityFactor = 10

	result, err := svc.CalculateEstimate(context.Background(), est, req)
	require.NoError(t, err)
	assert.InDelta(t, 260.4, result.EffortHours, 1e-9)
}

func TestCalculateEstimateDualInquiryRatings(t *testing.T) {
	svc := NewCalculationService()
	est := buildTestEstimate()

	result, err := svc.CalculateEstimate(context.Background(), est, defaultCalcRequest())
	require.NoError(t, err)

	var dual *domain.ComponentResult
	for i := range result.Components {
		if result.Components[i].Component.UsesDualCount() {
			dual = &result.Components[i]
		}
	}
	require.NotNil(t, dual)

	// Input side: EI matrix FTR=1, DET=4 -> low. Output side: EO
	// matrix FTR=1, DET=10 -> average. The output side wins.
	assert.Equal(t, domain.ComplexityLow, dual.InputRating)
	assert.Equal(t, domain.ComplexityAverage, dual.OutputRating)
	assert.Equal(t, domain.ComplexityAverage, dual.Complexity)
	assert.Equal(t, 4, dual.Weight)
}

func TestCalculateEstimateInvalidComponent(t *testing.T) {
	svc := NewCalculationService()
	est := buildTestEstimate()
	est.Components = append(est.Components, domain.Component{
		Name: "Broken", Kind: domain.KindILF, DET: 0, RET: 1,
	})

	result, err := svc.CalculateEstimate(context.Background(), est, defaultCalcRequest())
	require.NoError(t, err)

	assert.False(t, result.Valid)
	// The broken component contributes nothing to the count
	assert.Equal(t, 28, result.UnadjustedFP)
	assert.Len(t, result.Components, 6)
}

func TestCalculateEstimateKindFilter(t *testing.T) {
	svc := NewCalculationService()
	req := defaultCalcRequest()
	req.KindFilter = []domain.ComponentKind{domain.KindILF, domain.KindEIF}

	result, err := svc.CalculateEstimate(context.Background(), buildTestEstimate(), req)
	require.NoError(t, err)

	assert.Len(t, result.Components, 2)
	assert.Equal(t, 15, result.UnadjustedFP)
}

func TestCalculateInlineEstimate(t *testing.T) {
	svc := NewCalculationService()
	req := defaultCalcRequest()
	req.Estimate = buildTestEstimate()

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Summary.TotalEstimates)
	assert.Equal(t, 5, resp.Summary.TotalComponents)
	assert.Equal(t, 28, resp.Summary.TotalUnadjustedFP)
	assert.Equal(t, 2, resp.Summary.KindBreakdowns[domain.KindILF].Count+resp.Summary.KindBreakdowns[domain.KindEIF].Count)
	assert.NotEmpty(t, resp.GeneratedAt)
}

func TestCalculateFromFiles(t *testing.T) {
	dir := t.TempDir()
	content := `project: billing
name: Billing System
version: 1
productivity_factor: 8.0
gsc: [3, 2, 3, 2, 2, 3, 2, 2, 2, 1, 1, 2, 1, 2]
components:
  - name: Customer master
    kind: ILF
    det: 22
    ret: 3
  - name: Register payment
    kind: EI
    det: 10
    ftr: 1
`
	path := filepath.Join(dir, "billing.fpe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	svc := NewCalculationService()
	req := defaultCalcRequest()
	req.Paths = []string{dir}
	req.Recursive = true

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.Equal(t, path, resp.Results[0].SourceFile)
	assert.Equal(t, 14, resp.Results[0].UnadjustedFP)
	assert.Greater(t, resp.Results[0].EffortHours, 0.0)
	assert.Empty(t, resp.Errors)
}

func TestCalculateBadFileDoesNotAbortBatch(t *testing.T) {
	dir := t.TempDir()
	good := `project: a
components:
  - {name: File, kind: ILF, det: 5, ret: 1}
`
	bad := `components:
  - {name: Mystery, kind: XXX, det: 5}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.fpe.yaml"), []byte(good), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.fpe.yaml"), []byte(bad), 0644))

	svc := NewCalculationService()
	req := defaultCalcRequest()
	req.Paths = []string{dir}
	req.Recursive = true

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, resp.Results, 1)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "bad.fpe.yaml")
}

func TestCalculateNoInput(t *testing.T) {
	svc := NewCalculationService()
	_, err := svc.Calculate(context.Background(), defaultCalcRequest())
	assert.Error(t, err)
}

func TestSortComponents(t *testing.T) {
	svc := NewCalculationService()
	components := []domain.ComponentResult{
		{Component: domain.Component{Name: "b", Kind: domain.KindEQ}, Complexity: domain.ComplexityLow, Weight: 3},
		{Component: domain.Component{Name: "a", Kind: domain.KindILF}, Complexity: domain.ComplexityHigh, Weight: 15},
		{Component: domain.Component{Name: "c", Kind: domain.KindEI}, Complexity: domain.ComplexityAverage, Weight: 4},
	}

	byName := svc.sortComponents(components, domain.SortByName)
	assert.Equal(t, "a", byName[0].Component.Name)
	assert.Equal(t, "c", byName[2].Component.Name)

	byPoints := svc.sortComponents(components, domain.SortByPoints)
	assert.Equal(t, 15, byPoints[0].Weight)
	assert.Equal(t, 3, byPoints[2].Weight)

	byComplexity := svc.sortComponents(components, domain.SortByComplexity)
	assert.Equal(t, domain.ComplexityHigh, byComplexity[0].Complexity)

	byKind := svc.sortComponents(components, domain.SortByKind)
	assert.Equal(t, domain.KindILF, byKind[0].Component.Kind)
	assert.Equal(t, domain.KindEQ, byKind[2].Component.Kind)

	// Original slice untouched
	assert.Equal(t, "b", components[0].Component.Name)
}

func TestValidateComponentService(t *testing.T) {
	svc := NewCalculationService()

	result, err := svc.ValidateComponent(context.Background(),
		domain.Component{Name: "ok", Kind: domain.KindEI, DET: 5, FTR: 1},
		domain.ValidationOptions{})
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = svc.ValidateComponent(context.Background(),
		domain.Component{Name: "bad kind", Kind: "LOL", DET: 5},
		domain.ValidationOptions{})
	assert.Error(t, err)
}

func TestClassifyComponentService(t *testing.T) {
	svc := NewCalculationService()

	result, err := svc.ClassifyComponent(context.Background(),
		domain.Component{Name: "Register payment", Kind: domain.KindEI, DET: 10, FTR: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplexityAverage, result.Complexity)
	assert.Equal(t, 4, result.Weight)
}
