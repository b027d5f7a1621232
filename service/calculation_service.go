package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/analyzer"
	"github.com/scopeworks/fpoint/internal/version"
)

// CalculationServiceImpl implements the CalculationService interface
type CalculationServiceImpl struct {
	reader   domain.EstimateReader
	executor domain.ParallelExecutor
}

// NewCalculationService creates a new calculation service implementation
func NewCalculationService() *CalculationServiceImpl {
	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(domain.DefaultMaxGoroutines)
	executor.SetTimeout(domain.DefaultTimeoutSeconds * time.Second)

	return &CalculationServiceImpl{
		reader:   NewEstimateReader(),
		executor: executor,
	}
}

// Calculate performs a full calculation on the given request
func (s *CalculationServiceImpl) Calculate(ctx context.Context, req domain.CalculateRequest) (*domain.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var results []domain.EstimateResult
	var warnings []string
	var errors []string
	filesAnalyzed := 0

	if req.Estimate != nil {
		result, err := s.CalculateEstimate(ctx, req.Estimate, req)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if len(req.Paths) > 0 {
		files, err := s.reader.CollectEstimateFiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 && req.Estimate == nil {
			return nil, domain.NewInvalidInputError("no estimate files found in the given paths", nil)
		}

		fileResults, fileWarnings, fileErrors := s.calculateFiles(ctx, files, req)
		results = append(results, fileResults...)
		warnings = append(warnings, fileWarnings...)
		errors = append(errors, fileErrors...)
		filesAnalyzed = len(files) - len(fileErrors)
	}

	if len(results) == 0 {
		return nil, domain.NewCalculationError("no estimates could be calculated", nil)
	}

	for i := range results {
		results[i].Components = s.sortComponents(results[i].Components, req.SortBy)
		for _, cr := range results[i].Components {
			for _, w := range cr.Validation.Warnings {
				warnings = append(warnings, fmt.Sprintf("[%s] %s: %s", results[i].Name, cr.Component.DisplayName(), w.Message))
			}
		}
	}

	return &domain.CalculateResponse{
		Results:     results,
		Summary:     s.buildSummary(results, filesAnalyzed),
		Warnings:    warnings,
		Errors:      errors,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		Config:      s.buildConfigForResponse(req),
	}, nil
}

// calculateFiles runs the per-file calculations in parallel. A file
// that fails to parse or calculate lands in the error list; the rest
// of the batch keeps going.
func (s *CalculationServiceImpl) calculateFiles(ctx context.Context, files []string, req domain.CalculateRequest) ([]domain.EstimateResult, []string, []string) {
	var mu sync.Mutex
	var results []domain.EstimateResult
	var warnings []string
	var errors []string

	tasks := make([]domain.ExecutableTask, 0, len(files))
	for _, file := range files {
		filePath := file
		tasks = append(tasks, NewSimpleTask(filePath, true, func(taskCtx context.Context) (interface{}, error) {
			estimate, err := s.reader.ReadEstimate(filePath)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Sprintf("[%s] %v", filePath, err))
				mu.Unlock()
				return nil, nil
			}

			result, err := s.CalculateEstimate(taskCtx, estimate, req)
			if err != nil {
				mu.Lock()
				errors = append(errors, fmt.Sprintf("[%s] %v", filePath, err))
				mu.Unlock()
				return nil, nil
			}
			result.SourceFile = filePath

			mu.Lock()
			results = append(results, *result)
			mu.Unlock()
			return result, nil
		}))
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		mu.Lock()
		errors = append(errors, err.Error())
		mu.Unlock()
	}

	// Parallel completion order is not stable; keep reports deterministic
	sort.Slice(results, func(i, j int) bool {
		return results[i].SourceFile < results[j].SourceFile
	})

	return results, warnings, errors
}

// CalculateEstimate calculates a single estimate
func (s *CalculationServiceImpl) CalculateEstimate(ctx context.Context, estimate *domain.Estimate, req domain.CalculateRequest) (*domain.EstimateResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("calculation cancelled: %w", ctx.Err())
	default:
	}

	if err := estimate.Validate(); err != nil {
		return nil, err
	}

	result := &domain.EstimateResult{
		EstimateID: estimate.ID,
		ProjectID:  estimate.ProjectID,
		Name:       estimate.Name,
		Version:    estimate.Version,
		Valid:      true,
	}

	var ratings []analyzer.Rating
	for i := range estimate.Components {
		component := estimate.Components[i]
		if len(req.KindFilter) > 0 && !containsKind(req.KindFilter, component.Kind) {
			continue
		}

		validation, err := analyzer.ValidateComponent(component, req.Validation)
		if err != nil {
			return nil, err
		}

		cr := domain.ComponentResult{
			Component:  component,
			Validation: *validation,
		}

		if validation.Valid {
			rating, err := analyzer.ClassifyComponent(component)
			if err != nil {
				return nil, err
			}
			cr.Complexity = rating.Complexity
			cr.Weight = rating.Weight
			cr.InputRating = rating.InputRating
			cr.OutputRating = rating.OutputRating
			ratings = append(ratings, *rating)
		} else {
			result.Valid = false
		}

		result.Components = append(result.Components, cr)
	}

	result.UnadjustedFP = analyzer.ComputeUFP(ratings)
	result.TotalInfluence = estimate.GSC.TotalInfluence()

	vaf, err := analyzer.ComputeVAF(estimate.GSC)
	if err != nil {
		return nil, err
	}
	result.VAF = vaf
	result.AdjustedFP = analyzer.ComputeAFP(result.UnadjustedFP, vaf)

	// The request-level factor wins over the one stored in the file.
	// Neither present means no effort figure; AFP still reports.
	productivityFactor := req.ProductivityFactor
	if productivityFactor <= 0 {
		productivityFactor = estimate.ProductivityFactor
	}
	if productivityFactor > 0 {
		effort, err := analyzer.ComputeEffort(result.AdjustedFP, productivityFactor)
		if err != nil {
			return nil, err
		}
		result.EffortHours = effort
	}

	if estimate.IsDraft() {
		if err := estimate.ApplyCalculation(result.UnadjustedFP, result.VAF, result.AdjustedFP, result.EffortHours); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ValidateComponent runs the validation pipeline on one component
func (s *CalculationServiceImpl) ValidateComponent(ctx context.Context, component domain.Component, opts domain.ValidationOptions) (*domain.ValidationResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("validation cancelled: %w", ctx.Err())
	default:
	}
	return analyzer.ValidateComponent(component, opts)
}

// ClassifyComponent rates one component without building a full response
func (s *CalculationServiceImpl) ClassifyComponent(ctx context.Context, component domain.Component) (*domain.ComponentResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("classification cancelled: %w", ctx.Err())
	default:
	}

	rating, err := analyzer.ClassifyComponent(component)
	if err != nil {
		return nil, err
	}
	return &domain.ComponentResult{
		Component:    component,
		Complexity:   rating.Complexity,
		Weight:       rating.Weight,
		InputRating:  rating.InputRating,
		OutputRating: rating.OutputRating,
	}, nil
}

// sortComponents sorts component results based on the specified criteria
func (s *CalculationServiceImpl) sortComponents(components []domain.ComponentResult, sortBy domain.SortCriteria) []domain.ComponentResult {
	sorted := make([]domain.ComponentResult, len(components))
	copy(sorted, components)

	switch sortBy {
	case domain.SortByName:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Component.DisplayName() < sorted[j].Component.DisplayName()
		})
	case domain.SortByPoints:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Weight > sorted[j].Weight
		})
	case domain.SortByComplexity:
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Complexity.Rank() != sorted[j].Complexity.Rank() {
				return sorted[i].Complexity.Rank() > sorted[j].Complexity.Rank()
			}
			return sorted[i].Weight > sorted[j].Weight
		})
	default:
		// Kind order, data functions before transactions
		kindOrder := make(map[domain.ComponentKind]int, 5)
		for i, kind := range domain.AllComponentKinds() {
			kindOrder[kind] = i
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			return kindOrder[sorted[i].Component.Kind] < kindOrder[sorted[j].Component.Kind]
		})
	}

	return sorted
}

// buildSummary creates aggregate statistics across all estimates
func (s *CalculationServiceImpl) buildSummary(results []domain.EstimateResult, filesAnalyzed int) domain.CalculateSummary {
	summary := domain.CalculateSummary{
		TotalEstimates:         len(results),
		FilesAnalyzed:          filesAnalyzed,
		KindBreakdowns:         make(map[domain.ComponentKind]domain.KindBreakdown),
		ComplexityDistribution: make(map[string]int),
	}

	for _, result := range results {
		summary.TotalComponents += len(result.Components)
		summary.TotalUnadjustedFP += result.UnadjustedFP
		summary.TotalAdjustedFP += result.AdjustedFP
		summary.TotalEffortHours += result.EffortHours

		for _, cr := range result.Components {
			bd := summary.KindBreakdowns[cr.Component.Kind]
			bd.Count++
			bd.FunctionPoints += cr.Weight
			summary.KindBreakdowns[cr.Component.Kind] = bd

			if cr.Complexity.IsValid() {
				summary.ComplexityDistribution[string(cr.Complexity)]++
			}
		}
	}

	return summary
}

func (s *CalculationServiceImpl) buildConfigForResponse(req domain.CalculateRequest) interface{} {
	return map[string]interface{}{
		"output_format":       string(req.OutputFormat),
		"sort_by":             string(req.SortBy),
		"show_details":        req.ShowDetails,
		"productivity_factor": req.ProductivityFactor,
		"eq_det_ceiling":      req.Validation.EQDETCeiling,
		"boundary_warnings":   req.Validation.BoundaryWarnings,
		"recursive":           req.Recursive,
		"include_patterns":    req.IncludePatterns,
		"exclude_patterns":    req.ExcludePatterns,
	}
}

func containsKind(kinds []domain.ComponentKind, kind domain.ComponentKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
