package app

import (
	"context"
	"fmt"

	"github.com/scopeworks/fpoint/domain"
)

// TrendUseCase orchestrates the history analysis workflow
type TrendUseCase struct {
	service   domain.TrendService
	formatter domain.TrendFormatter
}

// NewTrendUseCase creates a new trend use case
func NewTrendUseCase(service domain.TrendService, formatter domain.TrendFormatter) *TrendUseCase {
	return &TrendUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the complete history analysis workflow
func (uc *TrendUseCase) Execute(ctx context.Context, req domain.TrendRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}

	result, err := uc.service.AnalyzeTrend(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.Write(result, req.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// TrendUseCaseBuilder provides a builder pattern for creating TrendUseCase
type TrendUseCaseBuilder struct {
	service   domain.TrendService
	formatter domain.TrendFormatter
}

// NewTrendUseCaseBuilder creates a new builder
func NewTrendUseCaseBuilder() *TrendUseCaseBuilder {
	return &TrendUseCaseBuilder{}
}

// WithService sets the trend service
func (b *TrendUseCaseBuilder) WithService(service domain.TrendService) *TrendUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the trend formatter
func (b *TrendUseCaseBuilder) WithFormatter(formatter domain.TrendFormatter) *TrendUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the TrendUseCase with the configured dependencies
func (b *TrendUseCaseBuilder) Build() (*TrendUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("trend service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("trend formatter is required")
	}
	return NewTrendUseCase(b.service, b.formatter), nil
}
