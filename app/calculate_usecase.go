package app

import (
	"context"
	"fmt"

	"github.com/scopeworks/fpoint/domain"
)

// CalculateUseCase orchestrates the function point calculation workflow
type CalculateUseCase struct {
	service      domain.CalculationService
	reader       domain.EstimateReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressManager
}

// NewCalculateUseCase creates a new calculate use case
func NewCalculateUseCase(
	service domain.CalculationService,
	reader domain.EstimateReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
	progress domain.ProgressManager,
) *CalculateUseCase {
	return &CalculateUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
	}
}

// Execute performs the complete calculation workflow
func (uc *CalculateUseCase) Execute(ctx context.Context, req domain.CalculateRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return domain.NewConfigError("failed to load configuration", err)
	}

	response, err := uc.calculate(ctx, finalReq)
	if err != nil {
		return err
	}

	if err := uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// ExecuteAndReturn performs the calculation and returns the response
// without formatting, for callers that post-process the result
func (uc *CalculateUseCase) ExecuteAndReturn(ctx context.Context, req domain.CalculateRequest) (*domain.CalculateResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	return uc.calculate(ctx, finalReq)
}

// calculate runs the calculation with progress tracking
func (uc *CalculateUseCase) calculate(ctx context.Context, finalReq domain.CalculateRequest) (*domain.CalculateResponse, error) {
	if uc.progress != nil {
		uc.progress.Initialize(len(finalReq.Paths))
		uc.progress.Start()
		defer uc.progress.Close()
	}

	response, err := uc.service.Calculate(ctx, finalReq)
	if err != nil {
		if uc.progress != nil {
			uc.progress.Complete(false)
		}
		return nil, domain.NewCalculationError("function point calculation failed", err)
	}

	if uc.progress != nil {
		uc.progress.Complete(true)
	}

	return response, nil
}

// validateRequest validates the calculation request
func (uc *CalculateUseCase) validateRequest(req domain.CalculateRequest) error {
	if len(req.Paths) == 0 && req.Estimate == nil {
		return fmt.Errorf("no input paths or inline estimate specified")
	}

	if req.OutputWriter == nil {
		return fmt.Errorf("output writer is required")
	}

	return req.Validate()
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CalculateUseCase) loadAndMergeConfig(req domain.CalculateRequest) (domain.CalculateRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.CalculateRequest
	var err error

	if req.ConfigPath != "" {
		configReq, err = uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq != nil {
		// Request flags take precedence over config file values
		merged := uc.configLoader.MergeConfig(configReq, &req)
		return *merged, nil
	}

	return req, nil
}

// CalculateUseCaseBuilder provides a builder pattern for creating CalculateUseCase
type CalculateUseCaseBuilder struct {
	service      domain.CalculationService
	reader       domain.EstimateReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
	progress     domain.ProgressManager
}

// NewCalculateUseCaseBuilder creates a new builder
func NewCalculateUseCaseBuilder() *CalculateUseCaseBuilder {
	return &CalculateUseCaseBuilder{}
}

// WithService sets the calculation service
func (b *CalculateUseCaseBuilder) WithService(service domain.CalculationService) *CalculateUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the estimate reader
func (b *CalculateUseCaseBuilder) WithReader(reader domain.EstimateReader) *CalculateUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *CalculateUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *CalculateUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CalculateUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *CalculateUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithProgress sets the progress manager
func (b *CalculateUseCaseBuilder) WithProgress(progress domain.ProgressManager) *CalculateUseCaseBuilder {
	b.progress = progress
	return b
}

// Build creates the CalculateUseCase with the configured dependencies
func (b *CalculateUseCaseBuilder) Build() (*CalculateUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("calculation service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("estimate reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	if b.configLoader == nil {
		b.configLoader = &noOpConfigLoader{}
	}

	return NewCalculateUseCase(
		b.service,
		b.reader,
		b.formatter,
		b.configLoader,
		b.progress,
	), nil
}

// noOpConfigLoader is a no-op implementation of ConfigurationLoader
type noOpConfigLoader struct{}

func (n *noOpConfigLoader) LoadConfig(path string) (*domain.CalculateRequest, error) {
	return nil, nil
}

func (n *noOpConfigLoader) LoadDefaultConfig() *domain.CalculateRequest {
	return nil
}

func (n *noOpConfigLoader) MergeConfig(base *domain.CalculateRequest, override *domain.CalculateRequest) *domain.CalculateRequest {
	return override
}
