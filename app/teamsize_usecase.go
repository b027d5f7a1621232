package app

import (
	"context"
	"fmt"

	"github.com/scopeworks/fpoint/domain"
)

// TeamSizeUseCase orchestrates the staffing estimation workflow
type TeamSizeUseCase struct {
	service   domain.TeamSizeService
	formatter domain.TeamSizeFormatter
}

// NewTeamSizeUseCase creates a new team size use case
func NewTeamSizeUseCase(service domain.TeamSizeService, formatter domain.TeamSizeFormatter) *TeamSizeUseCase {
	return &TeamSizeUseCase{
		service:   service,
		formatter: formatter,
	}
}

// Execute performs the complete staffing estimation workflow
func (uc *TeamSizeUseCase) Execute(ctx context.Context, req domain.TeamSizeRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("output writer is required", nil)
	}

	result, err := uc.service.EstimateTeam(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.Write(result, req.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	return nil
}

// TeamSizeUseCaseBuilder provides a builder pattern for creating TeamSizeUseCase
type TeamSizeUseCaseBuilder struct {
	service   domain.TeamSizeService
	formatter domain.TeamSizeFormatter
}

// NewTeamSizeUseCaseBuilder creates a new builder
func NewTeamSizeUseCaseBuilder() *TeamSizeUseCaseBuilder {
	return &TeamSizeUseCaseBuilder{}
}

// WithService sets the team size service
func (b *TeamSizeUseCaseBuilder) WithService(service domain.TeamSizeService) *TeamSizeUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the team size formatter
func (b *TeamSizeUseCaseBuilder) WithFormatter(formatter domain.TeamSizeFormatter) *TeamSizeUseCaseBuilder {
	b.formatter = formatter
	return b
}

// Build creates the TeamSizeUseCase with the configured dependencies
func (b *TeamSizeUseCaseBuilder) Build() (*TeamSizeUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("team size service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("team size formatter is required")
	}
	return NewTeamSizeUseCase(b.service, b.formatter), nil
}
