package mcp

import (
	"github.com/scopeworks/fpoint/app"
	"github.com/scopeworks/fpoint/domain"
	"github.com/scopeworks/fpoint/internal/config"
	"github.com/scopeworks/fpoint/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	calculation domain.CalculationService
	reader      domain.EstimateReader
	teamSize    domain.TeamSizeService
	trend       domain.TrendService
	config      *config.Config
	configPath  string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		calculation: service.NewCalculationService(),
		reader:      service.NewEstimateReader(),
		teamSize:    service.NewTeamSizeService(),
		trend:       service.NewTrendService(),
		config:      cfg,
		configPath:  configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCalculateUseCase assembles a fresh CalculateUseCase with injected dependencies.
func (d *Dependencies) BuildCalculateUseCase() (*app.CalculateUseCase, error) {
	return app.NewCalculateUseCaseBuilder().
		WithService(d.calculation).
		WithReader(d.reader).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
}
