package service

import (
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

// ConfigurationLoaderImpl loads and merges configuration for use cases
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path, with config
// file discovery relative to the analyzed target when path is empty.
func (c *ConfigurationLoaderImpl) LoadConfig(path string, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(path, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the discovered configuration, falling back to
// built-in defaults when no config file exists or parsing fails.
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// ScoreRequestOverrides holds CLI flag values layered over file config
type ScoreRequestOverrides struct {
	OutputFormat string
	ShowDetails  bool
	SortBy       string
	MinScore     float64
}

// ApplyScoreOverrides merges CLI flags into a score request built from
// file configuration. Only explicitly set flags override; zero values
// mean "keep the config file setting".
func (c *ConfigurationLoaderImpl) ApplyScoreOverrides(cfg *config.Config, overrides ScoreRequestOverrides) domain.ScoreRequest {
	req := domain.ScoreRequest{
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ShowDetails:  cfg.Output.ShowDetails,
		SortBy:       domain.SortCriteria(cfg.Output.SortBy),
		MinScore:     cfg.Output.MinScore,
	}

	if overrides.OutputFormat != "" {
		req.OutputFormat = domain.OutputFormat(overrides.OutputFormat)
	}
	if overrides.ShowDetails {
		req.ShowDetails = true
	}
	if overrides.SortBy != "" {
		req.SortBy = domain.SortCriteria(overrides.SortBy)
	}
	if overrides.MinScore > 0 {
		req.MinScore = overrides.MinScore
	}

	return req
}
