package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/spf13/viper"
)

// Default threshold settings
const (
	// DefaultThresholdMultiplier defines how far a document may drift from
	// its baseline before a verdict is emitted (threshold = baseline * multiplier)
	DefaultThresholdMultiplier = 2.0

	// DefaultHighComplexityScore flags documents above this absolute score
	// in summaries, independent of any baseline
	DefaultHighComplexityScore = 50.0

	// DefaultSizeWeight is the per-KB contribution to the total score
	DefaultSizeWeight = 0.1
)

// Default semantic collaborator settings
const (
	DefaultSemanticBaseURL = "https://api.openai.com"

	DefaultSemanticModel = "gpt-3.5-turbo"

	// DefaultSemanticAPIKeyEnv names the environment variable holding the key
	DefaultSemanticAPIKeyEnv = "OPENAI_API_KEY"

	// DefaultSemanticMaxChars truncates document text sent to the collaborator
	DefaultSemanticMaxChars = 3000

	// DefaultSemanticDelayMS is the minimum delay between collaborator calls
	DefaultSemanticDelayMS = 500

	DefaultSemanticMaxTokens   = 500
	DefaultSemanticTemperature = 0.3
)

// Config represents the main configuration structure
type Config struct {
	// Scoring holds indicator weights for the complexity score
	Scoring ScoringConfig `json:"scoring" mapstructure:"scoring" yaml:"scoring"`

	// Patterns holds the conflict and best-practice pattern tables
	Patterns PatternsConfig `json:"patterns" mapstructure:"patterns" yaml:"patterns"`

	// Threshold holds the baseline table and multiplier
	Threshold ThresholdConfig `json:"threshold" mapstructure:"threshold" yaml:"threshold"`

	// Semantic holds settings for the optional semantic collaborator
	Semantic SemanticConfig `json:"semantic" mapstructure:"semantic" yaml:"semantic"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Analysis holds general analysis configuration
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`

	// Performance holds concurrency settings
	Performance PerformanceConfig `json:"performance,omitempty" mapstructure:"performance" yaml:"performance"`
}

// ScoringConfig holds the indicator weights. Each weight multiplies the
// raw occurrence count of its indicator; the size weight multiplies the
// document size in KB and is the only continuous term.
type ScoringConfig struct {
	MermaidDiagrams  float64 `json:"mermaid_diagrams" mapstructure:"mermaid_diagrams" yaml:"mermaid_diagrams"`
	CodeBlocks       float64 `json:"code_blocks" mapstructure:"code_blocks" yaml:"code_blocks"`
	NestedHeaders    float64 `json:"nested_headers" mapstructure:"nested_headers" yaml:"nested_headers"`
	ConditionalLogic float64 `json:"conditional_logic" mapstructure:"conditional_logic" yaml:"conditional_logic"`
	WorkflowSteps    float64 `json:"workflow_steps" mapstructure:"workflow_steps" yaml:"workflow_steps"`
	CriticalRules    float64 `json:"critical_rules" mapstructure:"critical_rules" yaml:"critical_rules"`
	ModeTransitions  float64 `json:"mode_transitions" mapstructure:"mode_transitions" yaml:"mode_transitions"`
	VisualMaps       float64 `json:"visual_maps" mapstructure:"visual_maps" yaml:"visual_maps"`

	// SizeWeight is applied to the document size in KB
	SizeWeight float64 `json:"size_weight" mapstructure:"size_weight" yaml:"size_weight"`

	// HighComplexityScore flags documents above this absolute score
	HighComplexityScore float64 `json:"high_complexity_score" mapstructure:"high_complexity_score" yaml:"high_complexity_score"`
}

// PatternDefinition is one named pattern rule
type PatternDefinition struct {
	// Pattern is a regular expression, evaluated case-insensitively
	Pattern string `json:"pattern" mapstructure:"pattern" yaml:"pattern"`

	// Exclude, when set, is a regular expression whose matches are
	// subtracted from the Pattern match count. RE2 has no negative
	// lookahead; this expresses "Pattern but not Exclude".
	Exclude string `json:"exclude,omitempty" mapstructure:"exclude" yaml:"exclude,omitempty"`

	// Label describes the kind of risk the pattern flags
	Label string `json:"label" mapstructure:"label" yaml:"label"`
}

// PatternsConfig holds the two pattern families. They are kept as
// separate named lists so structural risk and code-quality risk are
// never merged.
type PatternsConfig struct {
	Conflicts  []PatternDefinition `json:"conflicts" mapstructure:"conflicts" yaml:"conflicts"`
	Violations []PatternDefinition `json:"violations" mapstructure:"violations" yaml:"violations"`
}

// ThresholdConfig holds the baseline table and multiplier. Baselines are
// an ordered list: resolution picks the first key contained in the
// document id, in declaration order.
type ThresholdConfig struct {
	Multiplier float64                `json:"multiplier" mapstructure:"multiplier" yaml:"multiplier"`
	Baselines  []domain.BaselineEntry `json:"baselines" mapstructure:"baselines" yaml:"baselines"`
}

// SemanticConfig holds settings for the optional semantic collaborator
type SemanticConfig struct {
	// Enabled controls whether semantic analysis is attempted at all
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// BaseURL of an OpenAI-compatible chat completions endpoint
	BaseURL string `json:"base_url" mapstructure:"base_url" yaml:"base_url"`

	// Model to request
	Model string `json:"model" mapstructure:"model" yaml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	// A missing key never aborts the run; semantic analysis is skipped.
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env" yaml:"api_key_env"`

	// MaxChars truncates document text sent per request
	MaxChars int `json:"max_chars" mapstructure:"max_chars" yaml:"max_chars"`

	// RequestDelayMS is the minimum delay between calls (rate limiting)
	RequestDelayMS int `json:"request_delay_ms" mapstructure:"request_delay_ms" yaml:"request_delay_ms"`

	MaxTokens   int     `json:"max_tokens" mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `json:"temperature" mapstructure:"temperature" yaml:"temperature"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether to show per-document breakdowns
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`

	// SortBy specifies how to sort results: score, name, size
	SortBy string `json:"sort_by" mapstructure:"sort_by" yaml:"sort_by"`

	// MinScore is the minimum score to report (filters low values)
	MinScore float64 `json:"min_score" mapstructure:"min_score" yaml:"min_score"`

	// Directory specifies where report artifacts are written
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// AnalysisConfig holds general analysis configuration
type AnalysisConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether to analyze directories recursively
	Recursive bool `json:"recursive" mapstructure:"recursive" yaml:"recursive"`

	// RespectGitignore skips files ignored by a .gitignore at the scan root
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// PerformanceConfig holds concurrency settings for the parallel executor
type PerformanceConfig struct {
	// MaxGoroutines caps concurrent document tasks (0 = NumCPU)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds a whole batch of tasks (0 = default)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			MermaidDiagrams:     5,
			CodeBlocks:          2,
			NestedHeaders:       3,
			ConditionalLogic:    4,
			WorkflowSteps:       2,
			CriticalRules:       3,
			ModeTransitions:     2,
			VisualMaps:          4,
			SizeWeight:          DefaultSizeWeight,
			HighComplexityScore: DefaultHighComplexityScore,
		},
		Patterns: PatternsConfig{
			Conflicts: []PatternDefinition{
				{Pattern: `CRITICAL.*MANDATORY`, Label: "Mandatory rule complexity"},
				{Pattern: `MUST.*BEFORE`, Label: "Sequential dependency complexity"},
				{Pattern: `NO.*continue`, Label: "Blocking rule complexity"},
				{Pattern: `BLOCKED`, Label: "Blocking rule detected"},
				{Pattern: `REQUIRES.*MODE`, Label: "Mode dependency complexity"},
				{Pattern: `SWITCH.*MODE`, Label: "Mode transition complexity"},
			},
			Violations: []PatternDefinition{
				{Pattern: `p\.\w+`, Label: `Avoid "p." prefix for fields`},
				{Pattern: `import pandas as pd`, Label: "Avoid pandas aliasing"},
				{Pattern: `JOIN\s+`, Exclude: `JOIN\s+LEFT`, Label: "Prefer LEFT JOIN over simple JOIN"},
				{Pattern: `ON\s+\w+\.\w+\s*=\s*\w+\.\w+`, Label: "Prefer USING() over ON for joins"},
				{Pattern: `pd\.`, Label: "Avoid pandas aliasing (pd.)"},
				{Pattern: `as pd`, Label: "Avoid pandas aliasing (as pd)"},
			},
		},
		Threshold: ThresholdConfig{
			Multiplier: DefaultThresholdMultiplier,
			Baselines: []domain.BaselineEntry{
				{Key: "workflow-level4.mdc", Score: 80},
				{Key: "reflection-comprehensive.mdc", Score: 70},
				{Key: "architectural-planning.mdc", Score: 90},
				{Key: "phased-implementation.mdc", Score: 75},
				{Key: "main-optimized.mdc", Score: 60},
				{Key: "hierarchical-rule-loading.mdc", Score: 45},
				{Key: "mode-transition-optimization.mdc", Score: 40},
				{Key: "optimization-integration.mdc", Score: 50},
				{Key: "optimized-workflow-level1.mdc", Score: 30},
				{Key: "optimized-creative-template.mdc", Score: 35},
			},
		},
		Semantic: SemanticConfig{
			Enabled:        true,
			BaseURL:        DefaultSemanticBaseURL,
			Model:          DefaultSemanticModel,
			APIKeyEnv:      DefaultSemanticAPIKeyEnv,
			MaxChars:       DefaultSemanticMaxChars,
			RequestDelayMS: DefaultSemanticDelayMS,
			MaxTokens:      DefaultSemanticMaxTokens,
			Temperature:    DefaultSemanticTemperature,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
			SortBy:      "score",
			MinScore:    0,
			Directory:   ".",
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{"**/*.md", "**/*.mdc"},
			ExcludePatterns: []string{
				"node_modules",
				"vendor",
				".git",
				"dist",
				"build",
				".cache",
				"coverage",
			},
			Recursive:        true,
			RespectGitignore: true,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: 0,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context: if no
// explicit config path is given, one is discovered upward from the target.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common
// locations, walking upward from the analyzed path first.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"rulescan.yaml",
		"rulescan.yml",
		".rulescan.yaml",
		".rulescan.yml",
		"rulescan.json",
		".rulescan.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// XDG config directory, then home
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "rulescan"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "rulescan"), candidates); config != "" {
			return config
		}
		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	// RULESCAN_CONFIG environment variable as last fallback
	if envConfig := os.Getenv("RULESCAN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	// Indicator weights must be non-negative
	weights := map[string]float64{
		"scoring.mermaid_diagrams":  c.Scoring.MermaidDiagrams,
		"scoring.code_blocks":       c.Scoring.CodeBlocks,
		"scoring.nested_headers":    c.Scoring.NestedHeaders,
		"scoring.conditional_logic": c.Scoring.ConditionalLogic,
		"scoring.workflow_steps":    c.Scoring.WorkflowSteps,
		"scoring.critical_rules":    c.Scoring.CriticalRules,
		"scoring.mode_transitions":  c.Scoring.ModeTransitions,
		"scoring.visual_maps":       c.Scoring.VisualMaps,
		"scoring.size_weight":       c.Scoring.SizeWeight,
	}
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s must be >= 0, got %v", name, w)
		}
	}

	if c.Threshold.Multiplier <= 0 {
		return fmt.Errorf("threshold.multiplier must be > 0, got %v", c.Threshold.Multiplier)
	}

	for i, b := range c.Threshold.Baselines {
		if b.Key == "" {
			return fmt.Errorf("threshold.baselines[%d] has an empty key", i)
		}
		if b.Score < 0 {
			return fmt.Errorf("threshold.baselines[%d] (%s) has a negative score %v", i, b.Key, b.Score)
		}
	}

	for i, p := range c.Patterns.Conflicts {
		if p.Pattern == "" || p.Label == "" {
			return fmt.Errorf("patterns.conflicts[%d] needs both pattern and label", i)
		}
	}
	for i, p := range c.Patterns.Violations {
		if p.Pattern == "" || p.Label == "" {
			return fmt.Errorf("patterns.violations[%d] needs both pattern and label", i)
		}
	}

	validFormats := map[string]bool{
		"text":     true,
		"json":     true,
		"yaml":     true,
		"markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, markdown", c.Output.Format)
	}

	validSortBy := map[string]bool{
		"score": true,
		"name":  true,
		"size":  true,
	}
	if !validSortBy[c.Output.SortBy] {
		return fmt.Errorf("invalid output.sort_by '%s', must be one of: score, name, size", c.Output.SortBy)
	}

	if c.Output.MinScore < 0 {
		return fmt.Errorf("output.min_score must be >= 0, got %v", c.Output.MinScore)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	if c.Semantic.MaxChars < 0 {
		return fmt.Errorf("semantic.max_chars must be >= 0, got %d", c.Semantic.MaxChars)
	}
	if c.Semantic.RequestDelayMS < 0 {
		return fmt.Errorf("semantic.request_delay_ms must be >= 0, got %d", c.Semantic.RequestDelayMS)
	}

	return nil
}

// ResolveBaseline returns the first baseline entry whose key is a
// substring of the document id, in table declaration order. The boolean
// is false when no key matches; such documents are excluded from
// threshold checking entirely.
func (c *ThresholdConfig) ResolveBaseline(documentID string) (domain.BaselineEntry, bool) {
	for _, entry := range c.Baselines {
		if entry.Key != "" && strings.Contains(documentID, entry.Key) {
			return entry, true
		}
	}
	return domain.BaselineEntry{}, false
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("scoring", config.Scoring)
	v.Set("patterns", config.Patterns)
	v.Set("threshold", config.Threshold)
	v.Set("semantic", config.Semantic)
	v.Set("output", config.Output)
	v.Set("analysis", config.Analysis)

	return v.WriteConfig()
}
