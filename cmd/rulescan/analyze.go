package main

import (
	"context"
	"os"

	"github.com/kobzevvv/rulescan/app"
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/service"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat     string
	analyzeDetails    bool
	analyzeSortBy     string
	analyzeMinScore   float64
	analyzeConfigPath string
	analyzeNoProgress bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Score rule documents for structural complexity",
		Long: `Score every rule document under the given paths. Each document gets a
weighted complexity score built from structural indicators (diagrams,
code blocks, nested headers, conditional logic, workflow steps) plus a
size term, and is classified against the conflict and best-practice
pattern tables.

Examples:
  # Analyze the rules directory
  rulescan analyze .cursor/rules/

  # Sorted by name with per-indicator breakdowns
  rulescan analyze --details --sort name rules/

  # JSON output for further processing
  rulescan analyze --format json rules/ > scores.json

  # Hide trivial documents
  rulescan analyze --min-score 10 rules/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Output format: text, json, yaml, markdown")
	cmd.Flags().BoolVarP(&analyzeDetails, "details", "d", false,
		"Show per-indicator score breakdowns")
	cmd.Flags().StringVar(&analyzeSortBy, "sort", "",
		"Sort results by: score, name, size")
	cmd.Flags().Float64Var(&analyzeMinScore, "min-score", 0,
		"Only report documents at or above this score")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false,
		"Disable progress output")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfig(analyzeConfigPath, args[0])
	if err != nil {
		return err
	}

	req := loader.ApplyScoreOverrides(cfg, service.ScoreRequestOverrides{
		OutputFormat: analyzeFormat,
		ShowDetails:  analyzeDetails,
		SortBy:       analyzeSortBy,
		MinScore:     analyzeMinScore,
	})
	req.OutputWriter = os.Stdout

	// Progress is suppressed for machine-readable output on stdout
	showProgress := !analyzeNoProgress && req.OutputFormat != domain.OutputFormatJSON && req.OutputFormat != domain.OutputFormatYAML
	pm := service.NewProgressManager(showProgress)
	defer pm.Close()

	executor := service.NewParallelExecutorWithProgress(&cfg.Performance, pm)
	scoreService, err := service.NewScoreService(cfg, executor)
	if err != nil {
		return err
	}

	fileHelper := app.NewFileHelperWithOptions(cfg.Analysis.ExcludePatterns, cfg.Analysis.RespectGitignore, args[0])
	useCase := app.NewScoreUseCase(scoreService, service.NewOutputFormatter(), fileHelper)

	_, err = useCase.Execute(context.Background(), args, req)
	return err
}
