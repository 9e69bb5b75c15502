package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kobzevvv/rulescan/app"
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
	"github.com/kobzevvv/rulescan/internal/constants"
	"github.com/kobzevvv/rulescan/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries a process exit code out of a check run
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMultiplier float64
	checkSemantic   bool
	checkJSON       bool
	checkOutputDir  string
	checkConfigPath string
	checkVerbose    bool
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Gate rule documents against complexity baselines",
		Long: `Score every rule document, compare against the recorded baseline table
(threshold = baseline x multiplier), and fail when any document drifts
past its threshold. Designed as a CI gate.

Exit codes:
  0 - All documents within thresholds
  1 - At least one document exceeds its threshold
  2 - Analysis error (file not found, bad config, etc.)

Examples:
  # Basic check against defaults
  rulescan check .cursor/rules/

  # Looser budget
  rulescan check --multiplier 3.0 rules/

  # Include best-effort semantic analysis
  rulescan check --semantic rules/

  # JSON report on stdout for machine parsing
  rulescan check --json rules/

  # Write report artifacts for CI job summaries
  rulescan check --output-dir reports/ rules/`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().Float64VarP(&checkMultiplier, "multiplier", "m", 0,
		"Threshold multiplier applied to every baseline (overrides config)")
	cmd.Flags().BoolVar(&checkSemantic, "semantic", false,
		"Run best-effort semantic analysis (needs the configured API key)")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output the report as JSON")
	cmd.Flags().StringVarP(&checkOutputDir, "output-dir", "o", "",
		"Directory for report artifacts (JSON report, markdown report, summary)")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show detailed output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}
	if cmd.Flags().Changed("multiplier") {
		if checkMultiplier <= 0 {
			return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: "multiplier must be > 0"}
		}
		cfg.Threshold.Multiplier = checkMultiplier
	}
	if checkOutputDir == "" && cfg.Output.Directory != "" && cfg.Output.Directory != "." {
		checkOutputDir = cfg.Output.Directory
	}

	// Progress is auto-disabled for JSON output and non-TTY/CI
	pm := service.NewProgressManager(!checkJSON)
	defer pm.Close()

	executor := service.NewParallelExecutorWithProgress(&cfg.Performance, pm)
	scoreService, err := service.NewScoreService(cfg, executor)
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: err.Error()}
	}

	thresholdService := service.NewThresholdService(cfg)
	reportService := service.NewReportService(cfg, thresholdService)
	formatter := service.NewOutputFormatter()

	var semanticService *service.SemanticServiceImpl
	if checkSemantic {
		analyzer := service.NewSemanticAnalyzer(&cfg.Semantic)
		if !analyzer.Available() {
			fmt.Fprintln(os.Stderr, "warning: semantic analysis unavailable, continuing without it")
		}
		semanticService = service.NewSemanticService(analyzer, pm)
	}

	fileHelper := app.NewFileHelperWithOptions(cfg.Analysis.ExcludePatterns, cfg.Analysis.RespectGitignore, args[0])
	useCase := app.NewCheckUseCase(
		scoreService,
		semanticService,
		reportService,
		formatter,
		service.NewArtifactWriter(formatter),
		fileHelper,
	)

	req := app.CheckRequest{
		Paths:          args,
		OutputFormat:   domain.OutputFormatText,
		EnableSemantic: checkSemantic,
		OutputDir:      checkOutputDir,
	}
	if checkJSON {
		req.OutputFormat = domain.OutputFormatJSON
		req.OutputWriter = os.Stdout
	}

	report, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: err.Error()}
	}

	if !checkJSON {
		printCheckBanner(report)
		if checkVerbose || report.ThresholdExceeded {
			if err := formatter.WriteReport(report, domain.OutputFormatText, os.Stdout); err != nil {
				return &CheckExitError{Code: constants.ExitCodeAnalysisError, Message: err.Error()}
			}
		}
	}

	if report.ThresholdExceeded {
		return &CheckExitError{Code: constants.ExitCodeThresholdFail, Message: ""}
	}
	return nil
}

func printCheckBanner(report *domain.Report) {
	if report.ThresholdExceeded {
		fmt.Println(failStyle.Render(fmt.Sprintf("FAIL: %d document(s) exceed complexity thresholds",
			report.Summary.DocumentsExceeded)))
		return
	}
	fmt.Println(passStyle.Render(fmt.Sprintf("PASS: %d document(s) within complexity thresholds",
		report.Summary.DocumentsChecked)))
}
