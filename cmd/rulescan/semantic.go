package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kobzevvv/rulescan/app"
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/service"
	"github.com/spf13/cobra"
)

var (
	semanticKind       string
	semanticConfigPath string
	semanticNoProgress bool
)

func semanticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semantic [path...]",
		Short: "Run standalone semantic analysis over rule documents",
		Long: `Send each rule document to the configured OpenAI-compatible endpoint
and print the structured judgements as JSON. Requires the API key
environment variable from the config (OPENAI_API_KEY by default).

Analysis kinds:
  conflict-detection       contradictory or conflicting instructions
  best-practice-detection  embedded code snippets violating best practices
  compatibility-detection  suitability for an AI code editor

Without --kind, all three angles are combined into one request per
document.

Examples:
  rulescan semantic rules/
  rulescan semantic --kind conflict-detection rules/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSemantic,
	}

	cmd.Flags().StringVarP(&semanticKind, "kind", "k", "",
		"Analysis kind: conflict-detection, best-practice-detection, compatibility-detection")
	cmd.Flags().StringVarP(&semanticConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&semanticNoProgress, "no-progress", false,
		"Disable progress output")

	return cmd
}

func runSemantic(cmd *cobra.Command, args []string) error {
	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfig(semanticConfigPath, args[0])
	if err != nil {
		return err
	}

	analyzer := service.NewSemanticAnalyzer(&cfg.Semantic)
	if !analyzer.Available() {
		return domain.NewUnavailableError(
			fmt.Sprintf("semantic analysis unavailable: set %s or enable it in the config", cfg.Semantic.APIKeyEnv), nil)
	}

	if semanticKind != "" {
		kind := domain.AnalysisKind(semanticKind)
		switch kind {
		case domain.AnalysisKindConflicts, domain.AnalysisKindBestPractices, domain.AnalysisKindCompatibility:
		default:
			return domain.NewInvalidInputError(fmt.Sprintf("unknown analysis kind: %s", semanticKind), nil)
		}
		if impl, ok := analyzer.(*service.SemanticAnalyzerImpl); ok {
			impl.SetKind(kind)
		}
	}

	pm := service.NewProgressManager(!semanticNoProgress)
	defer pm.Close()

	fileHelper := app.NewFileHelperWithOptions(cfg.Analysis.ExcludePatterns, cfg.Analysis.RespectGitignore, args[0])
	files, err := app.ResolveDocumentPaths(fileHelper, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return domain.NewInvalidInputError("no rule documents found in the specified paths", nil)
	}

	docs, err := fileHelper.LoadDocuments(files)
	if err != nil {
		return err
	}

	semanticService := service.NewSemanticService(analyzer, pm)
	resp, err := semanticService.AnalyzeCorpus(context.Background(), docs)
	if err != nil {
		return err
	}

	return service.WriteJSON(resp, os.Stdout)
}
