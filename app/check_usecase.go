package app

import (
	"context"
	"io"
	"time"

	"github.com/kobzevvv/rulescan/domain"
)

// SemanticCorpusAnalyzer runs best-effort semantic analysis over a corpus
type SemanticCorpusAnalyzer interface {
	Available() bool
	AnalyzeCorpus(ctx context.Context, docs []domain.Document) (*domain.SemanticResponse, error)
}

// ReportBuilder aggregates analysis results into the final report
type ReportBuilder interface {
	BuildReport(analyses []domain.DocumentAnalysis, semantic *domain.SemanticResponse, startedAt time.Time) *domain.Report
}

// ArtifactPersister writes report artifacts to the output directory
type ArtifactPersister interface {
	WriteAll(report *domain.Report, dir string) ([]string, error)
}

// CheckRequest describes a full threshold check run
type CheckRequest struct {
	Paths        []string
	OutputWriter io.Writer
	OutputFormat domain.OutputFormat

	// EnableSemantic requests best-effort semantic coverage. It is a
	// request, not a guarantee: an unavailable collaborator downgrades
	// the run to structural-only.
	EnableSemantic bool

	// OutputDir is where report artifacts are written; empty skips them
	OutputDir string
}

// CheckUseCase orchestrates the full pipeline: collect, score, classify,
// compare against baselines, optionally judge semantically, aggregate,
// and persist artifacts.
type CheckUseCase struct {
	score      domain.ScoreService
	semantic   SemanticCorpusAnalyzer
	report     ReportBuilder
	formatter  domain.OutputFormatter
	artifacts  ArtifactPersister
	fileHelper *FileHelper
}

// NewCheckUseCase creates a new check use case
func NewCheckUseCase(
	score domain.ScoreService,
	semantic SemanticCorpusAnalyzer,
	report ReportBuilder,
	formatter domain.OutputFormatter,
	artifacts ArtifactPersister,
	fileHelper *FileHelper,
) *CheckUseCase {
	if fileHelper == nil {
		fileHelper = NewFileHelper()
	}
	return &CheckUseCase{
		score:      score,
		semantic:   semantic,
		report:     report,
		formatter:  formatter,
		artifacts:  artifacts,
		fileHelper: fileHelper,
	}
}

// Execute runs the complete check workflow and returns the final report.
// The report's exit code is the CI gate; callers translate it into the
// process exit status.
func (uc *CheckUseCase) Execute(ctx context.Context, req CheckRequest) (*domain.Report, error) {
	startedAt := time.Now()

	if len(req.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	files, err := ResolveDocumentPaths(uc.fileHelper, req.Paths)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to collect documents", err)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no rule documents found in the specified paths", nil)
	}

	docs, err := uc.fileHelper.LoadDocuments(files)
	if err != nil {
		return nil, err
	}

	scoreResp, err := uc.score.Analyze(ctx, domain.ScoreRequest{
		Documents: docs,
		SortBy:    domain.SortByScore,
	})
	if err != nil {
		return nil, err
	}

	var semanticResp *domain.SemanticResponse
	if req.EnableSemantic && uc.semantic != nil && uc.semantic.Available() {
		semanticResp, err = uc.semantic.AnalyzeCorpus(ctx, docs)
		if err != nil {
			// Semantic coverage is best effort; a context cancellation
			// still aborts the run.
			if ctx.Err() != nil {
				return nil, err
			}
			semanticResp = nil
		}
	}

	report := uc.report.BuildReport(scoreResp.Analyses, semanticResp, startedAt)

	if req.OutputWriter != nil {
		if err := uc.formatter.WriteReport(report, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, domain.NewAnalysisError("failed to write output", err)
		}
	}

	if req.OutputDir != "" && uc.artifacts != nil {
		if _, err := uc.artifacts.WriteAll(report, req.OutputDir); err != nil {
			return nil, err
		}
	}

	return report, nil
}
