package service

import (
	"context"
	"sort"
	"time"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/analyzer"
	"github.com/kobzevvv/rulescan/internal/config"
	"github.com/kobzevvv/rulescan/internal/version"
)

// ScoreServiceImpl implements domain.ScoreService
type ScoreServiceImpl struct {
	scorer              *analyzer.Scorer
	classifier          *analyzer.Classifier
	highComplexityScore float64
	executor            *ParallelExecutorImpl
}

// NewScoreService builds the scoring service from configuration. The
// classifier compiles both pattern tables; invalid patterns fail here.
func NewScoreService(cfg *config.Config, executor *ParallelExecutorImpl) (*ScoreServiceImpl, error) {
	classifier, err := analyzer.NewClassifier(cfg.Patterns)
	if err != nil {
		return nil, domain.NewConfigError("failed to compile pattern tables", err)
	}
	if executor == nil {
		executor = NewParallelExecutorFromConfig(&cfg.Performance)
	}
	return &ScoreServiceImpl{
		scorer:              analyzer.NewScorer(cfg.Scoring, cfg.Patterns.Conflicts),
		classifier:          classifier,
		highComplexityScore: cfg.Scoring.HighComplexityScore,
		executor:            executor,
	}, nil
}

// documentTask wraps the analysis of one document for the parallel
// executor. Results are written into a caller-owned slice slot, so no
// result channel or ordering pass is needed afterwards.
type documentTask struct {
	service *ScoreServiceImpl
	doc     domain.Document
	out     *domain.DocumentAnalysis
}

func (t *documentTask) Name() string { return t.doc.ID }

func (t *documentTask) IsEnabled() bool { return true }

func (t *documentTask) Execute(_ context.Context) (interface{}, error) {
	analysis, err := t.service.AnalyzeDocument(t.doc)
	if err != nil {
		return nil, err
	}
	*t.out = analysis
	return analysis, nil
}

// AnalyzeDocument scores and classifies a single document
func (s *ScoreServiceImpl) AnalyzeDocument(doc domain.Document) (domain.DocumentAnalysis, error) {
	if doc.ID == "" {
		return domain.DocumentAnalysis{}, domain.NewInvalidInputError("document id cannot be empty", nil)
	}
	return domain.DocumentAnalysis{
		Score:      s.scorer.Score(doc.ID, doc.Text),
		Conflicts:  s.classifier.Conflicts(doc.Text),
		Violations: s.classifier.Violations(doc.Text),
	}, nil
}

// Analyze scores every document in the request, classifies patterns, and
// returns sorted, filtered results with corpus-level aggregates. Scoring
// is deterministic: result order depends only on document content and
// the requested sort criteria, never on scheduling.
func (s *ScoreServiceImpl) Analyze(ctx context.Context, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	if len(req.Documents) == 0 {
		return nil, domain.NewInvalidInputError("no documents to analyze", nil)
	}

	analyses := make([]domain.DocumentAnalysis, len(req.Documents))
	tasks := make([]domain.ExecutableTask, len(req.Documents))
	for i, doc := range req.Documents {
		tasks[i] = &documentTask{service: s, doc: doc, out: &analyses[i]}
	}

	var warnings []string
	if err := s.executor.Execute(ctx, tasks); err != nil {
		// Per-document failures degrade to warnings; only a fully failed
		// batch aborts the run.
		agg, ok := err.(*AggregatedError)
		if !ok || len(agg.Errors) == len(req.Documents) {
			return nil, domain.NewAnalysisError("document analysis failed", err)
		}
		failed := make(map[string]bool, len(agg.Errors))
		for _, te := range agg.Errors {
			warnings = append(warnings, te.Error())
			failed[te.TaskName] = true
		}
		kept := analyses[:0]
		for i, a := range analyses {
			if !failed[req.Documents[i].ID] {
				kept = append(kept, a)
			}
		}
		analyses = kept
	}

	analyses = filterByMinScore(analyses, req.MinScore)
	sortAnalyses(analyses, req.SortBy)

	return &domain.ScoreResponse{
		Analyses:    analyses,
		Summary:     s.summarize(analyses),
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}

func (s *ScoreServiceImpl) summarize(analyses []domain.DocumentAnalysis) domain.CorpusSummary {
	summary := domain.CorpusSummary{TotalDocuments: len(analyses)}
	for _, a := range analyses {
		summary.TotalScore += a.Score.TotalScore
		if a.Score.TotalScore > summary.MaxScore {
			summary.MaxScore = a.Score.TotalScore
		}
		if a.Score.TotalScore > s.highComplexityScore {
			summary.HighComplexity++
		}
	}
	if len(analyses) > 0 {
		summary.AverageScore = summary.TotalScore / float64(len(analyses))
	}
	return summary
}

func filterByMinScore(analyses []domain.DocumentAnalysis, minScore float64) []domain.DocumentAnalysis {
	if minScore <= 0 {
		return analyses
	}
	kept := analyses[:0]
	for _, a := range analyses {
		if a.Score.TotalScore >= minScore {
			kept = append(kept, a)
		}
	}
	return kept
}

func sortAnalyses(analyses []domain.DocumentAnalysis, sortBy domain.SortCriteria) {
	switch sortBy {
	case domain.SortByName:
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].Score.ID < analyses[j].Score.ID
		})
	case domain.SortBySize:
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].Score.SizeKB > analyses[j].Score.SizeKB
		})
	default: // score, descending
		sort.SliceStable(analyses, func(i, j int) bool {
			return analyses[i].Score.TotalScore > analyses[j].Score.TotalScore
		})
	}
}
