package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
	"github.com/kobzevvv/rulescan/internal/constants"
	"github.com/kobzevvv/rulescan/internal/version"
)

// TotalComplexityLimit triggers a corpus-wide recommendation when the
// combined score of all baseline-matched documents exceeds it.
const TotalComplexityLimit = 200.0

// ReportServiceImpl aggregates verdicts, pattern findings and semantic
// judgements into the final report. Building is pure aside from the
// timestamp; the same inputs always produce the same report body.
type ReportServiceImpl struct {
	threshold           *ThresholdServiceImpl
	highComplexityScore float64
}

// NewReportService creates a report service
func NewReportService(cfg *config.Config, threshold *ThresholdServiceImpl) *ReportServiceImpl {
	return &ReportServiceImpl{
		threshold:           threshold,
		highComplexityScore: cfg.Scoring.HighComplexityScore,
	}
}

// BuildReport assembles the complete run report. Verdicts are ordered by
// excess percent descending with ties keeping their input order; pattern
// findings are deduplicated preserving first-seen order; semantic
// judgements contribute flags and warnings but never merge into the
// structural finding lists.
func (s *ReportServiceImpl) BuildReport(
	analyses []domain.DocumentAnalysis,
	semantic *domain.SemanticResponse,
	startedAt time.Time,
) *domain.Report {
	verdicts, checked := s.threshold.Check(analyses)

	sort.SliceStable(verdicts, func(i, j int) bool {
		return verdicts[i].ExcessPercent > verdicts[j].ExcessPercent
	})

	report := &domain.Report{
		ThresholdExceeded: len(verdicts) > 0,
		Verdicts:          verdicts,
		HighComplexity:    s.collectHighComplexity(analyses),
		Conflicts:         dedupeHits(analyses, func(a domain.DocumentAnalysis) []domain.PatternHit { return a.Conflicts }),
		Violations:        dedupeHits(analyses, func(a domain.DocumentAnalysis) []domain.PatternHit { return a.Violations }),
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
		Version:           version.GetVersion(),
		DurationMS:        time.Since(startedAt).Milliseconds(),
	}

	report.ExitCode = constants.ExitCodePass
	if report.ThresholdExceeded {
		report.ExitCode = constants.ExitCodeThresholdFail
	}

	report.Summary = s.summarize(analyses, verdicts, checked)

	if semantic != nil {
		s.mergeSemantic(report, semantic)
	}

	report.Recommendations = s.recommend(report)
	return report
}

func (s *ReportServiceImpl) collectHighComplexity(analyses []domain.DocumentAnalysis) []domain.HighComplexityDocument {
	var high []domain.HighComplexityDocument
	for _, a := range analyses {
		if a.Score.TotalScore > s.highComplexityScore {
			high = append(high, domain.HighComplexityDocument{
				DocumentID: a.Score.ID,
				Score:      a.Score.TotalScore,
				SizeKB:     a.Score.SizeKB,
				LineCount:  a.Score.LineCount,
			})
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].Score > high[j].Score
	})
	return high
}

// dedupeHits flattens one pattern family across all documents into a
// deduplicated, insertion-ordered list of finding strings.
func dedupeHits(analyses []domain.DocumentAnalysis, family func(domain.DocumentAnalysis) []domain.PatternHit) []string {
	set := domain.NewOrderedSet()
	for _, a := range analyses {
		for _, hit := range family(a) {
			set.Add(fmt.Sprintf("%s: %d instances", hit.Label, hit.Count))
		}
	}
	if set.Len() == 0 {
		return nil
	}
	return set.Values()
}

func (s *ReportServiceImpl) summarize(analyses []domain.DocumentAnalysis, verdicts []domain.ThresholdVerdict, checked int) domain.CheckSummary {
	summary := domain.CheckSummary{
		DocumentsChecked:  checked,
		DocumentsExceeded: len(verdicts),
	}
	for _, b := range s.threshold.Baselines() {
		summary.TotalBaseline += b.Score
	}
	// Baseline misses are exempt from gating, not from the corpus totals
	for _, a := range analyses {
		summary.TotalCurrent += a.Score.TotalScore
	}
	return summary
}

// mergeSemantic promotes noteworthy judgements to flags and records
// per-document analysis failures as warnings. Semantic findings stay in
// their own report sections; they are never added to the structural
// conflict or violation lists.
func (s *ReportServiceImpl) mergeSemantic(report *domain.Report, semantic *domain.SemanticResponse) {
	warnings := domain.NewOrderedSet()

	for i := range semantic.Judgements {
		j := &semantic.Judgements[i]

		var reason string
		switch {
		case j.IsHighComplexity() && j.IsLowCompatibility():
			reason = fmt.Sprintf("high semantic complexity (%d/10) and low editor compatibility (%d/10)",
				j.ComplexityRating, j.CursorCompatibility)
		case j.IsHighComplexity():
			reason = fmt.Sprintf("high semantic complexity (%d/10)", j.ComplexityRating)
		case j.IsLowCompatibility():
			reason = fmt.Sprintf("low editor compatibility (%d/10)", j.CursorCompatibility)
		default:
			continue
		}

		report.SemanticFlags = append(report.SemanticFlags, domain.SemanticFlag{
			DocumentID:          j.DocumentID,
			ComplexityRating:    j.ComplexityRating,
			CursorCompatibility: j.CursorCompatibility,
			Reason:              reason,
		})
		warnings.Add(fmt.Sprintf("%s: %s", j.DocumentID, reason))
	}

	warnings.AddAll(semantic.AnalysisErrors)

	report.Warnings = warnings.Values()
	report.Summary.SemanticWarnings = len(report.SemanticFlags)
}

// recommend derives canned guidance from the finished report. Rules are
// additive and emitted in fixed priority order, so the list is stable
// for identical reports.
func (s *ReportServiceImpl) recommend(report *domain.Report) []string {
	var recs []string

	criticalCount := 0
	for _, v := range report.Verdicts {
		if v.Severity == domain.SeverityCritical {
			criticalCount++
		}
	}

	if criticalCount > 0 {
		recs = append(recs, fmt.Sprintf("%d document(s) are critically over budget; split them before adding new rules", criticalCount))
	}
	if report.ThresholdExceeded {
		recs = append(recs, "Simplify documents that exceed their complexity thresholds")
	}
	if len(report.HighComplexity) > 0 {
		recs = append(recs, "Review high-complexity documents for content that can move to reference material")
	}
	if report.Summary.TotalCurrent > TotalComplexityLimit {
		recs = append(recs, fmt.Sprintf("Total corpus complexity %.1f exceeds %.0f; consider retiring unused rule documents", report.Summary.TotalCurrent, TotalComplexityLimit))
	}
	if len(report.Conflicts) > 0 {
		recs = append(recs, "Resolve conflicting instructions flagged by pattern analysis")
	}
	if len(report.Violations) > 0 {
		recs = append(recs, "Fix best-practice violations in embedded code snippets")
	}
	if len(report.SemanticFlags) > 0 {
		recs = append(recs, "Address documents flagged by semantic analysis for complexity or compatibility")
	}
	if report.Summary.SemanticWarnings > 5 {
		recs = append(recs, "Consolidate similar rules; semantic analysis flagged overlapping documents across the corpus")
	}

	return recs
}
