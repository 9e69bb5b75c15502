package domain

// Severity represents the severity of a threshold verdict
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// CriticalExcessPercent is the excess boundary above which a verdict is
// critical. The boundary is exclusive: exactly 50% stays a warning.
const CriticalExcessPercent = 50.0

// BaselineEntry pairs a known document key with its recorded complexity
// score. Keys are matched by substring containment against document ids;
// the first matching entry in declaration order wins, so the baseline
// table is an ordered slice and must never be converted to a map.
type BaselineEntry struct {
	Key   string  `json:"key" yaml:"key" mapstructure:"key"`
	Score float64 `json:"score" yaml:"score" mapstructure:"score"`
}

// ThresholdVerdict is emitted only when a document's current score exceeds
// its baseline-derived threshold. Compliant documents produce no record.
type ThresholdVerdict struct {
	DocumentID    string   `json:"document_id" yaml:"document_id"`
	CurrentScore  float64  `json:"current_score" yaml:"current_score"`
	BaselineScore float64  `json:"baseline_score" yaml:"baseline_score"`
	Threshold     float64  `json:"threshold" yaml:"threshold"`
	ExcessPercent float64  `json:"excess_percent" yaml:"excess_percent"`
	Severity      Severity `json:"severity" yaml:"severity"`
	SizeKB        float64  `json:"size_kb,omitempty" yaml:"size_kb,omitempty"`
	LineCount     int      `json:"line_count,omitempty" yaml:"line_count,omitempty"`
}

// HighComplexityDocument flags a document whose absolute score is high,
// independent of any baseline.
type HighComplexityDocument struct {
	DocumentID string  `json:"document_id" yaml:"document_id"`
	Score      float64 `json:"score" yaml:"score"`
	SizeKB     float64 `json:"size_kb" yaml:"size_kb"`
	LineCount  int     `json:"line_count" yaml:"line_count"`
}

// CheckSummary provides aggregate statistics for a threshold run
type CheckSummary struct {
	DocumentsChecked  int     `json:"documents_checked" yaml:"documents_checked"`
	DocumentsExceeded int     `json:"documents_exceeded" yaml:"documents_exceeded"`
	TotalBaseline     float64 `json:"total_baseline" yaml:"total_baseline"`
	TotalCurrent      float64 `json:"total_current" yaml:"total_current"`
	SemanticWarnings  int     `json:"semantic_warnings" yaml:"semantic_warnings"`
}

// Report is the aggregate of a full run: every verdict, the deduplicated
// pattern hits, promoted semantic flags, and derived recommendations.
// Built once at the end of a run; write-once.
type Report struct {
	// ThresholdExceeded is the single gate signal exposed to CI callers:
	// true iff at least one verdict exists.
	ThresholdExceeded bool `json:"threshold_exceeded" yaml:"threshold_exceeded"`
	ExitCode          int  `json:"exit_code" yaml:"exit_code"`

	// Verdicts sorted by excess percent descending (ties keep input order)
	Verdicts []ThresholdVerdict `json:"exceeded_files" yaml:"exceeded_files"`

	// Documents with high absolute scores, regardless of baseline
	HighComplexity []HighComplexityDocument `json:"high_complexity_files,omitempty" yaml:"high_complexity_files,omitempty"`

	// Deduplicated pattern findings, insertion-ordered. Conflicts and
	// Violations come from distinct pattern families.
	Conflicts  []string `json:"conflicts_found,omitempty" yaml:"conflicts_found,omitempty"`
	Violations []string `json:"best_practice_violations,omitempty" yaml:"best_practice_violations,omitempty"`

	// Promoted semantic flags and their human-readable warnings
	SemanticFlags []SemanticFlag `json:"semantic_flags,omitempty" yaml:"semantic_flags,omitempty"`
	Warnings      []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Canned guidance, additive, fixed priority order
	Recommendations []string `json:"recommendations,omitempty" yaml:"recommendations,omitempty"`

	Summary     CheckSummary `json:"summary" yaml:"summary"`
	DurationMS  int64        `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt string       `json:"generated_at" yaml:"generated_at"`
	Version     string       `json:"version" yaml:"version"`
}
