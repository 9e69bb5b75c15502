package domain

import "context"

// AnalysisKind selects what the semantic collaborator should look for
type AnalysisKind string

const (
	AnalysisKindConflicts     AnalysisKind = "conflict-detection"
	AnalysisKindBestPractices AnalysisKind = "best-practice-detection"
	AnalysisKindCompatibility AnalysisKind = "compatibility-detection"
)

// Semantic flag promotion thresholds. A judgement is promoted when the
// complexity rating exceeds HighComplexityRating or the compatibility
// rating falls below LowCompatibilityRating.
const (
	HighComplexityRating   = 7
	LowCompatibilityRating = 5
)

// SemanticJudgement is the best-effort structured assessment returned by
// the external semantic collaborator for one document. Every field is
// advisory: a missing or malformed field means "no signal", never an
// error. Ratings are on a 0..10 scale where 0 means no rating returned.
type SemanticJudgement struct {
	DocumentID          string   `json:"document_id" yaml:"document_id"`
	ComplexityRating    int      `json:"complexity_rating" yaml:"complexity_rating"`
	CursorCompatibility int      `json:"cursor_compatibility" yaml:"cursor_compatibility"`
	Conflicts           []string `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Violations          []string `json:"violations,omitempty" yaml:"violations,omitempty"`
	Issues              []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	Reasoning           string   `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// IsHighComplexity reports whether the judgement should be promoted to a
// high-semantic-complexity flag.
func (j *SemanticJudgement) IsHighComplexity() bool {
	return j != nil && j.ComplexityRating > HighComplexityRating
}

// IsLowCompatibility reports whether the judgement signals poor editor
// compatibility. A zero rating means the collaborator returned no rating
// and is not treated as low.
func (j *SemanticJudgement) IsLowCompatibility() bool {
	return j != nil && j.CursorCompatibility > 0 && j.CursorCompatibility < LowCompatibilityRating
}

// SemanticFlag is a promoted judgement carried into the final report
type SemanticFlag struct {
	DocumentID          string `json:"document_id" yaml:"document_id"`
	ComplexityRating    int    `json:"complexity_rating" yaml:"complexity_rating"`
	CursorCompatibility int    `json:"cursor_compatibility" yaml:"cursor_compatibility"`
	Reason              string `json:"reason" yaml:"reason"`
}

// SemanticAnalyzer is the capability interface for the optional semantic
// collaborator. Implementations must be safe to skip entirely: a no-op
// analyzer reports Available() == false and the run proceeds without
// semantic coverage.
type SemanticAnalyzer interface {
	// Judge returns a best-effort judgement for the document, or an error
	// that the caller records and moves past. A failed call for one
	// document never invalidates the rest of the run.
	Judge(ctx context.Context, doc Document) (*SemanticJudgement, error)

	// Available reports whether the collaborator can be reached at all
	// (credentials present, endpoint configured).
	Available() bool
}

// SemanticResponse aggregates semantic coverage over a corpus. Partial
// coverage is an expected, non-fatal outcome.
type SemanticResponse struct {
	Judgements []SemanticJudgement `json:"judgements" yaml:"judgements"`

	// AnalysisErrors records per-document collaborator failures
	AnalysisErrors []string `json:"analysis_errors,omitempty" yaml:"analysis_errors,omitempty"`

	DocumentsAnalyzed int    `json:"documents_analyzed" yaml:"documents_analyzed"`
	GeneratedAt       string `json:"generated_at" yaml:"generated_at"`
}
