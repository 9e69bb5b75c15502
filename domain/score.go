// Package domain contains the core types and service interfaces.
// It has no dependencies on other packages in this project.
package domain

import (
	"context"
	"io"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	OutputFormatText     OutputFormat = "text"
	OutputFormatJSON     OutputFormat = "json"
	OutputFormatYAML     OutputFormat = "yaml"
	OutputFormatMarkdown OutputFormat = "markdown"
)

// SortCriteria represents how analysis results should be sorted
type SortCriteria string

const (
	SortByScore SortCriteria = "score"
	SortByName  SortCriteria = "name"
	SortBySize  SortCriteria = "size"
)

// Document is one unit of analyzable text. The ID is the path-like
// identifier the baseline table matches against; Text is the full raw
// content. Analysis never mutates either field.
type Document struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"-" yaml:"-"`
}

// Indicator is one weighted structural signal. Count extracts the raw
// occurrence count from document text; the weight converts counts to
// score contributions. Counters must be pure and safe for concurrent use.
type Indicator struct {
	Name   string
	Weight float64
	Count  func(text string) int
}

// IndicatorCount records one indicator's result for one document
type IndicatorCount struct {
	Name         string  `json:"name" yaml:"name"`
	Count        int     `json:"count" yaml:"count"`
	Weight       float64 `json:"weight" yaml:"weight"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
}

// ScoreBreakdown lists every indicator's contribution in indicator
// declaration order. It is a slice, not a map: iteration order is part
// of the contract so breakdowns render identically across runs.
type ScoreBreakdown []IndicatorCount

// Get returns the entry for the named indicator, if present
func (b ScoreBreakdown) Get(name string) (IndicatorCount, bool) {
	for _, ic := range b {
		if ic.Name == name {
			return ic, true
		}
	}
	return IndicatorCount{}, false
}

// DocumentScore is the complete scoring result for one document
type DocumentScore struct {
	ID         string         `json:"id" yaml:"id"`
	SizeKB     float64        `json:"size_kb" yaml:"size_kb"`
	LineCount  int            `json:"line_count" yaml:"line_count"`
	Breakdown  ScoreBreakdown `json:"breakdown" yaml:"breakdown"`
	TotalScore float64        `json:"total_score" yaml:"total_score"`
}

// PatternHit records how many times one labelled pattern matched a
// document. Hits from the conflict family and the violation family are
// reported in separate lists and never combined.
type PatternHit struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// DocumentAnalysis bundles the structural results for one document
type DocumentAnalysis struct {
	Score      DocumentScore `json:"score" yaml:"score"`
	Conflicts  []PatternHit  `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Violations []PatternHit  `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// ScoreRequest describes a corpus scoring run
type ScoreRequest struct {
	Documents    []Document
	OutputWriter io.Writer
	OutputFormat OutputFormat
	ShowDetails  bool
	SortBy       SortCriteria
	MinScore     float64
}

// CorpusSummary provides aggregate statistics over a scored corpus
type CorpusSummary struct {
	TotalDocuments int     `json:"total_documents" yaml:"total_documents"`
	TotalScore     float64 `json:"total_score" yaml:"total_score"`
	AverageScore   float64 `json:"average_score" yaml:"average_score"`
	MaxScore       float64 `json:"max_score" yaml:"max_score"`
	HighComplexity int     `json:"high_complexity" yaml:"high_complexity"`
}

// ScoreResponse contains scoring results for a whole corpus
type ScoreResponse struct {
	Analyses    []DocumentAnalysis `json:"analyses" yaml:"analyses"`
	Summary     CorpusSummary      `json:"summary" yaml:"summary"`
	Warnings    []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	GeneratedAt string             `json:"generated_at" yaml:"generated_at"`
	Version     string             `json:"version" yaml:"version"`
}

// ScoreService defines the interface for corpus scoring
type ScoreService interface {
	// Analyze scores every document and classifies its patterns
	Analyze(ctx context.Context, req ScoreRequest) (*ScoreResponse, error)

	// AnalyzeDocument scores and classifies a single document
	AnalyzeDocument(doc Document) (DocumentAnalysis, error)
}

// DocumentReader defines the interface for loading documents
type DocumentReader interface {
	// CollectDocumentFiles returns analyzable file paths under the given
	// paths, honoring include and exclude patterns
	CollectDocumentFiles(paths []string) ([]string, error)

	// LoadDocuments reads every file into a Document
	LoadDocuments(paths []string) ([]Document, error)
}

// OutputFormatter defines the interface for rendering results
type OutputFormatter interface {
	// WriteScore renders a scoring response
	WriteScore(response *ScoreResponse, format OutputFormat, showDetails bool, writer io.Writer) error

	// WriteReport renders a threshold report
	WriteReport(report *Report, format OutputFormat, writer io.Writer) error
}
