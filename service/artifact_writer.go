package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/constants"
)

// ArtifactWriter persists the report artifacts of a run. Each artifact
// is written exactly once, at the end of the run; nothing here appends
// or rewrites.
type ArtifactWriter struct {
	formatter *OutputFormatterImpl
}

// NewArtifactWriter creates an artifact writer
func NewArtifactWriter(formatter *OutputFormatterImpl) *ArtifactWriter {
	return &ArtifactWriter{formatter: formatter}
}

// WriteAll writes the three report artifacts into dir: the machine
// readable JSON report, the full markdown report, and the short summary.
// Returns the paths written.
func (w *ArtifactWriter) WriteAll(report *domain.Report, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	jsonPath := filepath.Join(dir, constants.ReportJSONFile)
	if err := w.writeArtifact(jsonPath, report, domain.OutputFormatJSON); err != nil {
		return nil, err
	}

	mdPath := filepath.Join(dir, constants.ReportMarkdownFile)
	if err := w.writeArtifact(mdPath, report, domain.OutputFormatMarkdown); err != nil {
		return nil, err
	}

	summaryPath := filepath.Join(dir, constants.SummaryFile)
	if err := os.WriteFile(summaryPath, []byte(renderSummary(report)), 0o644); err != nil {
		return nil, domain.NewAnalysisError(fmt.Sprintf("failed to write %s", summaryPath), err)
	}

	return []string{jsonPath, mdPath, summaryPath}, nil
}

func (w *ArtifactWriter) writeArtifact(path string, report *domain.Report, format domain.OutputFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.NewAnalysisError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer f.Close()

	if err := w.formatter.WriteReport(report, format, f); err != nil {
		return domain.NewAnalysisError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// renderSummary produces the short status artifact used in CI job
// summaries and PR comments.
func renderSummary(report *domain.Report) string {
	var sb strings.Builder

	sb.WriteString("# Rule Complexity Summary\n\n")
	if report.ThresholdExceeded {
		sb.WriteString("Status: **EXCEEDED**\n\n")
	} else {
		sb.WriteString("Status: **WITHIN LIMITS**\n\n")
	}

	sb.WriteString(fmt.Sprintf("- Documents checked: %d\n", report.Summary.DocumentsChecked))
	sb.WriteString(fmt.Sprintf("- Documents exceeded: %d\n", report.Summary.DocumentsExceeded))
	sb.WriteString(fmt.Sprintf("- Current total: %.1f (baseline %.1f)\n",
		report.Summary.TotalCurrent, report.Summary.TotalBaseline))

	if len(report.Verdicts) > 0 {
		sb.WriteString("\n")
		for _, v := range report.Verdicts {
			sb.WriteString(fmt.Sprintf("- %s: %.1f > %.1f (+%.1f%%, %s)\n",
				v.DocumentID, v.CurrentScore, v.Threshold, v.ExcessPercent, v.Severity))
		}
	}

	if len(report.Recommendations) > 0 {
		sb.WriteString("\n")
		for _, r := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}

	return sb.String()
}
