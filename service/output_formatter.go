package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kobzevvv/rulescan/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormatterImpl implements domain.OutputFormatter
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteScore renders a scoring response in the requested format
func (f *OutputFormatterImpl) WriteScore(response *domain.ScoreResponse, format domain.OutputFormat, showDetails bool, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(response, writer)
	case domain.OutputFormatYAML:
		return WriteYAML(response, writer)
	case domain.OutputFormatMarkdown:
		return f.writeScoreMarkdown(response, showDetails, writer)
	case domain.OutputFormatText, "":
		return f.writeScoreText(response, showDetails, writer)
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

// WriteReport renders a threshold report in the requested format
func (f *OutputFormatterImpl) WriteReport(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(report, writer)
	case domain.OutputFormatYAML:
		return WriteYAML(report, writer)
	case domain.OutputFormatMarkdown:
		return f.writeReportMarkdown(report, writer)
	case domain.OutputFormatText, "":
		return f.writeReportText(report, writer)
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unsupported output format: %s", format), nil)
	}
}

// WriteJSON writes v as indented JSON
func WriteJSON(v interface{}, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML with two-space indentation
func WriteYAML(v interface{}, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

func (f *OutputFormatterImpl) writeScoreText(response *domain.ScoreResponse, showDetails bool, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Document Complexity Analysis\n")
	sb.WriteString("============================\n\n")

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tSCORE\tSIZE (KB)\tLINES")
	for _, a := range response.Analyses {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%d\n",
			a.Score.ID, a.Score.TotalScore, a.Score.SizeKB, a.Score.LineCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if showDetails {
		for _, a := range response.Analyses {
			sb.WriteString(fmt.Sprintf("\n%s\n", a.Score.ID))
			for _, ic := range a.Score.Breakdown {
				sb.WriteString(fmt.Sprintf("  %-20s count=%-5d weight=%-6.1f contribution=%.1f\n",
					ic.Name, ic.Count, ic.Weight, ic.Contribution))
			}
			for _, hit := range a.Conflicts {
				sb.WriteString(fmt.Sprintf("  conflict: %s (%d instances)\n", hit.Label, hit.Count))
			}
			for _, hit := range a.Violations {
				sb.WriteString(fmt.Sprintf("  violation: %s (%d instances)\n", hit.Label, hit.Count))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("\nDocuments: %d  Total: %.1f  Average: %.1f  Max: %.1f  High complexity: %d\n",
		response.Summary.TotalDocuments,
		response.Summary.TotalScore,
		response.Summary.AverageScore,
		response.Summary.MaxScore,
		response.Summary.HighComplexity))

	for _, w := range response.Warnings {
		sb.WriteString(fmt.Sprintf("warning: %s\n", w))
	}

	_, err := writer.Write([]byte(sb.String()))
	return err
}

func (f *OutputFormatterImpl) writeScoreMarkdown(response *domain.ScoreResponse, showDetails bool, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Document Complexity Analysis\n\n")
	sb.WriteString("| Document | Score | Size (KB) | Lines |\n")
	sb.WriteString("|----------|-------|-----------|-------|\n")
	for _, a := range response.Analyses {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %d |\n",
			a.Score.ID, a.Score.TotalScore, a.Score.SizeKB, a.Score.LineCount))
	}

	if showDetails {
		for _, a := range response.Analyses {
			sb.WriteString(fmt.Sprintf("\n## %s\n\n", a.Score.ID))
			sb.WriteString("| Indicator | Count | Weight | Contribution |\n")
			sb.WriteString("|-----------|-------|--------|--------------|\n")
			for _, ic := range a.Score.Breakdown {
				sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.1f |\n",
					ic.Name, ic.Count, ic.Weight, ic.Contribution))
			}
		}
	}

	sb.WriteString(fmt.Sprintf("\n**Documents:** %d | **Total:** %.1f | **Average:** %.1f | **Max:** %.1f\n",
		response.Summary.TotalDocuments,
		response.Summary.TotalScore,
		response.Summary.AverageScore,
		response.Summary.MaxScore))

	_, err := writer.Write([]byte(sb.String()))
	return err
}

func (f *OutputFormatterImpl) writeReportText(report *domain.Report, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Complexity Threshold Check\n")
	sb.WriteString("==========================\n\n")

	if len(report.Verdicts) == 0 {
		sb.WriteString("All checked documents are within their thresholds.\n")
	} else {
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DOCUMENT\tCURRENT\tBASELINE\tTHRESHOLD\tEXCESS\tSEVERITY")
		for _, v := range report.Verdicts {
			fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f%%\t%s\n",
				v.DocumentID, v.CurrentScore, v.BaselineScore, v.Threshold, v.ExcessPercent, v.Severity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(report.HighComplexity) > 0 {
		sb.WriteString("\nHigh complexity documents:\n")
		for _, h := range report.HighComplexity {
			sb.WriteString(fmt.Sprintf("  %s (score %.1f, %.1f KB, %d lines)\n",
				h.DocumentID, h.Score, h.SizeKB, h.LineCount))
		}
	}

	writeStringSection(&sb, "Conflicts found", report.Conflicts)
	writeStringSection(&sb, "Best practice violations", report.Violations)
	writeStringSection(&sb, "Warnings", report.Warnings)
	writeStringSection(&sb, "Recommendations", report.Recommendations)

	sb.WriteString(fmt.Sprintf("\nChecked: %d  Exceeded: %d  Baseline total: %.1f  Current total: %.1f\n",
		report.Summary.DocumentsChecked,
		report.Summary.DocumentsExceeded,
		report.Summary.TotalBaseline,
		report.Summary.TotalCurrent))

	_, err := writer.Write([]byte(sb.String()))
	return err
}

func writeStringSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s:\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("  - %s\n", item))
	}
}

func (f *OutputFormatterImpl) writeReportMarkdown(report *domain.Report, writer io.Writer) error {
	var sb strings.Builder

	sb.WriteString("# Complexity Threshold Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s | Version: %s\n\n", report.GeneratedAt, report.Version))

	if report.ThresholdExceeded {
		sb.WriteString("**Status: EXCEEDED**\n\n")
	} else {
		sb.WriteString("**Status: WITHIN LIMITS**\n\n")
	}

	if len(report.Verdicts) > 0 {
		sb.WriteString("## Exceeded Documents\n\n")
		sb.WriteString("| Document | Current | Baseline | Threshold | Excess | Severity |\n")
		sb.WriteString("|----------|---------|----------|-----------|--------|----------|\n")
		for _, v := range report.Verdicts {
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %.1f | %.1f%% | %s |\n",
				v.DocumentID, v.CurrentScore, v.BaselineScore, v.Threshold, v.ExcessPercent, v.Severity))
		}
		sb.WriteString("\n")
	}

	if len(report.HighComplexity) > 0 {
		sb.WriteString("## High Complexity Documents\n\n")
		sb.WriteString("| Document | Score | Size (KB) | Lines |\n")
		sb.WriteString("|----------|-------|-----------|-------|\n")
		for _, h := range report.HighComplexity {
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %d |\n",
				h.DocumentID, h.Score, h.SizeKB, h.LineCount))
		}
		sb.WriteString("\n")
	}

	writeMarkdownSection(&sb, "Conflicts Found", report.Conflicts)
	writeMarkdownSection(&sb, "Best Practice Violations", report.Violations)

	if len(report.SemanticFlags) > 0 {
		sb.WriteString("## Semantic Flags\n\n")
		sb.WriteString("| Document | Complexity | Compatibility | Reason |\n")
		sb.WriteString("|----------|------------|---------------|--------|\n")
		for _, flag := range report.SemanticFlags {
			sb.WriteString(fmt.Sprintf("| %s | %d/10 | %d/10 | %s |\n",
				flag.DocumentID, flag.ComplexityRating, flag.CursorCompatibility, flag.Reason))
		}
		sb.WriteString("\n")
	}

	writeMarkdownSection(&sb, "Warnings", report.Warnings)
	writeMarkdownSection(&sb, "Recommendations", report.Recommendations)

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Documents checked: %d\n", report.Summary.DocumentsChecked))
	sb.WriteString(fmt.Sprintf("- Documents exceeded: %d\n", report.Summary.DocumentsExceeded))
	sb.WriteString(fmt.Sprintf("- Baseline total: %.1f\n", report.Summary.TotalBaseline))
	sb.WriteString(fmt.Sprintf("- Current total: %.1f\n", report.Summary.TotalCurrent))
	if report.Summary.SemanticWarnings > 0 {
		sb.WriteString(fmt.Sprintf("- Semantic warnings: %d\n", report.Summary.SemanticWarnings))
	}

	_, err := writer.Write([]byte(sb.String()))
	return err
}

func writeMarkdownSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s\n", item))
	}
	sb.WriteString("\n")
}
