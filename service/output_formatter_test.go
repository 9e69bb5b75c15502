package service

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kobzevvv/rulescan/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		ThresholdExceeded: true,
		ExitCode:          1,
		Verdicts: []domain.ThresholdVerdict{
			{
				DocumentID:    "rules/alpha.mdc",
				CurrentScore:  200,
				BaselineScore: 80,
				Threshold:     160,
				ExcessPercent: 25,
				Severity:      domain.SeverityWarning,
			},
		},
		Conflicts:       []string{"Blocking rule detected: 2 instances"},
		Recommendations: []string{"Simplify documents that exceed their complexity thresholds"},
		Summary: domain.CheckSummary{
			DocumentsChecked:  3,
			DocumentsExceeded: 1,
			TotalBaseline:     140,
			TotalCurrent:      250,
		},
		GeneratedAt: "2025-01-01T00:00:00Z",
		Version:     "test",
	}
}

func TestWriteReport_JSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteReport(sampleReport(), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	var decoded domain.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if !decoded.ThresholdExceeded || len(decoded.Verdicts) != 1 {
		t.Errorf("Round trip lost data: %+v", decoded)
	}
}

func TestWriteReport_VerdictsUseExceededFilesKey(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteReport(sampleReport(), domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"exceeded_files"`) {
		t.Error("JSON report should expose verdicts under exceeded_files")
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteReport(sampleReport(), domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"rules/alpha.mdc", "warning", "Conflicts found", "Recommendations"} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteReport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteReport(sampleReport(), domain.OutputFormatMarkdown, &buf); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "**Status: EXCEEDED**") {
		t.Error("Markdown report should carry the EXCEEDED status")
	}
	if !strings.Contains(out, "| rules/alpha.mdc |") {
		t.Error("Markdown report should tabulate verdicts")
	}
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewOutputFormatter().WriteReport(sampleReport(), domain.OutputFormat("csv"), &buf)
	if err == nil {
		t.Error("Unknown format should be rejected")
	}
}

func TestWriteScore_TextWithDetails(t *testing.T) {
	resp := &domain.ScoreResponse{
		Analyses: []domain.DocumentAnalysis{
			{
				Score: domain.DocumentScore{
					ID:         "doc.md",
					TotalScore: 12.5,
					Breakdown: domain.ScoreBreakdown{
						{Name: "code_blocks", Count: 2, Weight: 2, Contribution: 4},
					},
				},
			},
		},
		Summary: domain.CorpusSummary{TotalDocuments: 1, TotalScore: 12.5, AverageScore: 12.5, MaxScore: 12.5},
	}

	var buf bytes.Buffer
	if err := NewOutputFormatter().WriteScore(resp, domain.OutputFormatText, true, &buf); err != nil {
		t.Fatalf("WriteScore failed: %v", err)
	}
	if !strings.Contains(buf.String(), "code_blocks") {
		t.Error("Details output should include the indicator breakdown")
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(sampleReport())

	if !strings.Contains(out, "Status: **EXCEEDED**") {
		t.Error("Summary should show the exceeded status")
	}
	if !strings.Contains(out, "rules/alpha.mdc") {
		t.Error("Summary should list exceeded documents")
	}

	ok := sampleReport()
	ok.ThresholdExceeded = false
	ok.Verdicts = nil
	if !strings.Contains(renderSummary(ok), "WITHIN LIMITS") {
		t.Error("Compliant summary should show WITHIN LIMITS")
	}
}
