package analyzer

import (
	"math"
	"strings"
	"testing"

	"github.com/kobzevvv/rulescan/internal/config"
)

func defaultScorer() *Scorer {
	cfg := config.DefaultConfig()
	return NewScorer(cfg.Scoring, cfg.Patterns.Conflicts)
}

func TestScorer_EmptyText(t *testing.T) {
	score := defaultScorer().Score("empty.md", "")

	if score.TotalScore != 0 {
		t.Errorf("Empty text should score 0, got %v", score.TotalScore)
	}
	if score.LineCount != 0 {
		t.Errorf("Empty text should have 0 lines, got %d", score.LineCount)
	}
	for _, ic := range score.Breakdown {
		if ic.Count != 0 {
			t.Errorf("Indicator %s should count 0 on empty text, got %d", ic.Name, ic.Count)
		}
	}
}

func TestScorer_Deterministic(t *testing.T) {
	text := "## Header\n```mermaid\ngraph TD\n```\nif something, switch MODE\nStep 1, Phase 2\n"
	scorer := defaultScorer()

	first := scorer.Score("doc.md", text)
	for i := 0; i < 5; i++ {
		again := scorer.Score("doc.md", text)
		if again.TotalScore != first.TotalScore {
			t.Fatalf("Score changed between runs: %v vs %v", again.TotalScore, first.TotalScore)
		}
	}
}

func TestScorer_BreakdownOrder(t *testing.T) {
	score := defaultScorer().Score("doc.md", "some text")

	want := []string{
		"mermaid_diagrams",
		"code_blocks",
		"nested_headers",
		"conditional_logic",
		"workflow_steps",
		"critical_rules",
		"mode_transitions",
		"visual_maps",
		"file_size_kb",
	}
	if len(score.Breakdown) != len(want) {
		t.Fatalf("Expected %d breakdown rows, got %d", len(want), len(score.Breakdown))
	}
	for i, name := range want {
		if score.Breakdown[i].Name != name {
			t.Errorf("Breakdown[%d] = %s, want %s", i, score.Breakdown[i].Name, name)
		}
	}
}

func TestScorer_Monotonic(t *testing.T) {
	scorer := defaultScorer()

	base := scorer.Score("doc.md", "plain text with nothing special")
	richer := scorer.Score("doc.md", "plain text with nothing special\n```mermaid\ngraph TD\n```\n## Section\n")

	if richer.TotalScore <= base.TotalScore {
		t.Errorf("Adding indicators should increase score: %v <= %v", richer.TotalScore, base.TotalScore)
	}
}

func TestScorer_KnownContributions(t *testing.T) {
	// Exactly one fenced code block: two ``` markers at weight 2 each.
	text := "```\ncode\n```"
	score := defaultScorer().Score("doc.md", text)

	cb, ok := score.Breakdown.Get("code_blocks")
	if !ok {
		t.Fatal("code_blocks missing from breakdown")
	}
	if cb.Count != 2 {
		t.Errorf("Expected 2 fence markers, got %d", cb.Count)
	}
	if cb.Contribution != 4 {
		t.Errorf("Expected contribution 4, got %v", cb.Contribution)
	}
}

func TestScorer_SizeTerm(t *testing.T) {
	// 1024 bytes of padding = 1 KB = 0.1 score at the default weight.
	text := strings.Repeat("x", 1024)
	score := defaultScorer().Score("doc.md", text)

	if math.Abs(score.SizeKB-1.0) > 1e-9 {
		t.Errorf("Expected 1.0 KB, got %v", score.SizeKB)
	}
	sz, ok := score.Breakdown.Get("file_size_kb")
	if !ok {
		t.Fatal("file_size_kb missing from breakdown")
	}
	if math.Abs(sz.Contribution-0.1) > 1e-9 {
		t.Errorf("Expected size contribution 0.1, got %v", sz.Contribution)
	}
}

func TestScorer_NestedHeaders(t *testing.T) {
	text := "# Top\n## Second\n### Third\ntext ## not a header\n"
	score := defaultScorer().Score("doc.md", text)

	nh, _ := score.Breakdown.Get("nested_headers")
	if nh.Count != 2 {
		t.Errorf("Expected 2 nested headers (## and ###), got %d", nh.Count)
	}
}

func TestScorer_CriticalRulesFromConflictPatterns(t *testing.T) {
	text := "CRITICAL rule is MANDATORY here\nthis task is BLOCKED\n"
	score := defaultScorer().Score("doc.md", text)

	cr, _ := score.Breakdown.Get("critical_rules")
	if cr.Count != 2 {
		t.Errorf("Expected 2 conflict matches feeding critical_rules, got %d", cr.Count)
	}
}

func TestScorer_LineCount(t *testing.T) {
	score := defaultScorer().Score("doc.md", "one\ntwo\nthree")
	if score.LineCount != 3 {
		t.Errorf("Expected 3 lines, got %d", score.LineCount)
	}
}
