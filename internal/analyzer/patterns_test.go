package analyzer

import (
	"testing"

	"github.com/kobzevvv/rulescan/internal/config"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(config.DefaultConfig().Patterns)
	if err != nil {
		t.Fatalf("Failed to build classifier: %v", err)
	}
	return c
}

func TestClassifier_InvalidPattern(t *testing.T) {
	_, err := NewClassifier(config.PatternsConfig{
		Conflicts: []config.PatternDefinition{
			{Pattern: "([unclosed", Label: "broken"},
		},
	})
	if err == nil {
		t.Error("Expected error for invalid regexp")
	}
}

func TestClassifier_CaseInsensitive(t *testing.T) {
	c := defaultClassifier(t)

	upper := c.Conflicts("CRITICAL step is MANDATORY")
	lower := c.Conflicts("critical step is mandatory")

	if len(upper) != 1 || len(lower) != 1 {
		t.Fatalf("Expected one hit for both cases, got %d and %d", len(upper), len(lower))
	}
	if upper[0].Label != lower[0].Label {
		t.Errorf("Case variants matched different labels: %s vs %s", upper[0].Label, lower[0].Label)
	}
}

func TestClassifier_EmptyText(t *testing.T) {
	c := defaultClassifier(t)

	if hits := c.Conflicts(""); len(hits) != 0 {
		t.Errorf("Empty text should have no conflict hits, got %d", len(hits))
	}
	if hits := c.Violations(""); len(hits) != 0 {
		t.Errorf("Empty text should have no violation hits, got %d", len(hits))
	}
}

func TestClassifier_FamiliesIndependent(t *testing.T) {
	c := defaultClassifier(t)

	// Conflict-only text must not produce violations, and vice versa.
	conflictText := "this workflow is BLOCKED until review"
	if hits := c.Violations(conflictText); len(hits) != 0 {
		t.Errorf("Conflict text should not hit violation patterns, got %v", hits)
	}

	violationText := "import pandas as pd"
	if hits := c.Conflicts(violationText); len(hits) != 0 {
		t.Errorf("Violation text should not hit conflict patterns, got %v", hits)
	}
	if hits := c.Violations(violationText); len(hits) == 0 {
		t.Error("Expected violation hits for pandas aliasing")
	}
}

func TestClassifier_CountsInstances(t *testing.T) {
	c := defaultClassifier(t)

	hits := c.Conflicts("BLOCKED once\nBLOCKED twice\nBLOCKED thrice\n")
	found := false
	for _, h := range hits {
		if h.Label == "Blocking rule detected" {
			found = true
			if h.Count != 3 {
				t.Errorf("Expected 3 instances, got %d", h.Count)
			}
		}
	}
	if !found {
		t.Error("Expected a hit for the blocking rule pattern")
	}
}

func TestClassifier_ExcludeNarrowsMatches(t *testing.T) {
	c, err := NewClassifier(config.PatternsConfig{
		Violations: []config.PatternDefinition{
			{Pattern: `JOIN\s+`, Exclude: `JOIN\s+LEFT`, Label: "Prefer LEFT JOIN over simple JOIN"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to build classifier: %v", err)
	}

	hits := c.Violations("FROM a JOIN b ON a.id = b.id\nJOIN LEFT is backwards\n")
	if len(hits) != 1 {
		t.Fatalf("Expected 1 hit, got %v", hits)
	}
	if hits[0].Count != 1 {
		t.Errorf("Excluded match should not count, got %d", hits[0].Count)
	}

	if hits := c.Violations("JOIN LEFT only"); len(hits) != 0 {
		t.Errorf("Fully excluded text should have no hits, got %v", hits)
	}
}

func TestClassifier_InvalidExclude(t *testing.T) {
	_, err := NewClassifier(config.PatternsConfig{
		Violations: []config.PatternDefinition{
			{Pattern: "JOIN", Exclude: "([unclosed", Label: "broken"},
		},
	})
	if err == nil {
		t.Error("Expected error for invalid exclude regexp")
	}
}

func TestClassifier_DefaultJoinPattern(t *testing.T) {
	c := defaultClassifier(t)

	hasJoinHit := func(text string) bool {
		for _, h := range c.Violations(text) {
			if h.Label == "Prefer LEFT JOIN over simple JOIN" {
				return true
			}
		}
		return false
	}

	if !hasJoinHit("SELECT * FROM a JOIN b USING (id)") {
		t.Error("Bare JOIN should be flagged")
	}
	if hasJoinHit("JOIN LEFT") {
		t.Error("JOIN immediately followed by LEFT is excluded")
	}
}

func TestClassifier_TableOrderPreserved(t *testing.T) {
	c, err := NewClassifier(config.PatternsConfig{
		Conflicts: []config.PatternDefinition{
			{Pattern: "beta", Label: "second"},
			{Pattern: "alpha", Label: "first"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to build classifier: %v", err)
	}

	hits := c.Conflicts("alpha beta")
	if len(hits) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(hits))
	}
	if hits[0].Label != "second" || hits[1].Label != "first" {
		t.Errorf("Hits should follow table order, got %s then %s", hits[0].Label, hits[1].Label)
	}
}
