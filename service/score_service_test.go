package service

import (
	"context"
	"testing"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

func testScoreService(t *testing.T) *ScoreServiceImpl {
	t.Helper()
	svc, err := NewScoreService(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to build score service: %v", err)
	}
	return svc
}

func TestScoreService_AnalyzeDocument(t *testing.T) {
	svc := testScoreService(t)

	analysis, err := svc.AnalyzeDocument(domain.Document{
		ID:   "doc.md",
		Text: "## Header\n```\ncode\n```\nBLOCKED\n",
	})
	if err != nil {
		t.Fatalf("AnalyzeDocument failed: %v", err)
	}

	if analysis.Score.TotalScore <= 0 {
		t.Error("Expected a positive score")
	}
	if len(analysis.Conflicts) == 0 {
		t.Error("Expected conflict hits for BLOCKED")
	}
}

func TestScoreService_AnalyzeDocument_EmptyID(t *testing.T) {
	if _, err := testScoreService(t).AnalyzeDocument(domain.Document{Text: "x"}); err == nil {
		t.Error("Empty document id should be rejected")
	}
}

func TestScoreService_Analyze_EmptyCorpus(t *testing.T) {
	if _, err := testScoreService(t).Analyze(context.Background(), domain.ScoreRequest{}); err == nil {
		t.Error("Empty corpus should be rejected")
	}
}

func TestScoreService_Analyze_DeterministicOrdering(t *testing.T) {
	svc := testScoreService(t)

	docs := []domain.Document{
		{ID: "small.md", Text: "plain"},
		{ID: "large.md", Text: "## A\n## B\n```mermaid\ngraph TD\n```\n"},
		{ID: "medium.md", Text: "## Only one header\n"},
	}

	first, err := svc.Analyze(context.Background(), domain.ScoreRequest{Documents: docs, SortBy: domain.SortByScore})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Scheduling must never leak into result order
	for i := 0; i < 3; i++ {
		again, err := svc.Analyze(context.Background(), domain.ScoreRequest{Documents: docs, SortBy: domain.SortByScore})
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		for j := range first.Analyses {
			if again.Analyses[j].Score.ID != first.Analyses[j].Score.ID {
				t.Fatalf("Result order changed between runs at %d", j)
			}
		}
	}

	if first.Analyses[0].Score.ID != "large.md" {
		t.Errorf("Score sort should put the highest first, got %s", first.Analyses[0].Score.ID)
	}
}

func TestScoreService_Analyze_SortByName(t *testing.T) {
	svc := testScoreService(t)

	resp, err := svc.Analyze(context.Background(), domain.ScoreRequest{
		Documents: []domain.Document{
			{ID: "b.md", Text: "x"},
			{ID: "a.md", Text: "y"},
		},
		SortBy: domain.SortByName,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if resp.Analyses[0].Score.ID != "a.md" {
		t.Errorf("Name sort should be ascending, got %s first", resp.Analyses[0].Score.ID)
	}
}

func TestScoreService_Analyze_MinScoreFilter(t *testing.T) {
	svc := testScoreService(t)

	resp, err := svc.Analyze(context.Background(), domain.ScoreRequest{
		Documents: []domain.Document{
			{ID: "rich.md", Text: "## A\n## B\n## C\n```mermaid\ngraph TD\n```\nif else switch\n"},
			{ID: "trivial.md", Text: "hi"},
		},
		SortBy:   domain.SortByScore,
		MinScore: 5,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for _, a := range resp.Analyses {
		if a.Score.TotalScore < 5 {
			t.Errorf("Document %s below min score slipped through", a.Score.ID)
		}
	}
}

func TestScoreService_SummaryAggregates(t *testing.T) {
	svc := testScoreService(t)

	resp, err := svc.Analyze(context.Background(), domain.ScoreRequest{
		Documents: []domain.Document{
			{ID: "a.md", Text: "## H\n"},
			{ID: "b.md", Text: "## H\n## I\n"},
		},
		SortBy: domain.SortByScore,
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	s := resp.Summary
	if s.TotalDocuments != 2 {
		t.Errorf("Expected 2 documents, got %d", s.TotalDocuments)
	}
	if s.MaxScore < s.AverageScore {
		t.Error("Max score cannot be below the average")
	}
	wantTotal := resp.Analyses[0].Score.TotalScore + resp.Analyses[1].Score.TotalScore
	if s.TotalScore != wantTotal {
		t.Errorf("Total %v does not match sum of scores %v", s.TotalScore, wantTotal)
	}
}
