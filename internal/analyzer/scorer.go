package analyzer

import (
	"strings"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

// Scorer computes the weighted complexity score of a document. It is
// pure and safe for concurrent use: all state is immutable after New.
type Scorer struct {
	indicators []domain.Indicator
	sizeWeight float64
}

// NewScorer builds a Scorer from scoring weights. Conflict patterns are
// needed because the critical_rules indicator counts their matches.
func NewScorer(scoring config.ScoringConfig, conflicts []config.PatternDefinition) *Scorer {
	return &Scorer{
		indicators: BuildIndicators(scoring, conflicts),
		sizeWeight: scoring.SizeWeight,
	}
}

// Score computes the full score of a single document. The breakdown
// preserves indicator declaration order; the size term is appended
// last so every breakdown lists the same rows in the same order.
// Empty text yields a zero score with all counts zero.
func (s *Scorer) Score(id, text string) domain.DocumentScore {
	breakdown := make(domain.ScoreBreakdown, 0, len(s.indicators)+1)
	total := 0.0

	for _, ind := range s.indicators {
		count := 0
		if text != "" {
			count = ind.Count(text)
		}
		contribution := float64(count) * ind.Weight
		total += contribution
		breakdown = append(breakdown, domain.IndicatorCount{
			Name:         ind.Name,
			Count:        count,
			Weight:       ind.Weight,
			Contribution: contribution,
		})
	}

	sizeKB := float64(len(text)) / 1024.0
	sizeContribution := sizeKB * s.sizeWeight
	total += sizeContribution
	breakdown = append(breakdown, domain.IndicatorCount{
		Name:         "file_size_kb",
		Count:        int(sizeKB),
		Weight:       s.sizeWeight,
		Contribution: sizeContribution,
	})

	return domain.DocumentScore{
		ID:         id,
		SizeKB:     sizeKB,
		LineCount:  countLines(text),
		Breakdown:  breakdown,
		TotalScore: total,
	}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
