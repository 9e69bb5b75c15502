package analyzer

import (
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

// Comparator checks document scores against the baseline table. It is
// pure: the same scores and table always yield the same verdicts.
type Comparator struct {
	threshold config.ThresholdConfig
}

// NewComparator wraps a threshold configuration. A multiplier <= 0 is a
// configuration error and must be rejected before this point.
func NewComparator(threshold config.ThresholdConfig) *Comparator {
	return &Comparator{threshold: threshold}
}

// Multiplier returns the configured threshold multiplier
func (c *Comparator) Multiplier() float64 {
	return c.threshold.Multiplier
}

// Baselines returns the ordered baseline table
func (c *Comparator) Baselines() []domain.BaselineEntry {
	return c.threshold.Baselines
}

// Compare evaluates every scored document against the baseline table
// and returns a verdict per exceeded document, in input order. Documents
// with no matching baseline key, and documents at or under their
// threshold, produce no verdict.
func (c *Comparator) Compare(scores []domain.DocumentScore) []domain.ThresholdVerdict {
	var verdicts []domain.ThresholdVerdict
	for _, score := range scores {
		if v, exceeded := c.CompareOne(score); exceeded {
			verdicts = append(verdicts, v)
		}
	}
	return verdicts
}

// CompareOne evaluates a single scored document. The boolean is true
// only when the document matched a baseline key and its score is
// strictly above baseline * multiplier. Severity is critical when the
// excess is strictly above the critical excess percentage, warning
// otherwise.
func (c *Comparator) CompareOne(score domain.DocumentScore) (domain.ThresholdVerdict, bool) {
	entry, ok := c.threshold.ResolveBaseline(score.ID)
	if !ok {
		return domain.ThresholdVerdict{}, false
	}

	threshold := entry.Score * c.threshold.Multiplier
	if score.TotalScore <= threshold {
		return domain.ThresholdVerdict{}, false
	}

	excessPct := 0.0
	if threshold > 0 {
		excessPct = (score.TotalScore - threshold) / threshold * 100.0
	}

	severity := domain.SeverityWarning
	if excessPct > domain.CriticalExcessPercent {
		severity = domain.SeverityCritical
	}

	return domain.ThresholdVerdict{
		DocumentID:    score.ID,
		CurrentScore:  score.TotalScore,
		BaselineScore: entry.Score,
		Threshold:     threshold,
		ExcessPercent: excessPct,
		Severity:      severity,
		SizeKB:        score.SizeKB,
		LineCount:     score.LineCount,
	}, true
}
