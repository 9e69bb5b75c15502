package service

import (
	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/analyzer"
	"github.com/kobzevvv/rulescan/internal/config"
)

// ThresholdServiceImpl evaluates scored documents against the baseline
// table. Thin wrapper around the pure comparator; exists so use cases
// depend on a service, not on analyzer internals.
type ThresholdServiceImpl struct {
	threshold  config.ThresholdConfig
	comparator *analyzer.Comparator
}

// NewThresholdService creates a threshold service from configuration
func NewThresholdService(cfg *config.Config) *ThresholdServiceImpl {
	return &ThresholdServiceImpl{
		threshold:  cfg.Threshold,
		comparator: analyzer.NewComparator(cfg.Threshold),
	}
}

// Check returns a verdict for every document whose score exceeds its
// baseline-derived threshold, plus the count of analyzed documents.
// Every document counts as checked; a missing baseline key skips verdict
// emission only.
func (s *ThresholdServiceImpl) Check(analyses []domain.DocumentAnalysis) ([]domain.ThresholdVerdict, int) {
	var verdicts []domain.ThresholdVerdict
	for _, a := range analyses {
		if v, exceeded := s.comparator.CompareOne(a.Score); exceeded {
			verdicts = append(verdicts, v)
		}
	}
	return verdicts, len(analyses)
}

// ResolveBaseline exposes first-match baseline resolution for reporting
func (s *ThresholdServiceImpl) ResolveBaseline(documentID string) (domain.BaselineEntry, bool) {
	return s.threshold.ResolveBaseline(documentID)
}

// Multiplier returns the configured threshold multiplier
func (s *ThresholdServiceImpl) Multiplier() float64 {
	return s.threshold.Multiplier
}

// Baselines returns the ordered baseline table
func (s *ThresholdServiceImpl) Baselines() []domain.BaselineEntry {
	return s.threshold.Baselines
}
