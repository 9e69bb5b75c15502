package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_MessageAndCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewAnalysisError("analysis broke", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should unwrap to the cause")
	}

	var de DomainError
	if !errors.As(err, &de) {
		t.Fatal("errors.As should extract DomainError")
	}
	if de.Code != ErrCodeAnalysisError {
		t.Errorf("Expected code %s, got %s", ErrCodeAnalysisError, de.Code)
	}
}

func TestDomainError_WithoutCause(t *testing.T) {
	err := NewInvalidInputError("bad input", nil)
	if err.Error() != "INVALID_INPUT: bad input" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}
}

func TestIsUnavailable(t *testing.T) {
	if !IsUnavailable(NewUnavailableError("no key", nil)) {
		t.Error("IsUnavailable should detect unavailable errors")
	}
	if IsUnavailable(NewConfigError("bad config", nil)) {
		t.Error("IsUnavailable should reject other codes")
	}
	if IsUnavailable(fmt.Errorf("plain")) {
		t.Error("IsUnavailable should reject non-domain errors")
	}
}

func TestSemanticJudgement_PromotionThresholds(t *testing.T) {
	tests := []struct {
		name      string
		judgement SemanticJudgement
		highCmplx bool
		lowCompat bool
	}{
		{"rating at boundary", SemanticJudgement{ComplexityRating: 7, CursorCompatibility: 5}, false, false},
		{"rating above boundary", SemanticJudgement{ComplexityRating: 8}, true, false},
		{"compat below boundary", SemanticJudgement{CursorCompatibility: 4}, false, true},
		{"zero compat means no rating", SemanticJudgement{CursorCompatibility: 0}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.judgement.IsHighComplexity(); got != tt.highCmplx {
				t.Errorf("IsHighComplexity() = %v, want %v", got, tt.highCmplx)
			}
			if got := tt.judgement.IsLowCompatibility(); got != tt.lowCompat {
				t.Errorf("IsLowCompatibility() = %v, want %v", got, tt.lowCompat)
			}
		})
	}
}
