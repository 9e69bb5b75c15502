package analyzer

import (
	"fmt"
	"regexp"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

// compiledPattern pairs a compiled regexp with its display label. The
// optional exclude expression narrows the match: its hits are subtracted
// from the count.
type compiledPattern struct {
	re      *regexp.Regexp
	exclude *regexp.Regexp
	label   string
}

// Classifier matches documents against the conflict and best-practice
// violation tables. The two families are classified independently and
// never merged; callers receive separate hit lists.
type Classifier struct {
	conflicts  []compiledPattern
	violations []compiledPattern
}

// NewClassifier compiles both pattern families. All patterns are
// case-insensitive. Compilation errors surface here rather than at
// match time.
func NewClassifier(patterns config.PatternsConfig) (*Classifier, error) {
	conflicts, err := compileFamily(patterns.Conflicts, "conflicts")
	if err != nil {
		return nil, err
	}
	violations, err := compileFamily(patterns.Violations, "violations")
	if err != nil {
		return nil, err
	}
	return &Classifier{conflicts: conflicts, violations: violations}, nil
}

func compileFamily(defs []config.PatternDefinition, family string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(defs))
	for i, def := range defs {
		re, err := regexp.Compile("(?i)" + def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %d (%q): %w", family, i, def.Pattern, err)
		}
		cp := compiledPattern{re: re, label: def.Label}
		if def.Exclude != "" {
			exclude, err := regexp.Compile("(?i)" + def.Exclude)
			if err != nil {
				return nil, fmt.Errorf("invalid %s exclude %d (%q): %w", family, i, def.Exclude, err)
			}
			cp.exclude = exclude
		}
		compiled = append(compiled, cp)
	}
	return compiled, nil
}

// Conflicts returns per-label conflict hits for the document text, in
// pattern table order. Labels with zero matches are omitted.
func (c *Classifier) Conflicts(text string) []domain.PatternHit {
	return matchFamily(c.conflicts, text)
}

// Violations returns per-label best-practice violation hits, in
// pattern table order. Labels with zero matches are omitted.
func (c *Classifier) Violations(text string) []domain.PatternHit {
	return matchFamily(c.violations, text)
}

func matchFamily(patterns []compiledPattern, text string) []domain.PatternHit {
	var hits []domain.PatternHit
	if text == "" {
		return hits
	}
	for _, p := range patterns {
		n := len(p.re.FindAllStringIndex(text, -1))
		if p.exclude != nil {
			n -= len(p.exclude.FindAllStringIndex(text, -1))
		}
		if n > 0 {
			hits = append(hits, domain.PatternHit{Label: p.label, Count: n})
		}
	}
	return hits
}
