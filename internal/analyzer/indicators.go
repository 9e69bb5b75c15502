// Package analyzer implements the pure analysis core: indicator
// counting, complexity scoring, pattern classification and threshold
// comparison. Nothing here touches the filesystem or the network.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/kobzevvv/rulescan/internal/config"
)

var nestedHeaderRe = regexp.MustCompile(`(?m)^#{2,}`)

// BuildIndicators constructs the weighted indicator table from scoring
// weights. Counter functions are plain substring scans over the raw
// text; they deliberately do not parse markdown, so the score stays
// cheap and deterministic on malformed documents.
//
// The critical_rules indicator is derived from the conflict pattern
// table: its count is the total number of case-insensitive conflict
// matches in the document. Classification of individual conflicts is
// handled separately by Classifier; the indicator only feeds the score.
func BuildIndicators(scoring config.ScoringConfig, conflicts []config.PatternDefinition) []domain.Indicator {
	conflictRes := compilePatterns(conflicts)

	return []domain.Indicator{
		{
			Name:   "mermaid_diagrams",
			Weight: scoring.MermaidDiagrams,
			Count: func(text string) int {
				return strings.Count(text, "graph") + strings.Count(text, "```mermaid")
			},
		},
		{
			Name:   "code_blocks",
			Weight: scoring.CodeBlocks,
			Count: func(text string) int {
				return strings.Count(text, "```")
			},
		},
		{
			Name:   "nested_headers",
			Weight: scoring.NestedHeaders,
			Count: func(text string) int {
				return len(nestedHeaderRe.FindAllStringIndex(text, -1))
			},
		},
		{
			Name:   "conditional_logic",
			Weight: scoring.ConditionalLogic,
			Count: func(text string) int {
				return strings.Count(text, "if") + strings.Count(text, "else") + strings.Count(text, "switch")
			},
		},
		{
			Name:   "workflow_steps",
			Weight: scoring.WorkflowSteps,
			Count: func(text string) int {
				return strings.Count(text, "Step") + strings.Count(text, "Phase")
			},
		},
		{
			Name:   "critical_rules",
			Weight: scoring.CriticalRules,
			Count: func(text string) int {
				total := 0
				for _, re := range conflictRes {
					total += len(re.FindAllStringIndex(text, -1))
				}
				return total
			},
		},
		{
			Name:   "mode_transitions",
			Weight: scoring.ModeTransitions,
			Count: func(text string) int {
				return strings.Count(text, "MODE") + strings.Count(text, "switch")
			},
		},
		{
			Name:   "visual_maps",
			Weight: scoring.VisualMaps,
			Count: func(text string) int {
				return strings.Count(text, "mermaid") + strings.Count(text, "graph")
			},
		},
	}
}

func compilePatterns(defs []config.PatternDefinition) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(defs))
	for _, def := range defs {
		re, err := regexp.Compile("(?i)" + def.Pattern)
		if err != nil {
			// Invalid patterns are rejected by config validation; a
			// stray one is skipped rather than poisoning the score.
			continue
		}
		res = append(res, re)
	}
	return res
}
