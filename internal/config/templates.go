package config

import (
	"fmt"
	"strings"
)

// CorpusType describes the kind of document corpus being scanned, chosen
// during interactive setup.
type CorpusType string

const (
	CorpusTypeCursorRules CorpusType = "cursor-rules"
	CorpusTypeAgentDocs   CorpusType = "agent-docs"
	CorpusTypeGeneric     CorpusType = "generic"
)

// Strictness maps to a threshold multiplier preset
type Strictness string

const (
	StrictnessStrict   Strictness = "strict"
	StrictnessStandard Strictness = "standard"
	StrictnessRelaxed  Strictness = "relaxed"
)

// MultiplierFor returns the threshold multiplier for a strictness preset
func MultiplierFor(s Strictness) float64 {
	switch s {
	case StrictnessStrict:
		return 1.5
	case StrictnessRelaxed:
		return 3.0
	default:
		return DefaultThresholdMultiplier
	}
}

// IncludePatternsFor returns the include globs for a corpus type
func IncludePatternsFor(t CorpusType) []string {
	switch t {
	case CorpusTypeCursorRules:
		return []string{"**/*.mdc"}
	case CorpusTypeAgentDocs:
		return []string{"**/*.md"}
	default:
		return []string{"**/*.md", "**/*.mdc"}
	}
}

// GetMinimalConfigTemplate returns a minimal configuration template
func GetMinimalConfigTemplate() string {
	return `# rulescan configuration
# Minimal setup; all omitted sections use built-in defaults.

threshold:
  multiplier: 2.0

output:
  format: text
  sort_by: score
`
}

// GetFullConfigTemplate returns a full configuration template with
// comments explaining each option, adjusted for the chosen corpus type
// and strictness preset.
func GetFullConfigTemplate(t CorpusType, s Strictness) string {
	var includes strings.Builder
	for _, p := range IncludePatternsFor(t) {
		includes.WriteString(fmt.Sprintf("    - %q\n", p))
	}

	return fmt.Sprintf(`# rulescan configuration
# Complexity scoring, pattern classification and threshold gating for
# rule and agent-instruction documents.

# Indicator weights. Each weight multiplies the raw occurrence count of
# its structural indicator; size_weight multiplies the size in KB.
scoring:
  mermaid_diagrams: 5
  code_blocks: 2
  nested_headers: 3
  conditional_logic: 4
  workflow_steps: 2
  critical_rules: 3
  mode_transitions: 2
  visual_maps: 4
  size_weight: 0.1

  # Documents scoring above this value are flagged as high complexity
  # in summaries, independent of any baseline.
  high_complexity_score: 50

# Pattern tables. All patterns are regular expressions evaluated
# case-insensitively. Conflicts flag structural risk; violations flag
# embedded code-quality problems. The two families are reported
# separately and never merged.
patterns:
  conflicts:
    - pattern: 'CRITICAL.*MANDATORY'
      label: Mandatory rule complexity
    - pattern: 'MUST.*BEFORE'
      label: Sequential dependency complexity
    - pattern: 'BLOCKED'
      label: Blocking rule detected
  violations:
    - pattern: 'import pandas as pd'
      label: Avoid pandas aliasing

# Threshold gating. Each document id is matched against baseline keys
# in order; the first key contained in the id wins. Documents with no
# matching key are not gated. threshold = baseline * multiplier.
threshold:
  multiplier: %.1f
  baselines:
    - key: workflow-level4.mdc
      score: 80
    - key: main-optimized.mdc
      score: 60

# Optional semantic analysis through an OpenAI-compatible endpoint.
# Runs only when the API key environment variable is set; failures are
# collected as warnings and never fail the run.
semantic:
  enabled: true
  base_url: https://api.openai.com
  model: gpt-3.5-turbo
  api_key_env: OPENAI_API_KEY
  max_chars: 3000
  request_delay_ms: 500
  max_tokens: 500
  temperature: 0.3

# Output configuration
output:
  format: text           # text, json, yaml, markdown
  show_details: false    # show per-document indicator breakdowns
  sort_by: score         # score, name, size
  min_score: 0           # hide documents below this score
  directory: "."         # where report artifacts are written

# Analysis configuration
analysis:
  include_patterns:
%s  exclude_patterns:
    - node_modules
    - vendor
    - .git
  recursive: true
  respect_gitignore: true

# Performance tuning
performance:
  max_goroutines: 0      # 0 = number of CPUs
  timeout_seconds: 0     # 0 = no per-batch timeout
`, MultiplierFor(s), includes.String())
}
