package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "rulescan"

	// ConfigFileName is the default config file name
	ConfigFileName = "rulescan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "RULESCAN"
)

// Analysis type constants
const (
	AnalysisScoring   = "scoring"
	AnalysisPatterns  = "patterns"
	AnalysisThreshold = "threshold"
	AnalysisSemantic  = "semantic"
)

// Report artifact file names, written once per run
const (
	ReportJSONFile     = "rulescan-report.json"
	ReportMarkdownFile = "rulescan-report.md"
	SummaryFile        = "rulescan-summary.md"
)

// Exit codes for the check command
const (
	ExitCodePass          = 0
	ExitCodeThresholdFail = 1
	ExitCodeAnalysisError = 2
)
