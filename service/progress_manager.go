package service

import (
	"io"
	"os"

	"github.com/kobzevvv/rulescan/domain"
	"github.com/schollz/progressbar/v3"
)

// ProgressManagerImpl renders per-stage progress bars on stderr while a
// corpus is scored or judged. Bars never go to stdout, which stays
// reserved for report output.
type ProgressManagerImpl struct {
	writer io.Writer
	bars   []*progressbar.ProgressBar
}

// NewProgressManager returns a live progress manager when progress is
// requested and the run is attached to an interactive terminal, and the
// no-op manager otherwise (CI, piped output, --no-progress).
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &ProgressManagerImpl{writer: os.Stderr}
	}
	return &NoOpProgressManager{}
}

// StartTask opens a progress bar for one pipeline stage. total is the
// number of documents the stage will process.
func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	if description == "" {
		description = "Processing documents"
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(24),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	pm.bars = append(pm.bars, bar)
	return &TaskProgressImpl{bar: bar}
}

// IsInteractive reports that bars are being rendered
func (pm *ProgressManagerImpl) IsInteractive() bool {
	return true
}

// Close finishes any bars a stage left open, so partial runs do not
// leave a dangling bar on the terminal.
func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.bars {
		_ = bar.Finish()
	}
	pm.bars = nil
}

// TaskProgressImpl tracks one stage's bar
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

// Increment advances the bar by n documents
func (tp *TaskProgressImpl) Increment(n int) {
	_ = tp.bar.Add(n)
}

// Describe relabels the bar, typically with the current document id
func (tp *TaskProgressImpl) Describe(description string) {
	tp.bar.Describe(description)
}

// Complete finishes the bar
func (tp *TaskProgressImpl) Complete() {
	_ = tp.bar.Finish()
}

// NoOpProgressManager silences all progress output
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool { return false }

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all task updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}
