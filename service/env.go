package service

import (
	"os"

	"golang.org/x/term"
)

// IsInteractiveEnvironment reports whether stderr is a terminal and the
// process is not running under a CI system. Progress bars and colored
// output are suppressed otherwise.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv("RULESCAN_NO_PROGRESS") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
