package outwriter

import (
	"os"

	"github.com/huangsam/stackscan/internal/contract"
	"golang.org/x/term"
)

// GetMaxPathWidth calculates the maximum width for paths in console output
// based on terminal width and the space reserved for other columns.
func GetMaxPathWidth(cfg *contract.Config, reserved int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - reserved
	if available < 20 {
		return 20
	}
	if available > 120 {
		return 120
	}
	return available
}
