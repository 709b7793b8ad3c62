package cmd

import (
	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// formatScoreWithColor colors a score green when every applicable header is
// present, yellow when some are, and red when none are.
func formatScoreWithColor(present, applicable int, score string) string {
	switch {
	case applicable > 0 && present == applicable:
		return colorSuccess(score)
	case present > 0:
		return colorWarn(score)
	default:
		return colorError(score)
	}
}
