// internal/cli/alerts.go
package arcx

import (
	"os"

	"github.com/fatih/color"
)

// Alert prints a user-facing failure banner to stderr. This is the terminal
// analogue of the dashboard's alert toast: the failed action is reported and
// nothing else is disturbed.
func Alert(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Notice prints a low-key informational line to stderr.
func Notice(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

// Successf prints a confirmation line to stdout.
func Successf(format string, args ...any) {
	color.New(color.FgGreen).Printf("✓ "+format+"\n", args...)
}
