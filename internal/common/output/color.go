// Package output renders colored terminal output for check results.
package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	// Check-result colors
	UpdateAvailable = color.New(color.FgGreen)
	UpToDate        = color.New(color.Faint)
	Failed          = color.New(color.FgRed)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header  = color.New(color.FgWhite, color.Bold)
	Package = color.New(color.FgBlue, color.Bold)
	Version = color.New(color.FgGreen, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// IsTerminal returns true if stdout is a terminal
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Printf("✓ "+format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Printf("⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Printf("→ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// FormatVersionChange renders "old → new" with the new version highlighted
func FormatVersionChange(current, latest string) string {
	return fmt.Sprintf("%s → %s", current, Version.Sprint(latest))
}

// Notification prints the update banner for one package
func Notification(pkg, current, latest, url string) {
	fmt.Println()
	Success.Printf("A new version of %s is available: %s\n",
		Package.Sprint(pkg), FormatVersionChange(current, latest))
	if url != "" {
		Dim.Printf("  %s\n", url)
	}
	fmt.Println()
}
