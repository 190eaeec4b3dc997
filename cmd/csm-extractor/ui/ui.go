// Package ui provides terminal output helpers for the csm-extractor CLI.
package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

var (
	noColorFlag bool
	verboseFlag bool

	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
)

// InitUI applies color and verbosity settings for the process.
func InitUI(noColor, verbose bool) {
	noColorFlag = noColor
	verboseFlag = verbose
	if noColor {
		color.NoColor = true
	}
}

// Section displays a section header.
func Section(title string) {
	fmt.Fprintf(os.Stdout, "\n%s\n%s\n\n", title, strings.Repeat("=", len(title)))
}

// Info displays an informational message.
func Info(format string, args ...interface{}) {
	infoColor.Fprintf(os.Stdout, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Success displays a success message.
func Success(format string, args ...interface{}) {
	successColor.Fprintf(os.Stdout, "✓ %s\n", fmt.Sprintf(format, args...))
}

// Warning displays a warning message.
func Warning(format string, args ...interface{}) {
	warningColor.Fprintf(os.Stdout, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Error displays an error message to stderr.
func Error(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Verbose displays a message only when verbose output is enabled.
func Verbose(format string, args ...interface{}) {
	if verboseFlag {
		fmt.Fprintf(os.Stdout, "%s\n", fmt.Sprintf(format, args...))
	}
}

// Newline prints a blank line.
func Newline() {
	fmt.Fprintln(os.Stdout)
}

// Table displays data in an aligned table.
func Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
