// Package logger provides process-wide logging for issuesync.
// Debug and info messages are printed only in verbose mode; warnings and
// errors are always printed. Inside GitHub Actions the output can be
// switched to workflow commands so warnings surface as run annotations.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Format selects how log lines are rendered.
type Format int

const (
	// FormatText renders "[LEVEL] message" lines.
	FormatText Format = iota

	// FormatActions renders GitHub Actions workflow commands
	// (::debug::, ::warning::, ::error::).
	FormatActions
)

var (
	mu      sync.RWMutex
	verbose bool
	format  = FormatText
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetFormat sets the output format.
func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	format = f
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("debug", "DEBUG", true, format, args...)
}

// Section prints a section header if verbose mode is enabled. The header
// is plain text in every format.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("", "INFO", true, format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	logf("warning", "WARN", false, format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	logf("error", "ERROR", false, format, args...)
}

// logf renders one line. command is the workflow command name used in
// FormatActions; an empty command prints the bare message.
func logf(command, level string, verboseOnly bool, msgFormat string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verboseOnly && !verbose {
		return
	}

	msg := fmt.Sprintf(msgFormat, args...)
	if format == FormatActions {
		if command == "" {
			fmt.Fprintln(output, msg)
			return
		}
		fmt.Fprintf(output, "::%s::%s\n", command, escapeData(msg))
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, msg)
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}
