package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger provides user-facing output plus leveled diagnostics. Result output
// goes to stdout verbatim; errors, warnings, and verbose traces go through a
// leveled logger on stderr so they stay out of pipeable output.
type Logger struct {
	out     io.Writer
	diag    *log.Logger
	verbose bool
}

// NewLogger creates a new Logger instance.
func NewLogger(verbose bool) *Logger {
	return newLogger(os.Stdout, os.Stderr, verbose)
}

// newLogger creates a Logger with custom writers for testing.
func newLogger(out, errOut io.Writer, verbose bool) *Logger {
	diag := log.NewWithOptions(errOut, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		diag.SetLevel(log.DebugLevel)
	}
	return &Logger{
		out:     out,
		diag:    diag,
		verbose: verbose,
	}
}

// Info prints an informational message to stdout.
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Prompt prints a message to stdout without a trailing newline, for
// confirmation prompts.
func (l *Logger) Prompt(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

// Error prints an error message to the diagnostic logger.
func (l *Logger) Error(format string, args ...any) {
	l.diag.Errorf(format, args...)
}

// Warn prints a warning message to the diagnostic logger.
func (l *Logger) Warn(format string, args ...any) {
	l.diag.Warnf(format, args...)
}

// Verbose prints a debug message, shown only when verbose mode is enabled.
func (l *Logger) Verbose(format string, args ...any) {
	l.diag.Debugf(format, args...)
}

// IsVerbose returns whether verbose mode is enabled.
func (l *Logger) IsVerbose() bool {
	return l.verbose
}
