package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter reports the error a command returned and exits with the
// code its category maps to.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates an adapter writing to stderr. A nil logger means
// slog.Default().
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr, exit: os.Exit}
}

// ExitCodeFor determines the exit code for err.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	if ce, ok := AsClassified(err); ok {
		return ce.category.ExitCode()
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	return ExitGeneral
}

// FormatError renders err for the terminal. Without verbose output internal
// details are hidden and document errors get a short prefix.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	ce, ok := AsClassified(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return ce.Error()
	case ce.category == CategoryInternal:
		return "Internal error occurred (use -v for details)"
	case ce.category.IsDocument():
		if rule := ce.Rule(); rule != "" {
			return fmt.Sprintf("Invalid document: %s [%s]", ce.message, rule)
		}
		return "Invalid document: " + ce.message
	default:
		return "Error: " + ce.message
	}
}

// HandleError logs and prints err, then exits. A nil err returns immediately.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.verbose || !isClassifiedBelowFatal(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func isClassifiedBelowFatal(err error) bool {
	ce, ok := AsClassified(err)
	return ok && ce.severity != SeverityFatal
}

func (a *CLIErrorAdapter) logError(err error) {
	ce, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", slog.String("error", err.Error()))
		return
	}
	attrs := []slog.Attr{slog.String("category", string(ce.category))}
	for _, key := range ce.context.Keys() {
		attrs = append(attrs, slog.Any(key, ce.context[key]))
	}
	level := slog.LevelError
	if ce.severity == SeverityWarning {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, ce.message, attrs...)
}
