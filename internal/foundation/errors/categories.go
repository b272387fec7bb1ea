package errors

import (
	"maps"
	"slices"
)

// ErrorCategory names the family of rule a failure violated.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Problems with one source document. Any of them aborts the build.
	CategoryFormat     ErrorCategory = "format"
	CategorySchema     ErrorCategory = "schema"
	CategoryPlacement  ErrorCategory = "placement"
	CategoryIdentifier ErrorCategory = "identifier"
	CategoryDuplicate  ErrorCategory = "duplicate"

	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitGeneral     = 1
	ExitDocument    = 2
	ExitConfig      = 7
	ExitInternal    = 10
	ExitBuild       = 11
	ExitInterrupted = 130
)

// IsDocument reports whether c blames a source document rather than the
// environment the build runs in.
func (c ErrorCategory) IsDocument() bool {
	switch c {
	case CategoryFormat, CategorySchema, CategoryPlacement, CategoryIdentifier, CategoryDuplicate:
		return true
	}
	return false
}

// ExitCode maps c to the code the CLI exits with.
func (c ErrorCategory) ExitCode() int {
	switch {
	case c.IsDocument(), c == CategoryValidation:
		return ExitDocument
	case c == CategoryConfig:
		return ExitConfig
	case c == CategoryRender, c == CategoryFileSystem:
		return ExitBuild
	case c == CategoryInternal:
		return ExitInternal
	}
	return ExitGeneral
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal" // Aborts the build
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// Context keys shared across packages.
const (
	KeyPath  = "path"
	KeyRule  = "rule"
	KeyField = "field"
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value, allocating c when nil.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) string {
	s, _ := c[key].(string)
	return s
}

// Merge returns a new context holding c overlaid with other.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}

// Keys returns the context keys in sorted order.
func (c ErrorContext) Keys() []string {
	return slices.Sorted(maps.Keys(c))
}
