package errors

import (
	stderrors "errors"
	"strings"
)

// ClassifiedError is a failure with a category, a severity and structured
// context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// Error renders the message, the violated rule when known, and the cause
// unless the message already ends with it.
func (e *ClassifiedError) Error() string {
	var b strings.Builder
	b.WriteString(e.message)
	if rule := e.Rule(); rule != "" {
		b.WriteString(" [")
		b.WriteString(rule)
		b.WriteString("]")
	}
	if e.cause != nil {
		if cause := e.cause.Error(); !strings.HasSuffix(e.message, cause) {
			b.WriteString(": ")
			b.WriteString(cause)
		}
	}
	return b.String()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }

// Context returns a copy of the structured context.
func (e *ClassifiedError) Context() ErrorContext {
	return e.context.Merge(nil)
}

// Path is the offending file, if any.
func (e *ClassifiedError) Path() string { return e.context.GetString(KeyPath) }

// Rule is the name of the violated rule, if any.
func (e *ClassifiedError) Rule() string { return e.context.GetString(KeyRule) }

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory reports whether the first ClassifiedError in err's chain has
// the given category.
func HasCategory(err error, category ErrorCategory) bool {
	ce, ok := AsClassified(err)
	return ok && ce.category == category
}

// ContextString returns a string context value of the first ClassifiedError
// in err's chain.
func ContextString(err error, key string) string {
	if ce, ok := AsClassified(err); ok {
		return ce.context.GetString(key)
	}
	return ""
}
