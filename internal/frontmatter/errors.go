package frontmatter

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// Sentinels carried as the cause of the classified errors returned by Parse
// and CheckAgainstSource.
var (
	ErrSchema             = errors.New("front matter schema violation")
	ErrPlacement          = errors.New("post is not in its section directory")
	ErrIdentifierMismatch = errors.New("file name prefix does not match id")
	ErrMissingIdentifier  = errors.New("file name has no id prefix")
)

// Context keys attached to document errors.
const (
	ContextPath = ferrors.KeyPath
	ContextRule = ferrors.KeyRule
)

func schemaError(rule, format string, args ...any) error {
	return ferrors.WrapError(ErrSchema, ferrors.CategorySchema, fmt.Sprintf(format, args...)).
		Fatal().
		WithContext(ContextRule, rule).
		Build()
}

func sourceError(category ferrors.ErrorCategory, cause error, path, rule, format string, args ...any) error {
	return ferrors.WrapError(cause, category, fmt.Sprintf(format, args...)).
		Fatal().
		WithContext(ContextPath, path).
		WithContext(ContextRule, rule).
		Build()
}

// AtPath attributes a document error to the file at path. Errors that already
// name a path are returned unchanged.
func AtPath(err error, path string) error {
	if err == nil || ferrors.ContextString(err, ContextPath) != "" {
		return err
	}
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return ferrors.WrapError(err, ferrors.CategorySchema, fmt.Sprintf("%s: %v", path, err)).
			Fatal().
			WithContext(ContextPath, path).
			Build()
	}
	return ferrors.WrapError(ce.Cause(), ce.Category(), fmt.Sprintf("%s: %s", path, ce.Message())).
		WithSeverity(ce.Severity()).
		WithContextMap(ce.Context()).
		WithContext(ContextPath, path).
		Build()
}
