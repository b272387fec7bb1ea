// Package errors provides the classified errors every postgen command returns.
//
// A ClassifiedError carries a message, a category naming the family of rule
// that was violated, a severity, an optional cause and structured context.
// Document errors put the offending file under KeyPath and the violated rule
// under KeyRule. The category alone decides the process exit code.
//
//	err := errors.WrapError(frontmatter.ErrPlacement, errors.CategoryPlacement, msg).
//		WithContext(errors.KeyPath, source).
//		WithContext(errors.KeyRule, "section.directory").
//		Build()
package errors
