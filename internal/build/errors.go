package build

import "errors"

// ErrDuplicateRef is the cause of errors for two documents that would be
// published under the same reference.
var ErrDuplicateRef = errors.New("duplicate post reference")
