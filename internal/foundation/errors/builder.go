package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError is NewError with err as the cause.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithContextMap overlays every entry of ctx.
func (b *ErrorBuilder) WithContextMap(ctx ErrorContext) *ErrorBuilder {
	b.err.context = b.err.context.Merge(ctx)
	return b
}

// Fatal marks the error as aborting the build.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Build returns the error. The builder may be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	e.context = b.err.context.Merge(nil)
	return &e
}

// ConfigError starts a fatal configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// SchemaError starts a fatal front matter schema error.
func SchemaError(message string) *ErrorBuilder {
	return NewError(CategorySchema, message).Fatal()
}

// RenderError starts a fatal markup rendering error.
func RenderError(message string) *ErrorBuilder {
	return NewError(CategoryRender, message).Fatal()
}

// InternalError starts a fatal error for broken invariants.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
