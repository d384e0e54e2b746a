package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.cause = err
	return b
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.severity = severity
	return b
}

// WithContext adds a context key-value pair.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	return b.WithSeverity(SeverityFatal)
}

// Build creates the final ClassifiedError.
func (b *ErrorBuilder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Constructors per category. Config, validation and discovery problems stop
// the run before any check executes, so they are fatal.

// ConfigError creates a configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError creates a validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}

// DiscoveryError creates a package discovery error.
func DiscoveryError(message string) *ErrorBuilder {
	return NewError(CategoryDiscovery, message).Fatal()
}

// ExamplesError creates an example execution error.
func ExamplesError(message string) *ErrorBuilder {
	return NewError(CategoryExamples, message)
}

// SiteBuildError creates a site builder error.
func SiteBuildError(message string) *ErrorBuilder {
	return NewError(CategorySiteBuild, message)
}

// ArtifactError creates a missing build artifact error.
func ArtifactError(message string) *ErrorBuilder {
	return NewError(CategoryArtifact, message)
}

// FileSystemError wraps a failed file or directory operation.
func FileSystemError(err error, message string) *ErrorBuilder {
	return WrapError(err, CategoryFileSystem, message)
}

// InternalError wraps a failure of doccheck itself rather than of a check.
func InternalError(err error, message string) *ErrorBuilder {
	return WrapError(err, CategoryInternal, message).Fatal()
}
