package errors

// ErrorCategory names the check or subsystem an error came from. Each category
// has a fixed process exit code.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryDiscovery  ErrorCategory = "discovery"
	// CategoryExamples: at least one package's examples failed or could not be built.
	CategoryExamples ErrorCategory = "examples"
	// CategorySiteBuild: the site builder left diagnostics the ignore-list does not cover.
	CategorySiteBuild ErrorCategory = "site_build"
	// CategoryArtifact: the build reported success but its index page is missing.
	CategoryArtifact   ErrorCategory = "artifact"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: 2,
	CategoryDiscovery:  3,
	CategoryExamples:   4,
	CategorySiteBuild:  5,
	CategoryArtifact:   6,
	CategoryConfig:     7,
	CategoryFileSystem: 8,
	CategoryInternal:   10,
}

// ExitCode returns the process exit code for the category; unknown categories exit 1.
func (c ErrorCategory) ExitCode() int {
	if code, ok := exitCodes[c]; ok {
		return code
	}
	return 1
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // aborts the run before any check completes
	SeverityError   ErrorSeverity = "error"   // fails the check
	SeverityWarning ErrorSeverity = "warning" // reported, check continues
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext carries structured key/value details, logged alongside the message.
type ErrorContext map[string]any

// Set adds or replaces key, allocating the map on first use.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = ErrorContext{}
	}
	c[key] = value
	return c
}
