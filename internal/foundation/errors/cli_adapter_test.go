package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "discovery", err: DiscoveryError("unreadable root").Build(), expected: 3},
		{name: "examples", err: ExamplesError("2 example(s) failed").Build(), expected: 4},
		{name: "site build", err: SiteBuildError("warnings").Build(), expected: 5},
		{name: "artifact", err: ArtifactError("index.html not found").Build(), expected: 6},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "filesystem", err: FileSystemError(errors.New("mkdir"), "mkdir").Build(), expected: 8},
		{name: "internal", err: InternalError(errors.New("boom"), "boom").Build(), expected: 10},
		{name: "wrapped classified", err: fmt.Errorf("run: %w", ArtifactError("missing").Build()), expected: 6},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())

	siteErr := SiteBuildError("site build failed with warnings:\nWARNING: x").Build()

	assert.Empty(t, quiet.FormatError(nil))
	assert.Equal(t, "Error: site build failed with warnings:\nWARNING: x", quiet.FormatError(siteErr))
	assert.Contains(t, verbose.FormatError(siteErr), "[site_build:error]")
	assert.Equal(t, "Internal error occurred (use -v for details)", quiet.FormatError(InternalError(errors.New("x"), "x").Build()))
	assert.Equal(t, "Error: unknown error", quiet.FormatError(&customError{msg: "unknown error"}))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(ConfigError("configuration file unreadable").WithContext("path", "doccheck.yaml").Build())

	assert.Equal(t, 7, code)
	assert.Equal(t, "Error: configuration file unreadable\n", out.String())
	assert.Contains(t, logs.String(), "category=config")
	assert.Contains(t, logs.String(), "path=doccheck.yaml")

	code = -1
	adapter.HandleError(nil)
	assert.Equal(t, -1, code)
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
