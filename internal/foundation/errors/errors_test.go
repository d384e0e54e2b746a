package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "doccheck.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.Equal(t, "[config:fatal] invalid configuration", err.Error())
		assert.Equal(t, ErrorContext{"file": "doccheck.yaml"}, err.Context())
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", ConfigError("test error").Build())

		classified, ok := AsClassified(err)
		require.True(t, ok)
		assert.Equal(t, "test error", classified.Message())
		assert.True(t, HasCategory(err, CategoryConfig))
		assert.False(t, HasCategory(err, CategorySiteBuild))
		assert.False(t, HasCategory(errors.New("plain"), CategoryInternal))
	})
}

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("exit status 1")
	err := WrapError(cause, CategorySiteBuild, "builder failed").
		WithContext("builder", "sphinx-build").
		Build()

	assert.Equal(t, SeverityError, err.Severity())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[site_build:error] builder failed: exit status 1", err.Error())
}

func TestWrappingConstructors(t *testing.T) {
	fsErr := FileSystemError(fs.ErrPermission, "cannot create build directory").Build()
	assert.Equal(t, CategoryFileSystem, fsErr.Category())
	assert.Equal(t, SeverityError, fsErr.Severity())
	assert.ErrorIs(t, fsErr, fs.ErrPermission)

	internal := InternalError(errors.New("bad tag"), "cannot build command-line parser").Build()
	assert.Equal(t, CategoryInternal, internal.Category())
	assert.Equal(t, SeverityFatal, internal.Severity())
	assert.Equal(t, "[internal:fatal] cannot build command-line parser: bad tag", internal.Error())
}
