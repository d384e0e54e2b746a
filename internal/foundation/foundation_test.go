package foundation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

func TestNormalizer(t *testing.T) {
	normalizer := NewNormalizer(map[string]string{
		"text": "text",
		"json": "json",
	}, "text")

	assert.Equal(t, "json", normalizer.Normalize(" JSON "))
	assert.Equal(t, "text", normalizer.Normalize("logfmt"), "unknown values fall back to the default")

	_, err := normalizer.NormalizeWithError("logfmt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepted: json, text")
	assert.Equal(t, []string{"json", "text"}, normalizer.Accepted())
}

func TestValidation(t *testing.T) {
	t.Run("String validators", func(t *testing.T) {
		validator := StringNotEmpty("builder")
		assert.True(t, validator("sphinx-build").Valid)
		assert.False(t, validator("  ").Valid)
	})

	t.Run("IntAtLeast", func(t *testing.T) {
		validator := IntAtLeast("parallel", 1)
		assert.True(t, validator(4).Valid)
		res := validator(0)
		require.False(t, res.Valid)
		assert.Equal(t, 0, res.Errors[0].Value)
	})

	t.Run("OneOf validator", func(t *testing.T) {
		validator := OneOf("format", []string{"html", "dirhtml"})
		assert.True(t, validator("html").Valid)
		assert.False(t, validator("pdf").Valid)
	})

	t.Run("Chain combines and converts", func(t *testing.T) {
		res := NewValidatorChain(StringNotEmpty("a"), OneOf("a", []string{"x"})).Validate("")
		require.False(t, res.Valid)
		assert.Len(t, res.Errors, 2)

		err := res.Prefixed("site.").ToError()
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		assert.Contains(t, err.Error(), "field 'site.a'")
	})

	t.Run("Valid converts to nil", func(t *testing.T) {
		assert.NoError(t, Valid().ToError())
	})
}
