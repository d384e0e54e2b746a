package sitecheck

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccheck/internal/config"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

func rule(pattern string, skip int) WarningRule {
	return WarningRule{Pattern: regexp.MustCompile(pattern), Skip: skip}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\r\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
		{"a\n\n", []string{"a", ""}},
		{"\n", []string{""}},
		{"a\rb", []string{"a", "b"}},
		{"a\r", []string{"a"}},
		{"a\r\n\rb", []string{"a", "", "b"}},
		{"p\fq\vr", []string{"p", "q", "r"}},
		{"x\x1cy\x1dz\x1e", []string{"x", "y", "z"}},
		{"x\u0085y\u2028z\u2029", []string{"x", "y", "z"}},
		{"café\nnaïve", []string{"café", "naïve"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.in), "input %q", tt.in)
	}
}

func TestFilterLinesSkipBlock(t *testing.T) {
	lines := []string{
		"WARNING: benign thing happened",
		"  context line 1",
		"  context line 2",
		"ERROR: real problem",
	}
	kept, dropped := FilterLines(lines, []WarningRule{rule(`WARNING: benign`, 2)})

	assert.Equal(t, []string{"ERROR: real problem"}, kept)
	assert.Equal(t, 3, dropped)
}

func TestFilterLinesFirstMatchWins(t *testing.T) {
	lines := []string{"WARNING: x", "follow-up", "keep me"}
	rules := []WarningRule{rule(`WARNING`, 0), rule(`WARNING: x`, 1)}

	kept, dropped := FilterLines(lines, rules)
	assert.Equal(t, []string{"follow-up", "keep me"}, kept, "the first rule (skip 0) must win")
	assert.Equal(t, 1, dropped)
}

func TestFilterLinesSkipPastEnd(t *testing.T) {
	kept, dropped := FilterLines([]string{"ok", "DeprecationWarning: Jupyter is migrating its paths", "x"}, DefaultRules())
	assert.Equal(t, []string{"ok"}, kept)
	assert.Equal(t, 2, dropped)
}

func TestFilterLinesSkippedLinesAreNotMatched(t *testing.T) {
	// A skipped line that would itself match a rule is consumed by the block,
	// so it does not start a block of its own.
	lines := []string{"RemovedInSphinx90Warning: a", "RemovedInSphinx90Warning: b", "tail"}
	kept, dropped := FilterLines(lines, DefaultRules())
	assert.Equal(t, []string{"tail"}, kept)
	assert.Equal(t, 2, dropped)
}

func TestFilterLinesNoRules(t *testing.T) {
	kept, dropped := FilterLines([]string{"a", "b"}, nil)
	assert.Equal(t, []string{"a", "b"}, kept)
	assert.Zero(t, dropped)

	kept, _ = FilterLines(nil, DefaultRules())
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 7)

	lines := []string{
		"/doc/api.rst:: WARNING: cannot cache unpickable configuration value: 'x'",
		"/venv/jupyter_core/paths.py: DeprecationWarning: Jupyter is migrating its paths to use standard platformdirs",
		"given by the platformdirs library.  To remove this warning and",
		"see the appropriate new directories, set the environment variable",
		"`JUPYTER_PLATFORM_DIRS=1` and then run `jupyter --paths`.",
		"The use of platformdirs will be the default in `jupyter_core` v6",
		"  from jupyter_core.paths import jupyter_data_dir",
		"sphinx/util/docutils.py: RemovedInSphinx90Warning: something",
		"  warnings.warn(",
		"docutils: DeprecationWarning: nodes.reprunicode will be removed",
		"  return nodes.reprunicode(data)",
		"x.py: DeprecationWarning: The `docutils.utils.error_reporting` module is deprecated",
		"  from docutils.utils.error_reporting import",
		"  more",
		"resource_tracker.py: UserWarning: resource_tracker: There appear to be 1 leaked semaphore",
		"  warnings.warn(",
		"WARNING: The the file /tmp/a.png couldn't be copied. Error: [Errno 2]",
		"  details",
	}
	kept, dropped := FilterLines(lines, rules)
	assert.Empty(t, kept)
	assert.Equal(t, len(lines), dropped)
}

func TestCompileRules(t *testing.T) {
	rules, err := CompileRules([]config.WarningRuleConfig{{Pattern: "a+", Skip: 1}, {Pattern: "b", Skip: 0}})
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "a+ (+1)", rules[0].String())

	_, err = CompileRules([]config.WarningRuleConfig{{Pattern: "(", Skip: 0}})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	_, err = CompileRules([]config.WarningRuleConfig{{Pattern: "x", Skip: -1}})
	require.Error(t, err)
}
