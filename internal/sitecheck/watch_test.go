package sitecheck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	build, err := filepath.Abs(filepath.Join("doc", "_build"))
	require.NoError(t, err)
	ignored := []string{build}

	assert.True(t, shouldIgnoreEvent(filepath.Join("doc", "_build", "index.html"), ignored))
	assert.True(t, shouldIgnoreEvent(filepath.Join("doc", ".index.rst.swp"), ignored))
	assert.True(t, shouldIgnoreEvent(filepath.Join("doc", "index.rst~"), ignored))
	assert.True(t, shouldIgnoreEvent(filepath.Join("doc", "#index.rst#"), ignored))
	assert.False(t, shouldIgnoreEvent(filepath.Join("doc", "index.rst"), ignored))
	assert.False(t, shouldIgnoreEvent(filepath.Join("doc", "_build_notes.rst"), ignored))
}

func TestDebouncerCoalesces(t *testing.T) {
	ch, trigger := setupDebouncer(20 * time.Millisecond)
	for range 5 {
		trigger()
	}
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-ch:
		t.Fatal("debouncer fired twice for one burst")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchRunsOnceAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runs := 0
	err := Watch(ctx, t.TempDir(), nil, func(context.Context) { runs++ })
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
}

func TestWatchIgnoresFilesWrittenByTheCheck(t *testing.T) {
	src := t.TempDir()
	raw := filepath.Join(src, "sphinx_build_stderr.txt")
	filtered := filepath.Join(src, "sphinx_build_stderr_filtered.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	runs := 0
	err := Watch(ctx, src, []string{filepath.Join(src, "_build"), raw, filtered}, func(context.Context) {
		runs++
		require.NoError(t, os.WriteFile(raw, []byte(fmt.Sprintf("WARNING: run %d", runs)), 0o600))
		require.NoError(t, os.WriteFile(filtered, []byte("WARNING"), 0o600))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, runs, "writing debug output must not re-trigger the check")
}

func TestShouldIgnoreEventExactFile(t *testing.T) {
	raw, err := filepath.Abs("sphinx_build_stderr.txt")
	require.NoError(t, err)

	assert.True(t, shouldIgnoreEvent("sphinx_build_stderr.txt", []string{raw}))
	assert.False(t, shouldIgnoreEvent("sphinx_build_stderr.txt.bak", []string{raw}))
}
