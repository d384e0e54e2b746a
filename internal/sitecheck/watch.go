package sitecheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doccheck/internal/logfields"
)

// watchDebounce coalesces bursts of file events into one re-run.
const watchDebounce = 300 * time.Millisecond

// Watch runs check once, then again whenever files under src change, until ctx
// is done. Events under any of the ignored paths (the build directory lives
// inside the source tree for sphinx layouts) never trigger a run.
func Watch(ctx context.Context, src string, ignore []string, check func(context.Context)) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolve source dir: %w", err)
	}
	ignored := make([]string, 0, len(ignore))
	for _, p := range ignore {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			ignored = append(ignored, abs)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	addDirsRecursive(watcher, absSrc, ignored)

	rerun, trigger := setupDebouncer(watchDebounce)
	check(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rerun:
			slog.Info("Source changed, re-running site check", logfields.Path(absSrc))
			check(ctx)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(ev.Name, ignored) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					addDirsRecursive(watcher, ev.Name, ignored)
				}
			}
			slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}
}

// setupDebouncer returns a channel that receives once per quiet period after
// trigger calls stop.
func setupDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	ch := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}
	return ch, trigger
}

func addDirsRecursive(w *fsnotify.Watcher, root string, ignored []string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if underAny(path, ignored) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not trigger a re-run.
func shouldIgnoreEvent(path string, ignored []string) bool {
	if abs, err := filepath.Abs(path); err == nil && underAny(abs, ignored) {
		return true
	}
	base := filepath.Base(path)

	// hidden and editor temp/swap files
	if strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}

func underAny(path string, roots []string) bool {
	for _, r := range roots {
		if path == r || strings.HasPrefix(path, r+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
