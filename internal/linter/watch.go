package linter

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/agentic-research/a11yname/internal/ctxlog"
	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-billy/v5/util"
)

// DefaultDebounce is how long Watch waits for more changes before re-linting.
const DefaultDebounce = 200 * time.Millisecond

// Watcher re-lints files as they change on disk.
type Watcher struct {
	Runner *Runner
	// Root is the OS directory Runner.FS is rooted at. Event paths are made
	// relative to it before linting.
	Root     string
	Debounce time.Duration
}

// Watch watches the directories under paths and calls fn with the result of
// re-linting each debounced batch of changed files. It returns when ctx is
// done.
func (w *Watcher) Watch(ctx context.Context, paths []string, fn func(*Result)) error {
	logger := ctxlog.FromContext(ctx)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range paths {
		if err := w.addTree(fw, filepath.Clean(p)); err != nil {
			return err
		}
	}
	logger.Info("Watching for changes.", "dirs", len(fw.WatchList()))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			rel, err := filepath.Rel(w.Root, ev.Name)
			if err != nil {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := w.Runner.FS.Stat(rel); err == nil && info.IsDir() {
					if err := w.addTree(fw, rel); err != nil {
						logger.Warn("Cannot watch new directory.", "dir", rel, "error", err)
					}
					continue
				}
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.Runner.Wants(rel) {
				continue
			}
			pending[rel] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", err)

		case <-timer.C:
			files := slices.Sorted(maps.Keys(pending))
			clear(pending)
			res, err := w.Runner.RunFiles(ctx, files)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("Re-check failed.", "error", err)
				continue
			}
			fn(res)
		}
	}
}

// addTree registers dir and its non-excluded subdirectories with fw.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	info, err := w.Runner.FS.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing path %s: %w", dir, err)
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	return util.Walk(w.Runner.FS, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if p != dir && w.Runner.excluded(info.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(filepath.Join(w.Root, p)); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
