package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/internal/ui/pretty"
	"github.com/yaklabco/leptomcp/pkg/fsutil"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/runner"
)

// watchDebounce coalesces rapid editor events into one re-run.
const watchDebounce = 300 * time.Millisecond

// watchAndRun analyzes once, then re-analyzes whenever a Rust file
// under the watched paths changes. It returns on context cancellation;
// findings never terminate the loop.
func watchAndRun(
	ctx context.Context,
	cmd *cobra.Command,
	lintRunner *runner.Runner,
	runOpts runner.Options,
	catalog *lint.Catalog,
	styles *pretty.Styles,
	flags *analyzeFlags,
) error {
	logger := logging.Default()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	roots := runOpts.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		abs := root
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(runOpts.WorkingDir, root)
		}
		if err := watchRecursive(watcher, abs); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}

	runOnce := func() {
		result, err := lintRunner.Run(ctx, runOpts)
		if err != nil {
			logger.Error("analysis run failed", logging.FieldError, err)
			return
		}
		if err := renderResult(cmd.OutOrStdout(), styles, result, catalog, runOpts.Config, flags); err != nil {
			logger.Error("report failed", logging.FieldError, err)
		}
	}

	runOnce()
	logger.Info("watching for changes", logging.FieldPaths, roots)

	group, ctx := errgroup.WithContext(ctx)
	changed := make(chan struct{}, 1)

	// Event collector: filters noise and folds bursts into one signal.
	group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watchRecursive(watcher, event.Name); err != nil {
							logger.Debug("watch new directory", logging.FieldError, err)
						}
						continue
					}
				}
				if !isWatchRelevant(event) {
					continue
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", logging.FieldError, err)
			}
		}
	})

	// Debouncer: waits for a quiet period after the last change.
	group.Go(func() error {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return ctx.Err()
			case <-changed:
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
					fire = timer.C
				} else {
					timer.Reset(watchDebounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				runOnce()
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// isWatchRelevant reports whether an event should trigger a re-run.
// Only mutations of Rust sources count; sidecar backups are the
// analyzer's own writes.
func isWatchRelevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasSuffix(event.Name, fsutil.BackupSuffix) {
		return false
	}
	return strings.HasSuffix(event.Name, ".rs")
}

// watchRecursive registers a path and, for directories, every
// subdirectory except build output and hidden trees.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if err := watcher.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		return nil
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if path != root && (name == "target" || name == "node_modules" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
