package live

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
	"github.com/vk/mathlab/internal/ctxlog"
)

// DefaultDebounce is the quiet period after the last change before a
// reload is triggered.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls OnChange once per burst of file system changes under its
// directories. New subdirectories are watched as they appear.
type Watcher struct {
	Dirs     []string
	Debounce time.Duration
	OnChange func(ctx context.Context, reason string)
}

// Run watches until ctx is cancelled. Missing directories are skipped.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "watcher")

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.Dirs {
		if err := addTree(fw, dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Watch directory does not exist; skipping.", "path", dir)
				continue
			}
			return err
		}
	}
	logger.Info("Watching content for changes.", "dirs", w.Dirs)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var pending string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod || ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", ev.Name, "error", err)
					}
				}
			}
			logger.Debug("Content changed.", "path", ev.Name, "op", ev.Op.String())
			pending = ev.Name
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timer.C:
			if w.OnChange != nil {
				w.OnChange(ctx, "changed: "+pending)
			}
		}
	}
}

// addTree watches dir and every directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// ignored filters editor swap and backup files.
func ignored(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
}
