package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeCallback is called with the store file name after its on-disk
// content actually changed.
type ChangeCallback func(name string)

// Watch starts an fsnotify watcher on the data directory and reports
// external edits to the three store files until ctx is cancelled.
//
// Users are expected to edit foods.csv or log.csv in a spreadsheet while the
// server runs, so change events are debounced and filtered by checksum: an
// event only reaches cb when the file's bytes differ from what was last
// observed. The engine's own atomic writes also land here; callers
// de-duplicate by reloading idempotently.
func Watch(ctx context.Context, fs *FS, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(fs.Root()); err != nil {
		return err
	}

	watched := []string{FoodsFile, LogFile, GoalsFile}
	seen := make(map[string]string, len(watched))
	for _, name := range watched {
		seen[name] = fs.Checksum(name)
	}

	logger.Info("watcher: started", slog.String("root", fs.Root()))

	// Debounce: spreadsheet apps often emit several events per save.
	pending := make(map[string]struct{})
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	schedule := func(name string) {
		pending[name] = struct{}{}
		if flushTimer == nil {
			flushTimer = time.NewTimer(200 * time.Millisecond)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-flushCh:
			for name := range pending {
				delete(pending, name)
				cs := fs.Checksum(name)
				if cs == seen[name] {
					continue
				}
				seen[name] = cs
				logger.Debug("watcher: store changed", slog.String("file", name))
				if cb != nil {
					cb(name)
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			base := filepath.Base(ev.Name)
			if strings.HasPrefix(base, ".macrolog-tmp-") {
				continue
			}
			if _, ok := seen[base]; !ok {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				schedule(base)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
