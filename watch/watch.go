// Package watch reruns a job whenever a file changes.
//
// Uses fsnotify on the file's directory, so editors that replace the file
// instead of writing it in place are still seen. Falls back to polling the
// modification time when no watcher can be created.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of events from a single save.
const DefaultDebounce = 250 * time.Millisecond

// DefaultPollInterval is used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// Func is the job to rerun. Its error is logged, not fatal.
type Func func(ctx context.Context) error

// Watcher reruns a Func when a file changes.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	logger       *slog.Logger
}

// New returns a watcher for path.
func New(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		path:         path,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		logger:       logger,
	}
}

// WithDebounce sets the quiet period before a rerun.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithPollInterval sets the polling period of the fallback.
func (w *Watcher) WithPollInterval(d time.Duration) *Watcher {
	w.pollInterval = d
	return w
}

// Run calls fn once, then again after every change to the file, until ctx
// is done. Runs never overlap.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	w.call(ctx, fn)

	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		err = watcher.Add(filepath.Dir(w.path))
		if err != nil {
			watcher.Close()
		}
	}
	if err != nil {
		w.logger.Warn("file watcher unavailable, polling instead",
			slog.String("path", w.path),
			slog.Duration("interval", w.pollInterval),
			slog.Any("error", err))
		return w.poll(ctx, fn)
	}
	defer watcher.Close()
	return w.watch(ctx, fn, watcher)
}

func (w *Watcher) call(ctx context.Context, fn Func) {
	if err := fn(ctx); err != nil && ctx.Err() == nil {
		w.logger.Error("run failed", slog.String("path", w.path), slog.Any("error", err))
	}
}

func (w *Watcher) watch(ctx context.Context, fn Func, watcher *fsnotify.Watcher) error {
	baseName := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("input changed", slog.String("event", event.Op.String()))
			timer.Reset(w.debounce)

		case <-timer.C:
			w.call(ctx, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) poll(ctx context.Context, fn Func) error {
	last := w.modTime()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mt := w.modTime()
			if mt.Equal(last) {
				continue
			}
			last = mt
			w.call(ctx, fn)
		}
	}
}

func (w *Watcher) modTime() time.Time {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
