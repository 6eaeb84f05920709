package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 1500 * time.Millisecond

// Watcher watches a file and hands freshly loaded content to a handler
// when it changes. The loader runs on every change so the handler never
// sees stale data; rapid successive writes are debounced.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(path string) (T, error)
	handler  func(T)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher creates a watcher for the given file. The handler is called
// with the loader's result after each (debounced) change.
func NewWatcher[T any](path string, loader func(string) (T, error), handler func(T), logger *slog.Logger) *Watcher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher[T]{
		path:     path,
		debounce: defaultDebounce,
		loader:   loader,
		handler:  handler,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetDebounce overrides the debounce interval. Call before Start.
func (w *Watcher[T]) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching. The watched file must exist.
func (w *Watcher[T]) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return err
	}

	w.watcher = watcher
	w.logger.Info("Watching file for changes", "path", w.path)
	go w.loop()
	return nil
}

// Stop stops watching and releases the fsnotify handle.
func (w *Watcher[T]) Stop() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher[T]) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Writes are the common case; editors that replace the
			// file show up as creates.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			timerC = nil
			loaded, err := w.loader(w.path)
			if err != nil {
				w.logger.Error("Reload failed, keeping previous state", "path", w.path, "error", err)
				continue
			}
			w.logger.Info("File changed, reloaded", "path", w.path)
			w.handler(loaded)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watch error", "path", w.path, "error", err)
		}
	}
}
