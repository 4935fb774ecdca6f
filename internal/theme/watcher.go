package theme

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a theme file for changes and triggers hot-reload.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	theme   *Theme

	onChangeCallback func(*Theme)

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewWatcher creates a new theme watcher.
func NewWatcher(theme *Theme, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		theme:   theme,
	}, nil
}

// SetChangeCallback sets the callback to invoke when the theme changes.
func (w *Watcher) SetChangeCallback(callback func(*Theme)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChangeCallback = callback
}

// Start begins watching the theme file for changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	if w.theme.Path == "" {
		w.logger.Debug("not watching embedded theme")
		return nil
	}

	// Watch the directory: editors replace files instead of writing in place.
	if err := w.watcher.Add(filepath.Dir(w.theme.Path)); err != nil {
		return err
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.watchLoop(ctx, filepath.Base(w.theme.Path))

	w.logger.Debug("theme watcher started", "path", w.theme.Path)
	return nil
}

// Stop stops watching the theme file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh
	_ = w.watcher.Close()
	w.logger.Debug("theme watcher stopped")
}

// IsRunning returns whether the watcher is currently running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop(ctx context.Context, filename string) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Chmod) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("theme watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	w.mu.Lock()
	theme := w.theme
	callback := w.onChangeCallback
	w.mu.Unlock()

	fresh, changed, err := theme.Reload()
	if err != nil {
		w.logger.Warn("failed to reload theme", "path", theme.Path, "error", err)
		return
	}
	if !changed {
		return
	}

	w.mu.Lock()
	w.theme = fresh
	w.mu.Unlock()

	if callback != nil {
		callback(fresh)
	}
}
