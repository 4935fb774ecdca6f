package theme

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Loader resolves themes by name and keeps the active one hot-reloaded.
type Loader struct {
	mu        sync.RWMutex
	logger    *slog.Logger
	themesDir string
	theme     *Theme
	watcher   *Watcher
}

// NewLoader creates a new theme loader reading user themes from themesDir.
// An empty themesDir disables user themes.
func NewLoader(themesDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:    logger,
		themesDir: themesDir,
	}
}

// Load loads a theme by name.
// Theme resolution order:
//  1. User themes directory (~/.config/alertkit/themes/)
//  2. Embedded/bundled themes
//  3. The embedded default theme
//
// A user theme with a bundled name overrides the bundled one.
func (l *Loader) Load(name string) (*Theme, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	if path, ok := l.userThemePath(name); ok {
		t, err := NewTheme(name, path)
		if err == nil {
			l.theme = t
			l.logger.Debug("loaded user theme", "name", name, "path", path)
			return t, nil
		}
		l.logger.Warn("failed to load user theme, trying bundled", "theme", name, "error", err)
	}

	t, found, err := LoadEmbedded(name)
	if err != nil {
		return nil, err
	}
	if !found {
		l.logger.Warn("theme not found, using default", "theme", name)
		t = Default()
	}

	l.theme = t
	l.logger.Debug("loaded bundled theme", "name", t.Name)
	return t, nil
}

// userThemePath finds name with any supported extension in the themes directory.
func (l *Loader) userThemePath(name string) (string, bool) {
	if l.themesDir == "" {
		return "", false
	}
	for _, ext := range themeExtensions {
		path := filepath.Join(l.themesDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Theme returns the currently loaded theme.
func (l *Loader) Theme() *Theme {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.theme
}

// StartHotReload watches the current theme file and calls onChange with the
// reloaded theme. Embedded themes are not watched.
func (l *Loader) StartHotReload(ctx context.Context, onChange func(*Theme)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.theme == nil || l.theme.Path == "" {
		l.logger.Debug("not starting hot-reload for embedded theme")
		return nil
	}

	if l.watcher != nil {
		l.watcher.Stop()
	}

	w, err := NewWatcher(l.theme, l.logger)
	if err != nil {
		return err
	}
	w.SetChangeCallback(func(t *Theme) {
		l.mu.Lock()
		l.theme = t
		l.mu.Unlock()
		l.logger.Info("hot-reloaded theme", "name", t.Name)
		if onChange != nil {
			onChange(t)
		}
	})
	if err := w.Start(ctx); err != nil {
		return err
	}
	l.watcher = w
	return nil
}

// StopHotReload stops watching the theme for changes.
func (l *Loader) StopHotReload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.watcher != nil {
		l.watcher.Stop()
		l.watcher = nil
	}
}

// ListThemes returns bundled and user theme names, with duplicates removed.
func (l *Loader) ListThemes() []string {
	seen := make(map[string]bool)
	var themes []string

	for _, name := range ListEmbeddedThemes() {
		seen[name] = true
		themes = append(themes, name)
	}

	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err != nil {
			l.logger.Debug("failed to read themes directory", "error", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if name, ok := themeName(entry.Name()); ok && !seen[name] {
				seen[name] = true
				themes = append(themes, name)
			}
		}
	}

	sort.Strings(themes)
	return themes
}
