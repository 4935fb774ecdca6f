package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Source streams alert requests into a running TUI until it returns.
// send delivers SendMsg and DismissMsg values to the event loop.
type Source func(ctx context.Context, send func(tea.Msg)) error

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Logger *slog.Logger
	Title  string

	// Theme is used when set, otherwise the Loader's current theme.
	Theme  *theme.Theme
	Loader *theme.Loader
	// WatchTheme hot-reloads the Loader's theme file.
	WatchTheme bool

	// Initial alerts are sent once the terminal size is known.
	Initial []SendMsg
	Source  Source
	// OnClose is called on the event loop whenever an alert leaves the screen.
	OnClose func(key string, reason CloseReason)
	// QuitWhenIdle exits once the source is done and no alert is left.
	QuitWhenIdle bool
	// InputTTY reads keys from the terminal instead of stdin.
	InputTTY bool
}

// Run starts the TUI with the given options and blocks until it exits.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m, err := New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, progOpts...)

	if opts.Loader != nil && opts.WatchTheme {
		err := opts.Loader.StartHotReload(ctx, func(t *theme.Theme) {
			p.Send(ThemeMsg{Theme: t})
		})
		if err != nil {
			logger.Warn("failed to start theme hot-reload", "error", err)
		}
		defer opts.Loader.StopHotReload()
	}

	if opts.Source != nil {
		go func() {
			err := opts.Source(ctx, p.Send)
			p.Send(SourceDoneMsg{Err: err})
		}()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		// Cancelled from outside, e.g. SIGTERM.
		return nil
	}
	return err
}
