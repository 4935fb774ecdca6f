package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/adapter/input"
	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/tui"
)

var pipeOpts struct {
	source string
	stay   bool
	alert  alertFlags
}

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Show alerts read line by line from stdin",
	Long: `Read alert requests from stdin and show each one as it arrives.

Each line is either plain text (an info alert with the default options) or a
JSON object:

  {"key": "build", "text": "Compiling...", "type": "info", "sticky": true}
  {"key": "build", "text": "Build finished", "type": "success", "anchor": "se"}
  {"key": "build", "dismiss": true}

An alert sent with the key of a visible alert replaces it. Keys are read
from the terminal, so alerts can still be clicked or dismissed with esc.
alertkit exits once stdin is closed and no alert is left, unless --stay is
given.

Examples:
  tail -f build.log | alertkit pipe --anchor s
  my-script --events | alertkit pipe`,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runPipe,
}

func init() {
	rootCmd.AddCommand(pipeCmd)

	pipeCmd.Flags().StringVar(&pipeOpts.source, "source", "stdin",
		"Request source (stdin)")
	pipeCmd.Flags().BoolVar(&pipeOpts.stay, "stay", false,
		"Keep running after the input is exhausted")
	pipeOpts.alert.register(pipeCmd)
}

func runPipe(cmd *cobra.Command, args []string) error {
	adapter, err := input.NewAdapter(pipeOpts.source)
	if err != nil {
		return err
	}

	defaults, err := pipeOpts.alert.apply(cmd.Flags(), getConfig().Options())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.RunOptions{
		Config:       getConfig(),
		Logger:       logger,
		Title:        "alertkit pipe (" + adapter.Name() + ")",
		Loader:       newThemeLoader(),
		WatchTheme:   getConfig().Theme.Watch,
		Source:       requestSource(adapter, defaults),
		QuitWhenIdle: !pipeOpts.stay,
		InputTTY:     true,
	})
}

// requestSource turns adapter requests into TUI messages.
// Requests with invalid options are logged and skipped.
func requestSource(adapter input.Adapter, defaults alert.Options) tui.Source {
	return func(ctx context.Context, send func(tea.Msg)) error {
		err := adapter.Read(ctx, func(req input.Request) error {
			msg, err := requestMsg(req, defaults)
			if err != nil {
				logger.Warn("skipping alert request", "key", req.Key, "error", err)
				return nil
			}
			send(msg)
			return nil
		})
		if err != nil {
			return fmt.Errorf("%s: %w", adapter.Name(), err)
		}
		return nil
	}
}

// requestMsg converts one request into a SendMsg or DismissMsg.
func requestMsg(req input.Request, defaults alert.Options) (tea.Msg, error) {
	if req.Dismiss {
		return tui.DismissMsg{Key: req.Key}, nil
	}

	typ, err := req.AlertType()
	if err != nil {
		return nil, err
	}
	opts, err := req.Options(defaults)
	if err != nil {
		return nil, err
	}

	return tui.SendMsg{
		Key:     req.Key,
		Text:    req.Text,
		Type:    typ,
		Options: opts,
	}, nil
}
