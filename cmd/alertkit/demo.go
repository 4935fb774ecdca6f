package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Launch the interactive alert demo",
	Long: `Launch the interactive demo screen.

Type a message and press enter to show it as an alert. Alerts can be
dismissed early by clicking them.

Key bindings:
  enter       Send the message as an alert
  ctrl+t      Cycle alert type (success, info, warning, error)
  ctrl+n      Cycle anchor
  ctrl+s      Toggle sticky alerts
  ctrl+y      Copy the last alert text to the clipboard
  esc         Dismiss all alerts
  f1          Show help
  ctrl+c      Quit`,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.RunOptions{
		Config:     getConfig(),
		Logger:     logger,
		Title:      "alertkit demo",
		Loader:     newThemeLoader(),
		WatchTheme: getConfig().Theme.Watch,
	})
}
