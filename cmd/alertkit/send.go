package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/theme"
	"github.com/jmylchreest/alertkit/internal/tui"
)

var sendOpts struct {
	alertType string
	alert     alertFlags
}

var sendCmd = &cobra.Command{
	Use:   "send [flags] TEXT...",
	Short: "Show a single alert and exit when it is gone",
	Long: `Show one alert in the terminal and exit once it expires or is clicked.

The arguments are joined with spaces to form the alert text. Options not
given on the command line come from the config file.

Examples:
  # Show an info alert in the top-left corner
  alertkit send "Build finished"

  # Show an error bottom-right for five seconds
  alertkit send --type error --anchor se --duration 5s "Deploy failed"

  # Keep the alert until it is clicked
  alertkit send --sticky "Read me"`,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendOpts.alertType, "type", "t", "info",
		"Alert type (success, info, warning, error)")
	sendOpts.alert.register(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	typ, err := theme.ParseType(sendOpts.alertType)
	if err != nil {
		return err
	}

	opts, err := sendOpts.alert.apply(cmd.Flags(), getConfig().Options())
	if err != nil {
		return err
	}

	logger.Debug("sending alert", "type", typ, "anchor", opts.Anchor, "expires", describeExpiry(opts))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, tui.RunOptions{
		Config: getConfig(),
		Logger: logger,
		Loader: newThemeLoader(),
		Initial: []tui.SendMsg{{
			Text:    strings.Join(args, " "),
			Type:    typ,
			Options: opts,
		}},
		QuitWhenIdle: true,
	})
}
