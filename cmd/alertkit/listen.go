package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/dbus"
	"github.com/jmylchreest/alertkit/internal/tui"
)

var listenOpts struct {
	monitor bool
	alert   alertFlags
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Show desktop notifications as terminal alerts",
	Long: `Receive freedesktop notifications over D-Bus and show them as alerts.

By default alertkit claims org.freedesktop.Notifications on the session bus,
so it cannot run alongside another notification daemon. Closing an alert
(by timeout, click or CloseNotification) emits NotificationClosed with the
matching reason.

With --monitor, alertkit passively observes notification traffic instead and
mirrors it, leaving the running daemon in charge.

Notification mapping:
  urgency critical, category *.error   error
  category *.warning                   warning
  category *.complete                  success
  anything else                        info`,
	Annotations: map[string]string{annotationTUI: "true"},
	RunE:        runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().BoolVar(&listenOpts.monitor, "monitor", false,
		"Observe notifications without claiming the bus name")
	listenOpts.alert.register(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	defaults, err := listenOpts.alert.apply(cmd.Flags(), getConfig().Options())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOpts := tui.RunOptions{
		Config:     getConfig(),
		Logger:     logger,
		Loader:     newThemeLoader(),
		WatchTheme: getConfig().Theme.Watch,
	}

	if listenOpts.monitor {
		monitor := dbus.NewMonitor(logger)
		runOpts.Title = "alertkit listen (monitor)"
		runOpts.Source = monitorSource(monitor, defaults)
		return tui.Run(ctx, runOpts)
	}

	server := dbus.NewNotificationServer(logger)
	info := dbus.DefaultServerInfo()
	info.Version = version
	server.SetServerInfo(info)

	runOpts.Title = "alertkit listen"
	runOpts.Source = serverSource(server, defaults)
	runOpts.OnClose = func(key string, reason tui.CloseReason) {
		id, ok := notificationID(key)
		if !ok {
			return
		}
		if err := server.CloseWithReason(id, dbusCloseReason(reason)); err != nil {
			logger.Warn("failed to report closed notification", "id", id, "error", err)
		}
	}
	return tui.Run(ctx, runOpts)
}

// serverSource owns the bus name while the TUI runs.
func serverSource(server *dbus.NotificationServer, defaults alert.Options) tui.Source {
	return func(ctx context.Context, send func(tea.Msg)) error {
		server.SetNotifyHandler(func(n *dbus.DBusNotification, id uint32) {
			send(notificationMsg(n, id, defaults))
		})
		server.SetCloseHandler(func(id uint32) {
			send(tui.DismissMsg{Key: notificationKey(id)})
		})

		if err := server.Start(); err != nil {
			if errors.Is(err, dbus.ErrNameTaken) {
				return fmt.Errorf("%w (stop the running notification daemon or use --monitor)", err)
			}
			return err
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("error stopping D-Bus server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	}
}

// monitorSource mirrors notifications seen on the bus.
func monitorSource(monitor *dbus.Monitor, defaults alert.Options) tui.Source {
	return func(ctx context.Context, send func(tea.Msg)) error {
		monitor.SetNotifyHandler(func(n *dbus.DBusNotification, id uint32) {
			send(notificationMsg(n, id, defaults))
		})

		if err := monitor.Start(); err != nil {
			return err
		}
		defer func() {
			if err := monitor.Stop(); err != nil {
				logger.Warn("error stopping D-Bus monitor", "error", err)
			}
		}()

		select {
		case <-ctx.Done():
			return nil
		case <-monitor.Done():
			return errors.New("D-Bus monitor connection closed")
		}
	}
}

// notificationMsg converts a notification into an alert request keyed by its ID.
func notificationMsg(n *dbus.DBusNotification, id uint32, defaults alert.Options) tui.SendMsg {
	opts := defaults
	opts.Duration = n.Duration(defaults.Duration)
	opts.Sticky = n.Sticky()
	opts.Style = n.Style()

	return tui.SendMsg{
		Key:     notificationKey(id),
		Text:    n.Text(),
		Type:    n.AlertType(),
		Options: opts,
	}
}

func notificationKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

func notificationID(key string) (uint32, bool) {
	id, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// dbusCloseReason maps a host close reason to the notification protocol.
func dbusCloseReason(reason tui.CloseReason) dbus.CloseReason {
	switch reason {
	case tui.CloseExpired:
		return dbus.CloseReasonExpired
	case tui.CloseDismissed:
		return dbus.CloseReasonDismissed
	case tui.CloseClosed:
		return dbus.CloseReasonClosed
	default:
		return dbus.CloseReasonUndefined
	}
}
