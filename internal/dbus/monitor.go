package dbus

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"strconv"

	"github.com/godbus/dbus/v5"
)

// Monitor passively observes D-Bus notification traffic without claiming ownership.
// This allows showing alerts alongside another notification daemon (like dunst).
type Monitor struct {
	conn   *dbus.Conn
	logger *slog.Logger

	onNotify NotificationHandler
	done     chan struct{}
}

// NewMonitor creates a new notification monitor.
func NewMonitor(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		logger: logger,
		done:   make(chan struct{}),
	}
}

// SetNotifyHandler sets the callback for received notifications.
func (m *Monitor) SetNotifyHandler(handler NotificationHandler) {
	m.onNotify = handler
}

// Start begins monitoring D-Bus for notification traffic.
// A monitoring connection cannot be shared, so it opens a private one.
func (m *Monitor) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	rules := []string{
		"type='method_call',interface='" + DBusInterface + "',member='Notify'",
	}

	err = conn.BusObject().Call(
		"org.freedesktop.DBus.Monitoring.BecomeMonitor",
		0,
		rules,
		uint32(0),
	).Err
	if err != nil {
		// Older D-Bus versions only support eavesdropping match rules
		m.logger.Warn("BecomeMonitor not available, trying AddMatch", "error", err)
		return m.startWithAddMatch()
	}

	m.logger.Info("started D-Bus monitor using BecomeMonitor")
	go m.processMessages()
	return nil
}

// startWithAddMatch uses the older AddMatch API for eavesdropping.
func (m *Monitor) startWithAddMatch() error {
	matchRule := "type='method_call',interface='" + DBusInterface + "',member='Notify',eavesdrop='true'"

	err := m.conn.BusObject().Call(
		"org.freedesktop.DBus.AddMatch",
		0,
		matchRule,
	).Err
	if err != nil {
		return fmt.Errorf("failed to add match rule (eavesdrop may require permissions): %w", err)
	}

	m.logger.Info("started D-Bus monitor using AddMatch with eavesdrop")
	go m.processMessages()
	return nil
}

// Done is closed when the monitor stops receiving messages.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// processMessages reads and processes D-Bus messages.
func (m *Monitor) processMessages() {
	defer close(m.done)

	ch := make(chan *dbus.Message, 100)
	m.conn.Eavesdrop(ch)

	for msg := range ch {
		if msg.Type != dbus.TypeMethodCall {
			continue
		}
		if msg.Headers[dbus.FieldInterface].Value() != DBusInterface {
			continue
		}
		if msg.Headers[dbus.FieldMember].Value() != "Notify" {
			continue
		}

		m.handleNotify(msg)
	}
}

// handleNotify parses a Notify method call and invokes the handler.
func (m *Monitor) handleNotify(msg *dbus.Message) {
	notification, err := parseNotify(msg.Body)
	if err != nil {
		m.logger.Warn("malformed Notify call", "error", err)
		return
	}

	// The daemon's reply with the real ID is not observed
	id := monitorID(notification)

	m.logger.Debug("captured notification",
		"app", notification.AppName,
		"summary", notification.Summary,
		"id", id)

	if m.onNotify != nil {
		m.onNotify(notification, id)
	}
}

// parseNotify decodes the arguments of
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout).
func parseNotify(body []any) (*DBusNotification, error) {
	if len(body) < 8 {
		return nil, fmt.Errorf("expected 8 arguments, got %d", len(body))
	}

	n := &DBusNotification{}
	var ok bool
	if n.AppName, ok = body[0].(string); !ok {
		return nil, fmt.Errorf("invalid app_name type %T", body[0])
	}
	if n.ReplacesID, ok = body[1].(uint32); !ok {
		return nil, fmt.Errorf("invalid replaces_id type %T", body[1])
	}
	if n.AppIcon, ok = body[2].(string); !ok {
		return nil, fmt.Errorf("invalid app_icon type %T", body[2])
	}
	if n.Summary, ok = body[3].(string); !ok {
		return nil, fmt.Errorf("invalid summary type %T", body[3])
	}
	if n.Body, ok = body[4].(string); !ok {
		return nil, fmt.Errorf("invalid body type %T", body[4])
	}

	if actions, ok := body[5].([]string); ok {
		n.Actions = actions
	}
	if hints, ok := body[6].(map[string]dbus.Variant); ok {
		n.Hints = hints
	}
	if timeout, ok := body[7].(int32); ok {
		n.ExpireTimeout = timeout
	}
	return n, nil
}

// monitorID derives a stable pseudo-ID for an observed notification.
// Replacements keep the ID they replace; stack tags share one ID.
func monitorID(n *DBusNotification) uint32 {
	if n.ReplacesID != 0 {
		return n.ReplacesID
	}

	h := fnv.New32a()
	if tag := n.StackTag(); tag != "" {
		h.Write([]byte("tag\x00" + n.AppName + "\x00" + tag))
		return h.Sum32()
	}
	h.Write([]byte(n.AppName + "\x00" + n.Summary + "\x00" + n.Body + "\x00" + strconv.Itoa(int(n.ExpireTimeout))))
	return h.Sum32()
}

// Stop stops the monitor.
func (m *Monitor) Stop() error {
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
