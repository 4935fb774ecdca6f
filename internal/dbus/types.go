package dbus

import (
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/alertkit/internal/theme"
)

// Urgency levels from the urgency hint.
const (
	UrgencyLow      = 0
	UrgencyNormal   = 1
	UrgencyCritical = 2
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved by the notification protocol.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// DBusNotification represents an incoming D-Bus Notify call.
// It contains the raw parameters from the org.freedesktop.Notifications.Notify method.
type DBusNotification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

func (n *DBusNotification) stringHint(name string) string {
	if v, ok := n.Hints[name]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// Urgency extracts the urgency hint from the notification.
// Returns UrgencyNormal if not specified.
func (n *DBusNotification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return UrgencyNormal
}

// Category extracts the category hint from the notification.
// Returns empty string if not specified.
func (n *DBusNotification) Category() string {
	return n.stringHint("category")
}

// Transient returns true if the transient hint is set.
func (n *DBusNotification) Transient() bool {
	if v, ok := n.Hints["transient"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// StackTag extracts the stack-tag hint for notification grouping.
// Notifications with the same stack-tag should replace each other.
// This is used by dunstify with the -h string:x-dunst-stack-tag:TAG option.
func (n *DBusNotification) StackTag() string {
	if tag := n.stringHint("x-dunst-stack-tag"); tag != "" {
		return tag
	}
	return n.stringHint("stack-tag")
}

// ForegroundColor extracts the foreground color hint (dunstify -h string:fgcolor:#RRGGBB).
func (n *DBusNotification) ForegroundColor() string {
	return n.stringHint("fgcolor")
}

// BackgroundColor extracts the background color hint (dunstify -h string:bgcolor:#RRGGBB).
func (n *DBusNotification) BackgroundColor() string {
	return n.stringHint("bgcolor")
}

// AlertType maps urgency and category onto an alert type. Critical
// notifications and *.error categories are errors, *.complete categories
// are successes, low urgency and everything else is info.
func (n *DBusNotification) AlertType() theme.Type {
	category := n.Category()
	switch {
	case n.Urgency() == UrgencyCritical, strings.HasSuffix(category, ".error"):
		return theme.Error
	case strings.HasSuffix(category, ".complete"):
		return theme.Success
	case strings.HasSuffix(category, ".warning"):
		return theme.Warning
	default:
		return theme.Info
	}
}

// Text returns the single-line alert text: the summary, followed by the
// body when there is one.
func (n *DBusNotification) Text() string {
	summary := strings.TrimSpace(n.Summary)
	body := strings.Join(strings.Fields(n.Body), " ")
	switch {
	case body == "":
		return summary
	case summary == "":
		return body
	default:
		return summary + ": " + body
	}
}

// Sticky reports whether the notification stays until it is dismissed:
// expire_timeout 0, or -1 on a critical notification.
func (n *DBusNotification) Sticky() bool {
	switch {
	case n.ExpireTimeout == 0:
		return true
	case n.ExpireTimeout < 0:
		return n.Urgency() == UrgencyCritical
	default:
		return false
	}
}

// Duration returns how long a non-sticky alert should stay. Explicit
// timeouts are in milliseconds; anything else gets the server default.
func (n *DBusNotification) Duration(serverDefault time.Duration) time.Duration {
	if n.ExpireTimeout > 0 {
		return time.Duration(n.ExpireTimeout) * time.Millisecond
	}
	return serverDefault
}

// Style returns the per-notification color overrides.
func (n *DBusNotification) Style() theme.Overrides {
	return theme.Overrides{
		Background: n.BackgroundColor(),
		Foreground: n.ForegroundColor(),
	}
}

// ServerCapabilities lists the capabilities advertised by alertkit.
var ServerCapabilities = []string{
	"body", // Support body text
	"x-dunst-stack-tag",
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string // "alertkit"
	Vendor      string // "alertkit"
	Version     string // Build version
	SpecVersion string // "1.2"
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "alertkit",
		Vendor:      "alertkit",
		Version:     "0.0.1", // Will be replaced by build-time version
		SpecVersion: "1.2",
	}
}
