package tui

import (
	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// CloseReason is why an alert left the screen.
type CloseReason int

const (
	// CloseExpired means the alert's duration elapsed.
	CloseExpired CloseReason = iota + 1
	// CloseDismissed means the user clicked it away.
	CloseDismissed
	// CloseClosed means its source withdrew it with a DismissMsg.
	CloseClosed
)

func (r CloseReason) String() string {
	switch r {
	case CloseExpired:
		return "expired"
	case CloseDismissed:
		return "dismissed"
	case CloseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SendMsg asks the host to show an alert. Key identifies the alert to its
// source; an alert with the same key is replaced. An empty Key uses the
// alert ID.
type SendMsg struct {
	Key     string
	Text    string
	Type    theme.Type
	Options alert.Options
}

// DismissMsg withdraws the alert sent with Key.
type DismissMsg struct {
	Key string
}

// ThemeMsg switches the theme for subsequent alerts.
type ThemeMsg struct {
	Theme *theme.Theme
}

// SourceDoneMsg reports that the alert source has no more requests.
type SourceDoneMsg struct {
	Err error
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type tickMsg struct{}

type copyResultMsg struct {
	err error
}
