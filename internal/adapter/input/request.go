package input

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Request is one alert request. Unset fields take the caller's defaults.
type Request struct {
	// Key identifies the alert for later replacement or dismissal.
	Key  string `json:"key,omitempty"`
	Text string `json:"text"`
	Type string `json:"type,omitempty"`

	Anchor        string   `json:"anchor,omitempty"`
	Duration      string   `json:"duration,omitempty"` // "2s", "500ms" or milliseconds
	Sticky        *bool    `json:"sticky,omitempty"`
	Margin        *int     `json:"margin,omitempty"`
	WidthFraction *float64 `json:"width_fraction,omitempty"`

	Background string  `json:"background,omitempty"`
	Foreground string  `json:"foreground,omitempty"`
	Icon       *string `json:"icon,omitempty"`

	// Dismiss withdraws the alert sent earlier with Key.
	Dismiss bool `json:"dismiss,omitempty"`
}

// AlertType returns the requested type, info when unset.
func (r Request) AlertType() (theme.Type, error) {
	if r.Type == "" {
		return theme.Info, nil
	}
	return theme.ParseType(r.Type)
}

// Options applies the request over defaults. Range checks are left to
// alert.Options.Validate.
func (r Request) Options(defaults alert.Options) (alert.Options, error) {
	opts := defaults

	if r.Anchor != "" {
		anchor, err := placement.ParseAnchor(r.Anchor)
		if err != nil {
			return alert.Options{}, err
		}
		opts.Anchor = anchor
	}

	if r.Duration != "" {
		var d config.Duration
		if err := d.UnmarshalText([]byte(strings.TrimSpace(r.Duration))); err != nil {
			return alert.Options{}, fmt.Errorf("%w: %w", alert.ErrInvalidOption, err)
		}
		opts.Duration = d.Duration()
	}

	if r.Sticky != nil {
		opts.Sticky = *r.Sticky
	}
	if r.Margin != nil {
		opts.Margin = *r.Margin
	}
	if r.WidthFraction != nil {
		opts.WidthFraction = *r.WidthFraction
	}

	opts.Style = theme.Overrides{
		Background: r.Background,
		Foreground: r.Foreground,
		Icon:       r.Icon,
	}
	return opts, nil
}
