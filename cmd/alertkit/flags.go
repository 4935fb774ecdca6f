package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/placement"
)

// alertFlags are the per-command overrides of the configured alert options.
type alertFlags struct {
	anchor        string
	duration      string
	sticky        bool
	margin        int
	widthFraction float64
}

// register adds the alert option flags to cmd.
func (f *alertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.anchor, "anchor", "a", "",
		"Alert anchor (nw, n, ne, w, center, e, sw, s, se; default from config)")
	cmd.Flags().StringVarP(&f.duration, "duration", "d", "",
		"Time before the alert is removed (e.g., 2s, 1500)")
	cmd.Flags().BoolVar(&f.sticky, "sticky", false,
		"Keep the alert until it is dismissed")
	cmd.Flags().IntVar(&f.margin, "margin", 0,
		"Distance from the terminal edge in cells")
	cmd.Flags().Float64Var(&f.widthFraction, "width-fraction", 0,
		"Alert width as a fraction of the terminal width (0, 1]")
}

// apply overrides base with the flags the user set.
func (f *alertFlags) apply(flags *pflag.FlagSet, base alert.Options) (alert.Options, error) {
	opts := base

	if flags.Changed("anchor") {
		anchor, err := placement.ParseAnchor(f.anchor)
		if err != nil {
			return alert.Options{}, err
		}
		opts.Anchor = anchor
	}
	if flags.Changed("duration") {
		var d config.Duration
		if err := d.UnmarshalText([]byte(f.duration)); err != nil {
			return alert.Options{}, fmt.Errorf("%w: %w", alert.ErrInvalidOption, err)
		}
		opts.Duration = d.Duration()
	}
	if flags.Changed("sticky") {
		opts.Sticky = f.sticky
	}
	if flags.Changed("margin") {
		opts.Margin = f.margin
	}
	if flags.Changed("width-fraction") {
		opts.WidthFraction = f.widthFraction
	}

	if err := opts.Validate(); err != nil {
		return alert.Options{}, err
	}
	return opts, nil
}

// describeExpiry renders how long an alert stays for humans.
func describeExpiry(opts alert.Options) string {
	if opts.Sticky {
		return "until dismissed"
	}
	return opts.Duration.String()
}
