package alert

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Default send options.
const (
	DefaultAnchor        = placement.NW
	DefaultDuration      = 2 * time.Second
	DefaultMargin        = 15
	DefaultWidthFraction = 0.33
)

// Errors returned by Send.
var (
	ErrInvalidOption     = errors.New("invalid alert option")
	ErrUnsupportedParent = errors.New("unsupported parent type")
	ErrDestroyed         = errors.New("alert destroyed")
)

// Options controls where and for how long an alert is shown.
type Options struct {
	Anchor placement.Anchor
	// Duration before the alert destroys itself. Zero destroys it on the
	// next scheduler turn.
	Duration      time.Duration
	Margin        int
	WidthFraction float64
	// Sticky alerts ignore Duration and stay until destroyed by the host.
	Sticky bool
	// Style overrides the theme design of the alert type.
	Style theme.Overrides
}

// DefaultOptions returns the options used when the caller sets none.
func DefaultOptions() Options {
	return Options{
		Anchor:        DefaultAnchor,
		Duration:      DefaultDuration,
		Margin:        DefaultMargin,
		WidthFraction: DefaultWidthFraction,
	}
}

// Validate checks duration, margin and width fraction ranges.
// The anchor is checked by the placement resolver.
func (o Options) Validate() error {
	if o.Duration < 0 {
		return fmt.Errorf("%w: negative duration %s, allowed values are greater or equal than 0", ErrInvalidOption, o.Duration)
	}
	if o.Margin < 0 {
		return fmt.Errorf("%w: negative margin %d, allowed values are greater or equal than 0", ErrInvalidOption, o.Margin)
	}
	if o.WidthFraction <= 0 || o.WidthFraction > 1 {
		return fmt.Errorf("%w: width fraction %v out of bounds, allowed values are between 0 (exclusive) and 1 (inclusive)", ErrInvalidOption, o.WidthFraction)
	}
	return nil
}
