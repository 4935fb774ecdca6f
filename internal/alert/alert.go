package alert

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/textfit"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// State is the lifecycle stage of an alert.
type State int

const (
	StateCreated State = iota
	StatePlaced
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePlaced:
		return "placed"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Alert is a single toast notification. It is one-shot: once destroyed it
// can never be placed again.
type Alert struct {
	mu      sync.Mutex
	id      string
	parent  Parent
	surface Surface
	logger  *slog.Logger

	// Fixed for the life of the alert
	text          string
	typ           theme.Type
	design        theme.Design
	anchor        placement.Anchor
	margin        int
	widthFraction float64
	iconWidth     int

	// Recomputed on every layout pass
	displayText string
	placement   placement.Result

	state     State
	onDestroy []func()
}

// newAlert fits the text and mounts the surface. Nothing is mounted when the
// anchor is invalid.
func newAlert(id string, parent Parent, text string, typ theme.Type, design theme.Design, opts Options, logger *slog.Logger) (*Alert, error) {
	if !opts.Anchor.Valid() {
		return nil, fmt.Errorf("%w %q", placement.ErrInvalidAnchor, string(opts.Anchor))
	}

	a := &Alert{
		id:            id,
		parent:        parent,
		logger:        logger,
		text:          text,
		typ:           typ,
		design:        design,
		anchor:        opts.Anchor,
		margin:        opts.Margin,
		widthFraction: opts.WidthFraction,
	}
	if design.Icon != "" {
		a.iconWidth = parent.IconWidth(design.Icon)
	}

	width, _ := parent.Size()
	a.displayText = a.fit(width)

	a.surface = parent.NewSurface(id, design)
	a.surface.SetText(a.displayText)
	a.state = StateCreated

	a.logger.Debug("alert created",
		"id", id,
		"type", typ,
		"anchor", opts.Anchor,
		"text", a.displayText,
	)
	return a, nil
}

// fit returns the text to show for a parent of the given width.
// The fit budget is the alert width minus padding and the icon.
func (a *Alert) fit(parentWidth int) string {
	res := placement.Result{RelativeWidth: a.widthFraction}
	available := res.Width(parentWidth) - 2*a.design.Padding - a.iconWidth
	return textfit.Fit(a.text, a.parent.Measure, available)
}

// layoutLocked resolves the placement and refits the text against the
// parent's current size. Caller must hold the lock.
func (a *Alert) layoutLocked() error {
	width, height := a.parent.Size()

	res, err := placement.Resolve(a.anchor, a.margin, width, height, a.widthFraction)
	if err != nil {
		return err
	}

	a.placement = res
	a.displayText = a.fit(width)
	a.surface.SetText(a.displayText)
	a.surface.Place(res)
	return nil
}

// Place positions the alert inside its parent.
func (a *Alert) Place() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateDestroyed {
		return ErrDestroyed
	}
	if err := a.layoutLocked(); err != nil {
		return err
	}
	a.state = StatePlaced

	a.logger.Debug("alert placed",
		"id", a.id,
		"x", a.placement.X,
		"y", a.placement.Y,
	)
	return nil
}

// Relayout recomputes the text and position after the parent was resized.
// It always starts from the original text. Destroyed alerts ignore it.
func (a *Alert) Relayout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateDestroyed:
		return nil
	case StateCreated:
		width, _ := a.parent.Size()
		a.displayText = a.fit(width)
		a.surface.SetText(a.displayText)
		return nil
	default:
		return a.layoutLocked()
	}
}

// Destroy removes the alert from its parent. It is safe to call more than
// once; a timer firing after a manual dismissal is a no-op.
func (a *Alert) Destroy() {
	a.mu.Lock()
	if a.state == StateDestroyed {
		a.mu.Unlock()
		return
	}
	a.state = StateDestroyed
	hooks := a.onDestroy
	a.onDestroy = nil
	a.mu.Unlock()

	a.surface.Destroy()
	a.logger.Debug("alert destroyed", "id", a.id)

	for _, fn := range hooks {
		fn()
	}
}

// OnDestroy registers fn to run once the alert is destroyed.
// If the alert is already destroyed fn runs immediately.
func (a *Alert) OnDestroy(fn func()) {
	a.mu.Lock()
	if a.state != StateDestroyed {
		a.onDestroy = append(a.onDestroy, fn)
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	fn()
}

// ID returns the unique identifier of the alert.
func (a *Alert) ID() string {
	return a.id
}

// Type returns the alert category.
func (a *Alert) Type() theme.Type {
	return a.typ
}

// Design returns the resolved design of the alert.
func (a *Alert) Design() theme.Design {
	return a.design
}

// Text returns the original, untruncated message.
func (a *Alert) Text() string {
	return a.text
}

// WidthFraction returns the alert width as a fraction of the parent width.
func (a *Alert) WidthFraction() float64 {
	return a.widthFraction
}

// DisplayText returns the text as currently fitted.
func (a *Alert) DisplayText() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.displayText
}

// Placement returns the most recent placement.
func (a *Alert) Placement() placement.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.placement
}

// State returns the lifecycle stage of the alert.
func (a *Alert) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}
