package alert

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/alertkit/internal/theme"
)

// Generator sends alerts to a single parent container.
type Generator struct {
	parent    Parent
	scheduler Scheduler
	logger    *slog.Logger

	mu    sync.RWMutex
	theme *theme.Theme
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTheme sets the theme alerts take their design from.
func WithTheme(t *theme.Theme) GeneratorOption {
	return func(g *Generator) {
		if t != nil {
			g.theme = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator for parent. The scheduler runs the
// auto-destroy callbacks; nil uses TimerScheduler.
func NewGenerator(parent Parent, scheduler Scheduler, opts ...GeneratorOption) (*Generator, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrUnsupportedParent)
	}
	if !parent.Kind().Supported() {
		return nil, fmt.Errorf("%w: %s, supported types are: %v", ErrUnsupportedParent, parent.Kind(), SupportedKinds)
	}
	if scheduler == nil {
		scheduler = TimerScheduler
	}

	g := &Generator{
		parent:    parent,
		scheduler: scheduler,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.theme == nil {
		g.theme = theme.Default()
	}
	return g, nil
}

// Parent returns the container alerts are sent to.
func (g *Generator) Parent() Parent {
	return g.parent
}

// SetTheme switches the theme for alerts sent from now on.
// Alerts already on screen keep their design.
func (g *Generator) SetTheme(t *theme.Theme) {
	if t == nil {
		return
	}
	g.mu.Lock()
	g.theme = t
	g.mu.Unlock()
}

// Theme returns the active theme.
func (g *Generator) Theme() *theme.Theme {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.theme
}

// Send creates an alert, places it and schedules its destruction after
// opts.Duration unless it is sticky. Options are validated before anything
// is mounted.
func (g *Generator) Send(text string, typ theme.Type, opts Options) (*Alert, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate alert id: %w", err)
	}

	design := g.Theme().Design(typ).Merge(opts.Style)

	a, err := newAlert(id.String(), g.parent, text, typ, design, opts, g.logger)
	if err != nil {
		return nil, err
	}

	if err := a.Place(); err != nil {
		a.Destroy()
		return nil, err
	}

	if !opts.Sticky {
		g.scheduler.Schedule(opts.Duration, a.Destroy)
	}

	g.logger.Debug("alert sent",
		"id", a.ID(),
		"type", typ,
		"duration", opts.Duration,
		"sticky", opts.Sticky,
	)
	return a, nil
}
