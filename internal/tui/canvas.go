package tui

import (
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/textfit"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// iconSeparator sits between a toast's icon and its text.
const iconSeparator = " "

// Canvas is the terminal window alerts are placed in. It implements
// alert.Parent with sizes and widths measured in cells.
type Canvas struct {
	mu       sync.Mutex
	width    int
	height   int
	measure  textfit.Measurer
	surfaces []*toastSurface
}

// NewCanvas creates a canvas that measures text with measure.
// A nil measure uses textfit.Cells.
func NewCanvas(width, height int, measure textfit.Measurer) *Canvas {
	if measure == nil {
		measure = textfit.Cells
	}
	return &Canvas{
		width:   width,
		height:  height,
		measure: measure,
	}
}

// Kind reports the canvas as a top-level window.
func (c *Canvas) Kind() alert.ParentKind {
	return alert.KindWindow
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Resize updates the canvas size. Alerts must be relaid out afterwards.
func (c *Canvas) Resize(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.mu.Unlock()
}

// Measure returns the width of text in cells.
func (c *Canvas) Measure(text string) int {
	return c.measure(text)
}

// IconWidth returns the cells a toast uses for icon and the gap after it.
func (c *Canvas) IconWidth(icon string) int {
	return c.measure(icon + iconSeparator)
}

// NewSurface mounts a new, not yet placed, toast on the canvas.
func (c *Canvas) NewSurface(id string, design theme.Design) alert.Surface {
	s := &toastSurface{canvas: c, id: id, design: design}
	c.mu.Lock()
	c.surfaces = append(c.surfaces, s)
	c.mu.Unlock()
	return s
}

// Len returns the number of mounted toasts.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.surfaces)
}

// SurfaceAt returns the ID of the topmost placed toast covering the cell at
// (x, y).
func (c *Canvas) SurfaceAt(x, y int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.surfaces) - 1; i >= 0; i-- {
		s := c.surfaces[i]
		if !s.placed {
			continue
		}
		left, top, w, h := s.bounds(c.width, c.height)
		if x >= left && x < left+w && y >= top && y < top+h {
			return s.id, true
		}
	}
	return "", false
}

// Render composites every placed toast over base, oldest first.
func (c *Canvas) Render(base string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := base
	for _, s := range c.surfaces {
		if !s.placed {
			continue
		}
		box := s.render(c.width)
		left, top, _, _ := s.bounds(c.width, c.height)
		out = Overlay(out, box, left, top)
	}
	return out
}

func (c *Canvas) remove(s *toastSurface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surfaces = slices.DeleteFunc(c.surfaces, func(other *toastSurface) bool {
		return other == s
	})
}

// toastSurface is a one-line toast drawn with lipgloss.
type toastSurface struct {
	canvas *Canvas
	id     string
	design theme.Design

	// Guarded by canvas.mu
	text      string
	placement placement.Result
	placed    bool
}

func (s *toastSurface) SetText(text string) {
	s.canvas.mu.Lock()
	s.text = text
	s.canvas.mu.Unlock()
}

func (s *toastSurface) Place(p placement.Result) {
	s.canvas.mu.Lock()
	s.placement = p
	s.placed = true
	s.canvas.mu.Unlock()
}

func (s *toastSurface) Destroy() {
	s.canvas.remove(s)
}

// bounds returns the toast box clamped into the canvas.
func (s *toastSurface) bounds(canvasWidth, canvasHeight int) (left, top, width, height int) {
	width = min(s.placement.Width(canvasWidth), canvasWidth)
	height = 1
	left, top = s.placement.Origin(width, height)
	left = max(0, min(left, canvasWidth-width))
	top = max(0, min(top, canvasHeight-height))
	return left, top, width, height
}

// render draws the toast at its current width. Caller must hold canvas.mu.
func (s *toastSurface) render(canvasWidth int) string {
	width := min(s.placement.Width(canvasWidth), canvasWidth)
	if width <= 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, s.design.Padding).
		Width(width).
		Bold(s.design.Bold)
	if s.design.Background != "" {
		style = style.Background(lipgloss.Color(s.design.Background))
	}
	if s.design.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.design.Foreground))
	}

	content := s.text
	if s.design.Icon != "" {
		content = s.design.Icon + iconSeparator + content
	}
	// The bare ellipsis may be wider than a very narrow toast.
	content = ansi.Truncate(content, max(0, width-2*s.design.Padding), "")

	return style.Render(content)
}
