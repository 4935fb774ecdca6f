// Package tui provides the BubbleTea-based terminal host for alerts.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/textfit"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	logger *slog.Logger
	title  string

	// Alert host
	canvas    *Canvas
	generator *alert.Generator
	scheduler *cmdScheduler

	// Components
	input textinput.Model
	help  help.Model
	keys  KeyMap

	// Options for alerts sent from the input line
	typ  theme.Type
	opts alert.Options

	// State
	entries      map[string]*entry
	pending      []SendMsg
	onClose      func(key string, reason CloseReason)
	quitWhenIdle bool
	sourceDone   bool
	lastText     string
	lastSent     time.Time
	width        int
	height       int
	ready        bool

	// Status message
	statusMsg string
	statusErr bool
}

// entry tracks an alert on screen under the key its source knows it by.
type entry struct {
	key    string
	alert  *alert.Alert
	reason CloseReason
	// silent entries were replaced and report no close reason.
	silent bool
}

// New creates a new TUI model.
func New(opts RunOptions) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	th := opts.Theme
	if th == nil && opts.Loader != nil {
		th = opts.Loader.Theme()
	}

	canvas := NewCanvas(0, 0, textfit.MeasurerFor(cfg.Measure.Mode))
	scheduler := &cmdScheduler{}
	gen, err := alert.NewGenerator(canvas, scheduler,
		alert.WithTheme(th),
		alert.WithLogger(logger),
	)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.Placeholder = "Type a message and press enter..."
	input.CharLimit = 500
	input.Focus()

	title := opts.Title
	if title == "" {
		title = "alertkit"
	}

	return Model{
		cfg:          cfg,
		logger:       logger,
		title:        title,
		canvas:       canvas,
		generator:    gen,
		scheduler:    scheduler,
		input:        input,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		typ:          theme.Info,
		opts:         cfg.Options(),
		entries:      make(map[string]*entry),
		pending:      append([]SendMsg(nil), opts.Initial...),
		onClose:      opts.OnClose,
		quitWhenIdle: opts.QuitWhenIdle,
		sourceDone:   opts.Source == nil,
	}, nil
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)

	cmds := []tea.Cmd{cmd, m.scheduler.drain()}
	if m.idle() {
		m.logger.Debug("no alerts left, quitting")
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height)

	case SendMsg:
		if !m.ready {
			m.pending = append(m.pending, msg)
			return m, nil
		}
		return m.send(msg)

	case DismissMsg:
		if e, ok := m.entries[msg.Key]; ok {
			e.reason = CloseClosed
			e.alert.Destroy()
		}
		return m, nil

	case ThemeMsg:
		m.generator.SetTheme(msg.Theme)
		return m, statusCmd("Theme reloaded", false)

	case SourceDoneMsg:
		m.sourceDone = true
		if msg.Err != nil {
			m.logger.Warn("alert source failed", "error", msg.Err)
			return m, statusCmd("Source failed: "+msg.Err.Error(), true)
		}
		return m, nil

	case expireMsg:
		msg.fn()
		return m, nil

	case tickMsg:
		return m, tick()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, statusCmd("Copy failed: "+msg.err.Error(), true)
		}
		return m, statusCmd("Copied to clipboard", false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// idle reports whether the model should quit because nothing is left to show.
func (m Model) idle() bool {
	return m.quitWhenIdle && m.ready && m.sourceDone &&
		len(m.pending) == 0 && len(m.entries) == 0
}

// resize relays out every alert against the new canvas size and sends any
// alerts that arrived before the size was known.
func (m Model) resize(width, height int) (Model, tea.Cmd) {
	m.width = width
	m.height = height
	m.ready = true

	m.canvas.Resize(width, height)
	m.help.Width = width
	m.input.Width = max(0, width-len(inputPrompt)-2)

	for _, e := range m.entries {
		if err := e.alert.Relayout(); err != nil {
			m.logger.Warn("failed to relayout alert", "id", e.alert.ID(), "error", err)
		}
	}
	m.logger.Debug("relayout", "width", width, "height", height, "alerts", len(m.entries))

	var cmds []tea.Cmd
	pending := m.pending
	m.pending = nil
	for _, msg := range pending {
		var cmd tea.Cmd
		m, cmd = m.send(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// send shows an alert. Zero options use the configured defaults.
func (m Model) send(msg SendMsg) (Model, tea.Cmd) {
	opts := msg.Options
	if opts == (alert.Options{}) {
		opts = m.opts
	}

	a, err := m.generator.Send(msg.Text, msg.Type, opts)
	if err != nil {
		m.logger.Warn("failed to send alert", "error", err)
		return m, statusCmd("Send failed: "+err.Error(), true)
	}

	key := msg.Key
	if key == "" {
		key = a.ID()
	}
	if old, ok := m.entries[key]; ok {
		old.silent = true
		old.alert.Destroy()
	}

	e := &entry{key: key, alert: a, reason: CloseExpired}
	m.entries[key] = e

	entries := m.entries
	onClose := m.onClose
	logger := m.logger
	a.OnDestroy(func() {
		if entries[key] == e {
			delete(entries, key)
		}
		if e.silent {
			return
		}
		logger.Debug("alert closed", "key", key, "reason", e.reason)
		if onClose != nil {
			onClose(key, e.reason)
		}
	})

	m.lastText = msg.Text
	m.lastSent = time.Now()
	return m, nil
}

// dismiss destroys the alert with the given alert ID.
func (m Model) dismiss(id string, reason CloseReason) {
	for _, e := range m.entries {
		if e.alert.ID() == id {
			e.reason = reason
			e.alert.Destroy()
			return
		}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleType):
		m.typ = m.typ.Next()
		return m, nil

	case key.Matches(msg, m.keys.CycleAnchor):
		m.opts.Anchor = m.opts.Anchor.Next()
		return m, nil

	case key.Matches(msg, m.keys.Sticky):
		m.opts.Sticky = !m.opts.Sticky
		return m, nil

	case key.Matches(msg, m.keys.DismissAll):
		for _, e := range m.entries {
			e.reason = CloseDismissed
			e.alert.Destroy()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.lastText == "" {
			return m, nil
		}
		text, command := m.lastText, m.cfg.Clipboard.Command
		return m, func() tea.Msg {
			return copyResultMsg{err: copyText(text, command)}
		}

	case key.Matches(msg, m.keys.Send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m.send(SendMsg{Text: text, Type: m.typ, Options: m.opts})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleMouse dismisses the topmost alert under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if id, ok := m.canvas.SurfaceAt(msg.X, msg.Y); ok {
		m.dismiss(id, CloseDismissed)
	}
	return m, nil
}

const inputPrompt = "Message: "

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	b.WriteString(labelStyle.Render(inputPrompt) + m.input.View() + "\n\n")
	b.WriteString(m.viewStatus())

	body := b.String()
	helpView := m.help.View(m.keys)

	gap := m.height - lipgloss.Height(body) - lipgloss.Height(helpView)
	base := body + strings.Repeat("\n", max(1, gap+1)) + helpView

	return m.canvas.Render(base)
}

func (m Model) viewStatus() string {
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		return statusStyle.Render(m.statusMsg)
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	duration := m.opts.Duration.String()
	if m.opts.Sticky {
		duration = "sticky"
	}

	parts := []string{
		labelStyle.Render("type ") + valueStyle.Render(m.typ.String()),
		labelStyle.Render("anchor ") + valueStyle.Render(m.opts.Anchor.String()),
		labelStyle.Render("duration ") + valueStyle.Render(duration),
		labelStyle.Render("alerts ") + valueStyle.Render(fmt.Sprint(len(m.entries))),
	}
	if !m.lastSent.IsZero() {
		parts = append(parts, labelStyle.Render("last alert "+humanize.Time(m.lastSent)))
	}
	return strings.Join(parts, "  ")
}
