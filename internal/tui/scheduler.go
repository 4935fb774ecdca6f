package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// expireMsg runs a scheduled callback on the event loop.
type expireMsg struct {
	fn func()
}

// cmdScheduler implements alert.Scheduler with tea.Tick so that auto-destroy
// callbacks run inside Update, like every other state change.
type cmdScheduler struct {
	mu      sync.Mutex
	pending []tea.Cmd
}

func (s *cmdScheduler) Schedule(d time.Duration, fn func()) {
	cmd := tea.Tick(d, func(time.Time) tea.Msg {
		return expireMsg{fn: fn}
	})
	s.mu.Lock()
	s.pending = append(s.pending, cmd)
	s.mu.Unlock()
}

// drain returns the ticks scheduled since the last call.
func (s *cmdScheduler) drain() tea.Cmd {
	s.mu.Lock()
	cmds := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
