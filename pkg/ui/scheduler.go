package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// deferredMsg carries a staged column step back onto the event loop.
type deferredMsg struct {
	fn func()
}

type deferred struct {
	delay time.Duration
	fn    func()
}

// Scheduler queues deferred column steps and hands them to Bubble Tea as
// tea.Tick commands, so every step runs inside Update. It satisfies
// column.Scheduler.
type Scheduler struct {
	mu    sync.Mutex
	queue []deferred
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Defer queues fn to run after delay.
func (s *Scheduler) Defer(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, deferred{delay: delay, fn: fn})
}

// Pending returns the number of queued steps not yet turned into commands.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Cmd drains the queue into one batched command, or nil when empty.
func (s *Scheduler) Cmd() tea.Cmd {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	if len(queue) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(queue))
	for _, d := range queue {
		fn := d.fn
		cmds = append(cmds, tea.Tick(d.delay, func(time.Time) tea.Msg {
			return deferredMsg{fn: fn}
		}))
	}
	return tea.Batch(cmds...)
}

// RunPending runs every queued step immediately, including steps queued by
// the steps themselves. Used when the program is not running.
func (s *Scheduler) RunPending() {
	for {
		s.mu.Lock()
		queue := s.queue
		s.queue = nil
		s.mu.Unlock()
		if len(queue) == 0 {
			return
		}
		for _, d := range queue {
			d.fn()
		}
	}
}
