package model

import (
	"time"

	"github.com/byxorna/fable/pkg/book"
	tea "github.com/charmbracelet/bubbletea"
)

type timerFiredMsg struct{ id int }

// teaScheduler runs book timers on the Bubble Tea event loop. Each Schedule
// queues a tick command; the tick comes back as a timerFiredMsg and Update
// calls Fire, so callbacks never run concurrently with Update.
type teaScheduler struct {
	nextID  int
	pending map[int]*teaTimer
	queued  []tea.Cmd

	// tick builds the command that delivers timerFiredMsg after d
	tick func(d time.Duration, id int) tea.Cmd
}

type teaTimer struct {
	s     *teaScheduler
	id    int
	after time.Duration
	fn    func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{
		pending: map[int]*teaTimer{},
		tick: func(d time.Duration, id int) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg {
				return timerFiredMsg{id: id}
			})
		},
	}
}

func (s *teaScheduler) Schedule(d time.Duration, fn func()) book.Timer {
	s.nextID++
	t := &teaTimer{s: s, id: s.nextID, after: d, fn: fn}
	s.pending[t.id] = t
	s.queued = append(s.queued, s.tick(d, t.id))
	return t
}

// Fire runs the callback for id unless it was stopped or already ran.
func (s *teaScheduler) Fire(id int) bool {
	t, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	t.fn()
	return true
}

// Flush hands the ticks queued since the last call to the runtime.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}
