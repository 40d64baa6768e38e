package main

import (
	"time"

	tui "github.com/charmbracelet/bubbletea"

	"github.com/keilerkonzept/livechart/internal/livechart"
)

// timerMsg is delivered by bubbletea when a scheduled interval elapses.
type timerMsg struct {
	id int
	at time.Time
}

// teaScheduler turns chart timers into bubbletea tick commands, so every callback runs inside
// Update. Each timer has an id; a cancelled id drops its in-flight tick instead of firing.
type teaScheduler struct {
	next    int
	timers  map[int]*teaTimer
	pending []tui.Cmd
}

type teaTimer struct {
	s  *teaScheduler
	id int
	d  time.Duration
	fn func()
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[int]*teaTimer)}
}

func (s *teaScheduler) Every(d time.Duration, fn func()) livechart.Handle {
	s.next++
	t := &teaTimer{s: s, id: s.next, d: d, fn: fn}
	s.timers[t.id] = t
	s.pending = append(s.pending, t.tick())
	return t
}

func (t *teaTimer) Cancel() {
	delete(t.s.timers, t.id)
}

func (t *teaTimer) tick() tui.Cmd {
	id := t.id
	return tui.Tick(t.d, func(at time.Time) tui.Msg {
		return timerMsg{id: id, at: at}
	})
}

// fire runs the timer's callback and re-arms it. It reports false for stale ticks.
func (s *teaScheduler) fire(msg timerMsg) (tui.Cmd, bool) {
	t, ok := s.timers[msg.id]
	if !ok {
		return nil, false
	}
	t.fn()
	if _, ok := s.timers[msg.id]; !ok {
		return nil, true
	}
	return t.tick(), true
}

func (s *teaScheduler) live() int { return len(s.timers) }

// flush hands over commands for timers armed since the last call.
func (s *teaScheduler) flush() tui.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tui.Batch(cmds...)
}
