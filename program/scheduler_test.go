package main

import (
	"testing"
	"time"
)

func TestTeaSchedulerFiresAndRearms(t *testing.T) {
	s := newTeaScheduler()
	calls := 0
	h := s.Every(10*time.Millisecond, func() { calls++ })
	if s.flush() == nil {
		t.Fatalf("no command for a new timer")
	}
	if s.flush() != nil {
		t.Fatalf("flush returned stale commands")
	}

	cmd, ok := s.fire(timerMsg{id: 1})
	if !ok || calls != 1 || cmd == nil {
		t.Fatalf("fire: ok=%v calls=%d cmd=%v", ok, calls, cmd)
	}

	h.Cancel()
	cmd, ok = s.fire(timerMsg{id: 1})
	if ok || cmd != nil || calls != 1 {
		t.Fatalf("cancelled timer fired: ok=%v calls=%d", ok, calls)
	}
	if s.live() != 0 {
		t.Fatalf("live = %d", s.live())
	}
}

func TestTeaSchedulerRestartDropsOldTicks(t *testing.T) {
	s := newTeaScheduler()
	var fired []string
	old := s.Every(time.Second, func() { fired = append(fired, "old") })
	old.Cancel()
	s.Every(time.Second, func() { fired = append(fired, "new") })

	s.fire(timerMsg{id: 1})
	s.fire(timerMsg{id: 2})
	if len(fired) != 1 || fired[0] != "new" {
		t.Fatalf("fired = %v, want [new]", fired)
	}
}

func TestTeaSchedulerCallbackMayCancel(t *testing.T) {
	s := newTeaScheduler()
	var h interface{ Cancel() }
	h = s.Every(time.Second, func() { h.Cancel() })
	cmd, ok := s.fire(timerMsg{id: 1})
	if !ok || cmd != nil {
		t.Fatalf("self-cancelled timer re-armed: ok=%v cmd=%v", ok, cmd)
	}
}
