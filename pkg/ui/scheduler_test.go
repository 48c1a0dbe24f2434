package ui

import (
	"testing"
	"time"
)

func TestSchedulerQueuesUntilDrained(t *testing.T) {
	s := NewScheduler()
	if s.Cmd() != nil {
		t.Fatal("expected nil command for an empty queue")
	}

	ran := 0
	s.Defer(10*time.Millisecond, func() { ran++ })
	s.Defer(0, func() { ran++ })
	if s.Pending() != 2 {
		t.Fatalf("expected 2 pending, got %d", s.Pending())
	}
	if ran != 0 {
		t.Fatal("expected nothing to run before the event loop")
	}
	if s.Cmd() == nil {
		t.Fatal("expected a batched command")
	}
	if s.Pending() != 0 {
		t.Errorf("expected queue drained, got %d", s.Pending())
	}
}

func TestSchedulerRunPendingFollowsChains(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Defer(time.Second, func() {
		order = append(order, "insert")
		s.Defer(time.Second, func() { order = append(order, "settle") })
	})
	s.RunPending()

	if len(order) != 2 || order[0] != "insert" || order[1] != "settle" {
		t.Errorf("unexpected order %v", order)
	}
	if s.Pending() != 0 {
		t.Errorf("expected empty queue, got %d", s.Pending())
	}
}
