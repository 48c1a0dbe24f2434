package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRecordTracksMinMaxAvg(t *testing.T) {
	m := newTimingMetric("test")
	m.Record(2 * time.Millisecond)
	m.Record(4 * time.Millisecond)
	m.Record(6 * time.Millisecond)

	s := m.Stats()
	if s.Count != 3 {
		t.Errorf("expected count 3, got %d", s.Count)
	}
	if s.MinMs != 2 || s.MaxMs != 6 || s.AvgMs != 4 {
		t.Errorf("expected min=2 max=6 avg=4, got %+v", s)
	}
}

func TestDisabledRecordsNothing(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	m := newTimingMetric("off")
	m.Record(time.Millisecond)
	Timer(m)()
	if m.Count() != 0 {
		t.Errorf("expected no records while disabled, got %d", m.Count())
	}
}

func TestTimerRecords(t *testing.T) {
	SetEnabled(true)
	m := newTimingMetric("timer")
	stop := Timer(m)
	stop()
	if m.Count() != 1 {
		t.Errorf("expected 1 record, got %d", m.Count())
	}
	if Timer(nil) == nil {
		t.Error("expected no-op func for nil metric")
	}
}

func TestFormatListsRecordedMetrics(t *testing.T) {
	SetEnabled(true)
	ResetAll()
	defer ResetAll()

	CascadeRefresh.Record(time.Millisecond)
	var buf bytes.Buffer
	Format(&buf)
	out := buf.String()
	if !strings.Contains(out, "cascade_refresh") {
		t.Errorf("expected cascade_refresh line, got %q", out)
	}
	if strings.Contains(out, "ui_render") {
		t.Errorf("expected metrics without data to be omitted, got %q", out)
	}
}
