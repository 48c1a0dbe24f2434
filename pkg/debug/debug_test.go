package debug

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := enabled
	var buf bytes.Buffer
	SetEnabled(true)
	SetOutput(&buf)
	t.Cleanup(func() {
		enabled = prev
	})
	return &buf
}

func TestLogWritesWhenEnabled(t *testing.T) {
	buf := withBuffer(t)
	Log("column %d has %d options", 1, 3)
	if !strings.Contains(buf.String(), "column 1 has 3 options") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), prefix) {
		t.Errorf("expected prefix %q in output, got %q", prefix, buf.String())
	}
}

func TestLogSilentWhenDisabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(false)
	Log("hidden")
	LogIf(true, "hidden")
	LogTiming("hidden", time.Millisecond)
	Dump("hidden", 1)
	LogEnterExit("hidden")()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLogIf(t *testing.T) {
	buf := withBuffer(t)
	LogIf(false, "skipped")
	LogIf(true, "kept")
	out := buf.String()
	if strings.Contains(out, "skipped") || !strings.Contains(out, "kept") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLogEnterExit(t *testing.T) {
	buf := withBuffer(t)
	LogEnterExit("refresh")()
	out := buf.String()
	if !strings.Contains(out, "-> refresh") || !strings.Contains(out, "<- refresh") {
		t.Errorf("expected enter and exit lines, got %q", out)
	}
}

func TestDump(t *testing.T) {
	buf := withBuffer(t)
	Dump("filters", []string{"Europe"})
	if !strings.Contains(buf.String(), "filters: []string = [Europe]") {
		t.Errorf("unexpected dump output %q", buf.String())
	}
}
