package ui

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Paris", 10, "Paris"},
		{"Montevideo", 6, "Monte…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestFitPadsToWidth(t *testing.T) {
	for _, s := range []string{"", "Lyon", "Ciudad de México", "大阪"} {
		if got := runewidth.StringWidth(fit(s, 8)); got != 8 {
			t.Errorf("fit(%q, 8) has width %d", s, got)
		}
	}
	if got := padRight("ab", 1); got != "ab" {
		t.Errorf("expected no padding, got %q", got)
	}
}

func TestWindowStart(t *testing.T) {
	tests := []struct {
		name              string
		focus, n, size, w int
	}{
		{"fits", 3, 5, 10, 0},
		{"top", 0, 100, 10, 0},
		{"middle", 50, 100, 10, 45},
		{"bottom", 99, 100, 10, 90},
		{"no focus", -1, 100, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowStart(tt.focus, tt.n, tt.size); got != tt.w {
				t.Errorf("expected %d, got %d", tt.w, got)
			}
		})
	}
}
