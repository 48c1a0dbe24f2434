package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base         lipgloss.Style
	Cursor       lipgloss.Style
	Chosen       lipgloss.Style
	Header       lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	Field        lipgloss.Style

	// Pre-computed text styles, created once instead of per frame
	MutedText    lipgloss.Style // Placeholders, empty columns
	ErrorText    lipgloss.Style // Status errors, invalid marker
	SuccessText  lipgloss.Style // Reload summaries
	RequiredMark lipgloss.Style // "*" after a required field
	PrimaryBold  lipgloss.Style // Cursor indicator
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		// Light mode colors tuned for WCAG AA contrast
		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim
		Success:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Cursor = r.NewStyle().
		Background(t.Highlight).
		Bold(true)

	t.Chosen = r.NewStyle().
		Foreground(t.Success).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	t.FocusedPanel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary)

	t.Field = r.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(t.Secondary).
		Padding(0, 1)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.ErrorText = r.NewStyle().Foreground(t.Danger).Bold(true)
	t.SuccessText = r.NewStyle().Foreground(t.Success)
	t.RequiredMark = r.NewStyle().Foreground(ThemeFg("#FFB86C")).Bold(true)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
