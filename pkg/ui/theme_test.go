package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	for name, c := range map[string]lipgloss.AdaptiveColor{
		"Primary": theme.Primary,
		"Success": theme.Success,
		"Danger":  theme.Danger,
		"Border":  theme.Border,
	} {
		if c.Light == "" && c.Dark == "" {
			t.Errorf("DefaultTheme %s color is empty", name)
		}
	}
}

func TestColorProfile_Detection(t *testing.T) {
	// TermProfile is set at init(); just verify it's a valid value
	valid := map[colorprofile.Profile]bool{
		colorprofile.Unknown:   true,
		colorprofile.NoTTY:     true,
		colorprofile.ASCII:     true,
		colorprofile.ANSI:      true,
		colorprofile.ANSI256:   true,
		colorprofile.TrueColor: true,
	}
	if !valid[TermProfile] {
		t.Errorf("TermProfile has unexpected value: %d", TermProfile)
	}
}

func TestThemeColorsFollowProfile(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	tests := []struct {
		profile   colorprofile.Profile
		bgNoColor bool
		fgANSI    bool
	}{
		{colorprofile.TrueColor, false, false},
		{colorprofile.ANSI256, true, false},
		{colorprofile.ANSI, true, true},
		{colorprofile.NoTTY, true, true},
	}

	for _, tt := range tests {
		TermProfile = tt.profile

		_, noColor := ThemeBg("#282A36").(lipgloss.NoColor)
		if noColor != tt.bgNoColor {
			t.Errorf("profile %v: ThemeBg NoColor = %v, want %v", tt.profile, noColor, tt.bgNoColor)
		}

		fg, isANSI := ThemeFg("#FF6B6B").(lipgloss.ANSIColor)
		if isANSI != tt.fgANSI {
			t.Errorf("profile %v: ThemeFg ANSIColor = %v, want %v", tt.profile, isANSI, tt.fgANSI)
		}
		if isANSI && fg != 7 {
			t.Errorf("profile %v: expected ANSI white (7), got %d", tt.profile, fg)
		}
	}
}
