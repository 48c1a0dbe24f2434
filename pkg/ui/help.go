package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `## Cascade Select

**Closed**
  Space / Alt+↓   Open the columns
  ↑ / ↓           Previous / next value
  Home / End      First / last value
  Backspace       Clear the selection
  Enter           Accept and quit

**Open**
  ↑ / ↓           Move the cursor
  PgUp / PgDn     Move a page
  ← / →           More general / more specific column
  Enter / Space   Choose the option under the cursor
  a-z, 0-9        Jump to the first matching option
  Esc / Tab       Close the columns

**Anywhere**
  Ctrl+Y          Copy the chosen value
  Ctrl+R          Reload the catalog
  ?               Toggle this help
  q               Quit while closed
  Ctrl+C          Quit`

// renderHelp renders the help markdown, falling back to plain text when
// glamour cannot build a renderer.
func renderHelp(width int) string {
	wrap := 60
	if width > 0 && width-8 < wrap {
		wrap = max(width-8, 20)
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n")
}

// RenderHelpModal wraps the rendered help in a bordered modal.
func RenderHelpModal(theme Theme, width int) string {
	r := theme.Renderer

	modalWidth := 66
	if width > 0 && modalWidth > width-4 {
		modalWidth = max(width-4, 24)
	}

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(renderHelp(modalWidth - 6))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}
