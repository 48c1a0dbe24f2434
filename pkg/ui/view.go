package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/metrics"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// View renders the model.
func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.quitting {
		return ""
	}
	if m.showHelp {
		return RenderHelpModal(m.theme, m.width)
	}

	var b strings.Builder
	if m.opts.Label != "" {
		b.WriteString(m.theme.PrimaryBold.Render(m.opts.Label))
		b.WriteString("\n")
	}
	b.WriteString(m.renderField())
	b.WriteString("\n")

	if m.ctl.OptionsVisible() {
		b.WriteString(m.renderColumns())
		b.WriteString("\n")
	}

	if m.status != "" {
		style := m.theme.SuccessText
		if m.statusErr {
			style = m.theme.ErrorText
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	if !m.opts.HideFooter {
		b.WriteString(m.help.View(m.handler.KeyMap()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderField renders the closed select: the chosen label, or a
// placeholder, followed by the required and invalid markers.
func (m Model) renderField() string {
	t := m.theme
	width := m.opts.ColumnWidth

	var text string
	if v := m.ctl.SelectedValue(); !v.IsNull() {
		text = t.Base.Render(fit(v.Label(), width))
	} else {
		text = t.MutedText.Render(fit("Select…", width))
	}

	arrow := "▾"
	if m.ctl.OptionsVisible() {
		arrow = "▴"
	}
	out := t.Field.Render(text + " " + arrow)

	if m.ctl.Required() {
		out += t.RequiredMark.Render(" *")
	}
	if !m.cas.Field().Valid() {
		out += t.ErrorText.Render(" !")
	}
	if m.ctl.Disabled() {
		out += t.MutedText.Render(" (disabled)")
	}
	return out
}

// renderColumns lays the columns out most general on the left.
func (m Model) renderColumns() string {
	cols := m.ctl.Columns()
	parts := make([]string, 0, len(cols))
	for i := len(cols) - 1; i >= 0; i-- {
		parts = append(parts, m.renderColumn(cols[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderColumn(col *column.Column) string {
	t := m.theme
	width := m.opts.ColumnWidth
	active := col.Index() == m.handler.ActiveColumn()

	var b strings.Builder
	b.WriteString(t.Header.Render(fit(m.title(col.Index()), width-2)))
	b.WriteString("\n")

	opts := col.Options()
	cursor := m.ctl.CursorPosition()
	selected := col.Selected()

	switch {
	case col.Loading() && len(opts) == 0:
		b.WriteString(m.spinner.View() + " " + t.MutedText.Render("loading…"))
	case len(opts) == 0:
		b.WriteString(t.MutedText.Render("(none)"))
	default:
		focus := option.IndexOf(opts, cursor)
		if focus < 0 {
			focus = option.IndexOf(opts, selected)
		}
		start := windowStart(focus, len(opts), m.opts.MaxVisible)
		end := min(start+m.opts.MaxVisible, len(opts))
		for i := start; i < end; i++ {
			if i > start {
				b.WriteString("\n")
			}
			b.WriteString(m.renderRow(opts[i], cursor, selected, active, width-3))
		}
		if col.Loading() {
			b.WriteString("\n" + m.spinner.View())
		}
		if n := len(opts); n > m.opts.MaxVisible {
			b.WriteString("\n" + t.MutedText.Render(fmt.Sprintf("%d-%d of %d", start+1, end, n)))
		}
	}

	style := t.Panel
	if active {
		style = t.FocusedPanel
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderRow(o, cursor, selected *option.Option, active bool, width int) string {
	t := m.theme
	onCursor := active && o.Equal(cursor)

	lead := " "
	if onCursor {
		lead = t.PrimaryBold.Render("›")
	}
	check := " "
	if o.Equal(selected) {
		check = t.Chosen.Render("✓")
	}
	label := fit(o.Label(), width)
	if onCursor {
		label = t.Cursor.Render(label)
	}
	return lead + check + " " + label
}

func (m Model) title(i int) string {
	if i < len(m.opts.Titles) && m.opts.Titles[i] != "" {
		return m.opts.Titles[i]
	}
	if i == 0 {
		return "Value"
	}
	return fmt.Sprintf("Level %d", i)
}
