// Package ui renders a cascade select in the terminal with Bubble Tea.
package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/interaction"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// appKeys are the bindings handled by the view itself, ahead of the
// select's own key handler.
type appKeys struct {
	Quit      key.Binding
	QuitLocal key.Binding
	Help      key.Binding
	Copy      key.Binding
	Reload    key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitLocal: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy value"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
	}
}

// Options configure the view.
type Options struct {
	// Titles names the columns, value column first.
	Titles []string
	// Label is shown above the field.
	Label string
	// ColumnWidth is the width of one column in cells.
	ColumnWidth int
	// MaxVisible is the number of rows shown per column.
	MaxVisible int
	// HideFooter hides the key hints.
	HideFooter bool
	// Scheduler must be the scheduler the columns were built with.
	Scheduler *Scheduler
	// Reloader enables catalog reloads. Optional.
	Reloader *Reloader
}

// Model is the Bubble Tea model of a cascade select.
type Model struct {
	cas     *cascade.Cascade
	ctl     *cascade.Controller
	handler *interaction.Handler
	opts    Options
	theme   Theme
	keys    appKeys

	spinner  spinner.Model
	spinning bool
	help     help.Model
	showHelp bool

	width  int
	height int

	status    string
	statusErr bool

	submitted bool
	quitting  bool
}

// New creates the model for an already bound cascade and its key handler.
func New(cas *cascade.Cascade, h *interaction.Handler, opts Options) Model {
	if opts.ColumnWidth < 8 {
		opts.ColumnWidth = 24
	}
	if opts.MaxVisible < 3 {
		opts.MaxVisible = 12
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewScheduler()
	}

	theme := DefaultTheme(lipgloss.DefaultRenderer())

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = theme.PrimaryBold

	return Model{
		cas:     cas,
		ctl:     cas.Controller(),
		handler: h,
		opts:    opts,
		theme:   theme,
		keys:    defaultAppKeys(),
		spinner: sp,
		help:    help.New(),
	}
}

// Init flushes steps staged while the cascade was bound and starts
// watching for catalog changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.opts.Scheduler.Cmd(), m.opts.Reloader.waitCmd())
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case deferredMsg:
		msg.fn()

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case CatalogChangedMsg:
		cmds = append(cmds, m.opts.Reloader.loadCmd(), m.opts.Reloader.waitCmd())

	case CatalogLoadedMsg:
		m.applyCatalog(msg)
	}

	cmds = append(cmds, m.opts.Scheduler.Cmd())
	if m.loading() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "?", "esc", "q":
			m.showHelp = false
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	open := m.ctl.OptionsVisible()
	switch {
	case key.Matches(msg, m.keys.Quit), !open && key.Matches(msg, m.keys.QuitLocal):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyValue()
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.opts.Reloader == nil {
			m.setStatus("no catalog files to reload", true)
			return m, nil
		}
		m.setStatus("reloading…", false)
		return m, m.opts.Reloader.loadCmd()
	}

	res, err := m.handler.HandleMsg(msg)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	if res.Action != interaction.ActionNone {
		m.status = ""
	}
	if res.Consumed || open {
		return m, nil
	}

	// keys the closed select let through
	switch msg.String() {
	case "enter":
		if m.ctl.Required() && !m.cas.Field().Valid() {
			m.setStatus("a value is required", true)
			return m, nil
		}
		m.submitted = true
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) copyValue() {
	v := m.ctl.SelectedValue()
	if v.IsNull() {
		m.setStatus("nothing to copy", true)
		return
	}
	if err := writeClipboard(v.Value()); err != nil {
		m.setStatus(fmt.Sprintf("clipboard: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("copied %q", v.Value()), false)
}

func (m *Model) applyCatalog(msg CatalogLoadedMsg) {
	if msg.Err != nil {
		m.setStatus(fmt.Sprintf("reload failed: %v", msg.Err), true)
		return
	}
	diff := m.opts.Reloader.apply(msg.Catalog)
	if !diff.HasChanges() {
		m.setStatus(diff.Summary(), false)
		return
	}
	if err := m.cas.Reload(); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	// the cursor may point at an option the reload removed
	col, err := m.ctl.Column(m.handler.ActiveColumn())
	if err == nil && !col.Contains(m.ctl.CursorPosition()) {
		if err := m.handler.SetActiveColumn(col.Index()); err != nil {
			debug.Log("ui: %v", err)
		}
	}
	m.setStatus(diff.Summary(), false)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// loading reports whether any column is staging options.
func (m Model) loading() bool {
	for _, col := range m.ctl.Columns() {
		if col.Loading() {
			return true
		}
	}
	return false
}

// Chosen returns the committed value when the user accepted it with Enter.
func (m Model) Chosen() (*option.Option, bool) {
	if !m.submitted {
		return option.Null(), false
	}
	v := m.ctl.SelectedValue()
	return v, !v.IsNull()
}

// Status returns the current status line.
func (m Model) Status() string {
	return m.status
}

// Quitting reports whether the model asked the program to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
