// Package interaction turns key presses into cascade operations.
//
// A Handler has two modes. While the option list is closed, navigation keys
// move the committed value directly. While it is open, they move the cursor
// within and across columns and Enter/Space commits the cursor.
package interaction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/metrics"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// Action says what a key press did.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionSelect
	ActionClear
	ActionOpen
	ActionClose
	ActionColumn
)

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionSelect:
		return "select"
	case ActionClear:
		return "clear"
	case ActionOpen:
		return "open"
	case ActionClose:
		return "close"
	case ActionColumn:
		return "column"
	default:
		return "none"
	}
}

// Result reports the outcome of one key press. Consumed is false when the
// key should reach the surrounding view (Tab, Enter while closed, and so on).
type Result struct {
	Action   Action
	Consumed bool
}

// Config tunes the handler.
type Config struct {
	// PageSize is the step of PageUp/PageDown.
	PageSize int
	// AutoClose closes the list after a value is committed.
	AutoClose bool
	// BackspaceClearsAll makes Backspace/Delete clear every column instead
	// of only the active one.
	BackspaceClearsAll bool
	// CursorFollowsSelection moves the cursor along with the value while the
	// list is closed.
	CursorFollowsSelection bool
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:               8,
		AutoClose:              true,
		CursorFollowsSelection: true,
	}
}

// Handler dispatches keys for one bound cascade.
type Handler struct {
	cas  *cascade.Cascade
	ctl  *cascade.Controller
	keys KeyMap
	cfg  Config

	// column is the active column index
	column int
}

// New creates a handler for c.
func New(c *cascade.Cascade, cfg Config) *Handler {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &Handler{
		cas:  c,
		ctl:  c.Controller(),
		keys: DefaultKeyMap(),
		cfg:  cfg,
	}
}

// SetKeyMap replaces the bindings.
func (h *Handler) SetKeyMap(k KeyMap) {
	h.keys = k
}

// KeyMap returns the bindings in use.
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}

// Config returns the handler configuration.
func (h *Handler) Config() Config {
	return h.cfg
}

// ActiveColumn returns the active column index.
func (h *Handler) ActiveColumn() int {
	return h.column
}

// SetActiveColumn makes column i active and relocates the cursor into it.
func (h *Handler) SetActiveColumn(i int) error {
	if _, err := h.ctl.Column(i); err != nil {
		return err
	}
	h.column = i
	h.relocate()
	return nil
}

// Open shows the option list and places the cursor in the active column.
func (h *Handler) Open() {
	if h.ctl.Disabled() || h.ctl.OptionsVisible() {
		return
	}
	h.ctl.SetOptionsVisible(true)
	h.relocate()
}

// Close hides the option list.
func (h *Handler) Close() {
	if h.ctl.OptionsVisible() {
		h.ctl.SetOptionsVisible(false)
	}
}

// HandleMsg dispatches a Bubble Tea key message.
func (h *Handler) HandleMsg(msg tea.KeyMsg) (Result, error) {
	return h.HandleKey(msg.String())
}

// HandleKey dispatches the key named k. Both Bubble Tea and DOM key names
// are understood.
func (h *Handler) HandleKey(k string) (Result, error) {
	if h.ctl.Disabled() {
		return Result{}, nil
	}
	defer metrics.Timer(metrics.KeyDispatch)()

	if h.ctl.OptionsVisible() {
		return h.open(name(k))
	}
	return h.closed(name(k))
}

func (h *Handler) open(k name) (Result, error) {
	switch {
	case key.Matches(k, h.keys.Up):
		return h.step(-1), nil
	case key.Matches(k, h.keys.Down):
		return h.step(1), nil
	case key.Matches(k, h.keys.PageUp):
		return h.step(-h.cfg.PageSize), nil
	case key.Matches(k, h.keys.PageDown):
		return h.step(h.cfg.PageSize), nil
	case key.Matches(k, h.keys.Home):
		return h.jumpTo(0), nil
	case key.Matches(k, h.keys.End):
		return h.jumpTo(-1), nil
	case key.Matches(k, h.keys.Left):
		return h.shift(1), nil
	case key.Matches(k, h.keys.Right):
		return h.shift(-1), nil
	case key.Matches(k, h.keys.Commit):
		return h.commit()
	case key.Matches(k, h.keys.Clear):
		return h.clear()
	case key.Matches(k, h.keys.Close):
		h.Close()
		return Result{Action: ActionClose, Consumed: true}, nil
	case key.Matches(k, h.keys.Tab):
		h.Close()
		return Result{Action: ActionClose}, nil
	}
	if r, ok := letter(string(k)); ok {
		return h.jumpLetter(r), nil
	}
	debug.Log("interaction: unhandled key %q while open", string(k))
	return Result{Consumed: true}, nil
}

func (h *Handler) closed(k name) (Result, error) {
	switch {
	case key.Matches(k, h.keys.Open):
		h.Open()
		return Result{Action: ActionOpen, Consumed: true}, nil
	case key.Matches(k, h.keys.Up):
		return h.moveValue(func(i, _ int) int { return i - 1 })
	case key.Matches(k, h.keys.Down):
		return h.moveValue(func(i, _ int) int { return i + 1 })
	case key.Matches(k, h.keys.Home):
		return h.moveValue(func(_, _ int) int { return 0 })
	case key.Matches(k, h.keys.End):
		return h.moveValue(func(_, n int) int { return n - 1 })
	case key.Matches(k, h.keys.Clear):
		return h.clear()
	}

	// any other key puts a null cursor on the active column first
	if h.ctl.CursorPosition().IsNull() {
		h.relocate()
	}
	if key.Matches(k, h.keys.Enter) || key.Matches(k, h.keys.Tab) || key.Matches(k, h.keys.Close) {
		return Result{}, nil
	}
	debug.Log("interaction: swallowed key %q while closed", string(k))
	return Result{Consumed: true}, nil
}

func (h *Handler) active() *column.Column {
	col, err := h.ctl.Column(h.column)
	if err != nil {
		// the controller never shrinks, but fall back to the value column
		h.column = 0
		return h.ctl.ValueColumn()
	}
	return col
}

// cursorIndex returns the cursor's row in the active column, or -1.
func (h *Handler) cursorIndex(opts []*option.Option) int {
	pos := h.ctl.CursorPosition()
	if pos.IsNull() {
		return -1
	}
	return option.IndexOf(opts, pos)
}

// relocate puts the cursor on the active column's selection or, failing
// that, its first option.
func (h *Handler) relocate() {
	col := h.active()
	if col.HasSelection() && col.Contains(col.Selected()) {
		h.ctl.SetCursorPosition(col.Selected())
		return
	}
	if first, ok := col.Registry().At(0); ok {
		h.ctl.SetCursorPosition(first)
		return
	}
	h.ctl.SetCursorPosition(option.Null())
}

func (h *Handler) step(delta int) Result {
	opts := h.active().Options()
	i := h.cursorIndex(opts)
	if i < 0 {
		return Result{Consumed: true}
	}
	j := min(max(i+delta, 0), len(opts)-1)
	if j == i {
		return Result{Consumed: true}
	}
	h.ctl.SetCursorPosition(opts[j])
	return Result{Action: ActionMove, Consumed: true}
}

// jumpTo moves the cursor to row i of the active column; -1 is the last row.
func (h *Handler) jumpTo(i int) Result {
	opts := h.active().Options()
	if len(opts) == 0 {
		return Result{Consumed: true}
	}
	if i < 0 {
		i = len(opts) - 1
	}
	h.ctl.SetCursorPosition(opts[i])
	return Result{Action: ActionMove, Consumed: true}
}

// shift moves the active column by delta; positive is more general.
func (h *Handler) shift(delta int) Result {
	next := h.column + delta
	if next < 0 || next >= h.ctl.NumColumns() {
		return Result{Consumed: true}
	}
	h.column = next
	h.relocate()
	return Result{Action: ActionColumn, Consumed: true}
}

func (h *Handler) commit() (Result, error) {
	col := h.active()
	pos := h.ctl.CursorPosition()
	if pos.IsNull() || !col.Contains(pos) {
		return Result{Consumed: true}, nil
	}
	if err := h.cas.Commit(h.column, pos); err != nil {
		return Result{Action: ActionSelect, Consumed: true}, err
	}
	if h.column == 0 && h.cfg.AutoClose && col.HasSelection() {
		h.Close()
		return Result{Action: ActionClose, Consumed: true}, nil
	}
	// the committed category may have narrowed the column below it away
	// from the cursor
	if !col.Contains(h.ctl.CursorPosition()) {
		h.relocate()
	}
	return Result{Action: ActionSelect, Consumed: true}, nil
}

func (h *Handler) clear() (Result, error) {
	var err error
	if h.cfg.BackspaceClearsAll {
		err = h.cas.ClearAll()
	} else {
		err = h.cas.Clear(h.column)
	}
	return Result{Action: ActionClear, Consumed: true}, err
}

// moveValue commits the value option at next(current, count) in column 0.
// With no current value the first option is chosen.
func (h *Handler) moveValue(next func(i, n int) int) (Result, error) {
	col := h.ctl.ValueColumn()
	opts := col.Options()
	if len(opts) == 0 {
		return Result{Consumed: true}, nil
	}
	i := option.IndexOf(opts, col.Selected())
	j := 0
	if i >= 0 {
		j = next(i, len(opts))
	}
	if j < 0 || j >= len(opts) || j == i {
		return Result{Consumed: true}, nil
	}
	if err := h.cas.Select(0, opts[j]); err != nil {
		return Result{Action: ActionSelect, Consumed: true}, err
	}
	if h.cfg.CursorFollowsSelection {
		h.column = 0
		h.ctl.SetCursorPosition(col.Selected())
	}
	return Result{Action: ActionSelect, Consumed: true}, nil
}

func (h *Handler) jumpLetter(r rune) Result {
	want := fold(string(r))
	for _, o := range h.active().Options() {
		if strings.HasPrefix(fold(o.Label()), want) {
			h.ctl.SetCursorPosition(o)
			return Result{Action: ActionMove, Consumed: true}
		}
	}
	return Result{Consumed: true}
}

// letter reports whether k names a single letter or digit.
func letter(k string) (rune, bool) {
	if utf8.RuneCountInString(k) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(k)
	return r, unicode.IsLetter(r) || unicode.IsDigit(r)
}

// fold lower-cases s and strips combining marks, so "É" matches "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
