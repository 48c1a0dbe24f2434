// Package cascade implements the multi-column select controller and the
// cascading filter that keeps its columns consistent.
//
// Column 0 holds value options; columns 1..N-1 hold category options, each
// more general than the one before it. Selecting a category in column c
// narrows column c-1, which narrows c-2, and so on down to the values.
package cascade

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/observable"
	"github.com/vanderheijden86/cascade/pkg/option"
	"github.com/vanderheijden86/cascade/pkg/selection"
)

// ErrColumnOutOfRange is returned for a column index outside [0, N).
var ErrColumnOutOfRange = errors.New("column index out of range")

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	id         string
	columnOpts []column.ColumnOption
	required   bool
}

// WithID overrides the generated controller id.
func WithID(id string) ControllerOption {
	return func(c *controllerConfig) {
		c.id = id
	}
}

// WithColumnOptions applies opts to every column.
func WithColumnOptions(opts ...column.ColumnOption) ControllerOption {
	return func(c *controllerConfig) {
		c.columnOpts = append(c.columnOpts, opts...)
	}
}

// WithRequired marks the select as required from the start.
func WithRequired(required bool) ControllerOption {
	return func(c *controllerConfig) {
		c.required = required
	}
}

// Controller orchestrates the columns of one select, the cursor position
// they share, and the select-wide flags.
type Controller struct {
	id      string
	seq     *option.Sequence
	columns []*column.Column
	cursor  *selection.Controller

	optionsVisible        *observable.Value[bool]
	selectedOptionVisible *observable.Value[bool]
	required              *observable.Value[bool]
	disabled              *observable.Value[bool]
}

// New creates a controller with n columns. n is clamped to at least 1.
func New(n int, opts ...ControllerOption) *Controller {
	if n < 1 {
		n = 1
	}
	cfg := controllerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = "select-" + uuid.NewString()
	}

	c := &Controller{
		id:                    cfg.id,
		seq:                   option.NewSequence(cfg.id),
		cursor:                selection.New(),
		optionsVisible:        observable.NewValue(false),
		selectedOptionVisible: observable.NewValue(true),
		required:              observable.NewValue(cfg.required),
		disabled:              observable.NewValue(false),
	}
	c.columns = make([]*column.Column, n)
	for i := range c.columns {
		c.columns[i] = column.New(i, c.seq, c.cursor, cfg.columnOpts...)
	}
	return c
}

// ID returns the unique controller id.
func (c *Controller) ID() string {
	return c.id
}

// NumColumns returns the number of columns.
func (c *Controller) NumColumns() int {
	return len(c.columns)
}

// Column returns column i.
func (c *Controller) Column(i int) (*column.Column, error) {
	if i < 0 || i >= len(c.columns) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrColumnOutOfRange, i, len(c.columns))
	}
	return c.columns[i], nil
}

// Columns returns the columns, value column first.
func (c *Controller) Columns() []*column.Column {
	return append([]*column.Column(nil), c.columns...)
}

// ValueColumn returns column 0.
func (c *Controller) ValueColumn() *column.Column {
	return c.columns[0]
}

// CursorPosition returns the keyboard-highlighted option.
func (c *Controller) CursorPosition() *option.Option {
	return c.cursor.Selected()
}

// SetCursorPosition moves the cursor. nil is ignored.
func (c *Controller) SetCursorPosition(o *option.Option) {
	c.cursor.Select(o)
}

// OnCursorPositionChanged registers fn for cursor moves, with replay.
func (c *Controller) OnCursorPositionChanged(fn func(now, was *option.Option)) func() {
	return c.cursor.OnSelected(fn)
}

// CursorColumn returns the index of the column whose live options contain
// the cursor position, or -1.
func (c *Controller) CursorColumn() int {
	pos := c.cursor.Selected()
	if pos.IsNull() {
		return -1
	}
	for _, col := range c.columns {
		if col.Contains(pos) {
			return col.Index()
		}
	}
	return -1
}

// OptionsVisible reports whether the option list is open.
func (c *Controller) OptionsVisible() bool {
	return c.optionsVisible.Get()
}

// SetOptionsVisible opens or closes the option list.
func (c *Controller) SetOptionsVisible(v bool) {
	c.optionsVisible.Set(v)
}

// OnOptionsVisibilityChanged registers fn, with replay.
func (c *Controller) OnOptionsVisibilityChanged(fn func(now, was bool)) func() {
	return c.optionsVisible.OnChange(fn)
}

// SelectedOptionVisible reports whether the committed value is displayed.
func (c *Controller) SelectedOptionVisible() bool {
	return c.selectedOptionVisible.Get()
}

// SetSelectedOptionVisible shows or hides the committed value.
func (c *Controller) SetSelectedOptionVisible(v bool) {
	c.selectedOptionVisible.Set(v)
}

// OnSelectedOptionVisibilityChanged registers fn, with replay.
func (c *Controller) OnSelectedOptionVisibilityChanged(fn func(now, was bool)) func() {
	return c.selectedOptionVisible.OnChange(fn)
}

// Required reports whether a value must be selected for the select to be valid.
func (c *Controller) Required() bool {
	return c.required.Get()
}

// SetRequired sets the required flag.
func (c *Controller) SetRequired(r bool) {
	c.required.Set(r)
}

// OnRequiredChanged registers fn, with replay.
func (c *Controller) OnRequiredChanged(fn func(now, was bool)) func() {
	return c.required.OnChange(fn)
}

// Disabled reports whether selection changes are blocked.
func (c *Controller) Disabled() bool {
	return c.disabled.Get()
}

// SetDisabled blocks or unblocks selection changes in every column.
func (c *Controller) SetDisabled(d bool) {
	for _, col := range c.columns {
		col.SetSelectedDisabled(d)
	}
	c.disabled.Set(d)
}

// OnDisabledChanged registers fn, with replay.
func (c *Controller) OnDisabledChanged(fn func(now, was bool)) func() {
	return c.disabled.OnChange(fn)
}

// SelectedValue returns the committed value option (column 0).
func (c *Controller) SelectedValue() *option.Option {
	return c.columns[0].Selected()
}

// SetSelectedValue commits o in the value column.
func (c *Controller) SetSelectedValue(o *option.Option) {
	c.columns[0].Select(o)
}

// ClearSelectedValue clears the value column selection.
func (c *Controller) ClearSelectedValue() {
	c.columns[0].ClearSelected()
}

// Valid reports whether the current state satisfies the required flag.
func (c *Controller) Valid() bool {
	return !c.Required() || !c.SelectedValue().IsNull()
}

// ClearSelectedOptions clears the selections of columns maxCol down to 0.
func (c *Controller) ClearSelectedOptions(maxCol int) error {
	if _, err := c.Column(maxCol); err != nil {
		return err
	}
	for i := maxCol; i >= 0; i-- {
		c.columns[i].ClearSelected()
	}
	return nil
}

// ClearColumnOptions empties the registries of columns maxCol down to minCol.
func (c *Controller) ClearColumnOptions(maxCol, minCol int) error {
	if _, err := c.Column(maxCol); err != nil {
		return err
	}
	if _, err := c.Column(minCol); err != nil {
		return err
	}
	for i := maxCol; i >= minCol; i-- {
		c.columns[i].ClearOptions()
	}
	return nil
}
