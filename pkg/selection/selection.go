// Package selection holds a single selected option with a disabled flag.
//
// The same controller type serves as a column's committed selection and as
// the cursor position a select controller shares across its columns.
package selection

import (
	"github.com/vanderheijden86/cascade/pkg/observable"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// Controller is a single-selection holder. While disabled, Select and Clear
// are no-ops; reads are never blocked.
type Controller struct {
	selected *observable.Value[*option.Option]
	disabled *observable.Value[bool]
}

// New creates a controller holding the null option.
func New() *Controller {
	return &Controller{
		selected: observable.NewValue(option.Null()),
		disabled: observable.NewValue(false),
	}
}

// Selected returns the selected option, option.Null() when nothing is selected.
func (c *Controller) Selected() *option.Option {
	return c.selected.Get()
}

// HasSelection reports whether a non-null option is selected.
func (c *Controller) HasSelection() bool {
	return !c.selected.Get().IsNull()
}

// Select sets the selection. nil is ignored; pass option.Null() or call
// Clear to deselect.
func (c *Controller) Select(o *option.Option) {
	if o == nil || c.disabled.Get() {
		return
	}
	c.selected.Set(o)
}

// Clear resets the selection to the null option.
func (c *Controller) Clear() {
	if c.disabled.Get() {
		return
	}
	c.selected.Set(option.Null())
}

// OnSelected registers fn for selection changes and replays the current
// selection immediately as (current, current).
func (c *Controller) OnSelected(fn func(now, was *option.Option)) func() {
	return c.selected.OnChange(fn)
}

// Disabled reports whether selection changes are blocked.
func (c *Controller) Disabled() bool {
	return c.disabled.Get()
}

// SetDisabled toggles the disabled flag.
func (c *Controller) SetDisabled(d bool) {
	c.disabled.Set(d)
}

// OnDisabledChanged registers fn for disabled flag changes, with replay.
func (c *Controller) OnDisabledChanged(fn func(now, was bool)) func() {
	return c.disabled.OnChange(fn)
}
