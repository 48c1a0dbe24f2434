package cascade

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/metrics"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// ErrSourceCount is returned by Bind when the number of data sources does not
// match the number of columns.
var ErrSourceCount = errors.New("source count does not match column count")

// DataFunc produces the entries of one column. filters are the labels of the
// categories the result must fall under; no filters means unfiltered.
type DataFunc func(filters ...string) ([]option.Entry, error)

// Cascade keeps the columns of a Controller consistent with each other.
//
// For column k the filter comes from column k+1: its selected label when it
// has one, otherwise the union of its current labels when it is filtered
// itself, otherwise nothing. A filtered column with no labels to filter by
// yields an empty set without asking its source.
type Cascade struct {
	ctl     *Controller
	sources []DataFunc
	field   *Field

	// sets holds the last computed option set per column
	sets  [][]*option.Option
	busy  bool
	err   error
	unsub []func()

	// loaded is set once the initial sets are in. After that a refresh
	// requested while disabled is held back until the controller is enabled.
	loaded   bool
	held     bool
	heldFrom int
}

// Bind wires one source per column into ctl and loads the initial sets, most
// general column first.
func Bind(ctl *Controller, sources []DataFunc) (*Cascade, error) {
	if len(sources) != ctl.NumColumns() {
		return nil, fmt.Errorf("%w: %d sources for %d columns", ErrSourceCount, len(sources), ctl.NumColumns())
	}
	c := &Cascade{
		ctl:     ctl,
		sources: append([]DataFunc(nil), sources...),
		field:   newField(),
		sets:    make([][]*option.Option, ctl.NumColumns()),
	}

	for i := 1; i < ctl.NumColumns(); i++ {
		c.unsub = append(c.unsub, ctl.columns[i].OnSelected(c.categoryChanged(i)))
	}
	c.unsub = append(c.unsub,
		ctl.columns[0].OnSelected(func(_, _ *option.Option) { c.syncField() }),
		ctl.OnRequiredChanged(func(_, _ bool) { c.syncField() }),
		ctl.OnDisabledChanged(c.disabledChanged),
	)

	if err := c.Reload(); err != nil {
		c.Close()
		return nil, err
	}
	c.loaded = true
	return c, nil
}

// Controller returns the bound controller.
func (c *Cascade) Controller() *Controller {
	return c.ctl
}

// Field returns the bound input.
func (c *Cascade) Field() *Field {
	return c.field
}

// Err returns the error of the last refresh, if any.
func (c *Cascade) Err() error {
	return c.err
}

// Close detaches the cascade from the controller.
func (c *Cascade) Close() {
	for _, fn := range c.unsub {
		fn()
	}
	c.unsub = nil
}

// Reload recomputes every column from its source, most general first.
func (c *Cascade) Reload() error {
	c.err = c.refreshFrom(c.ctl.NumColumns() - 1)
	return c.err
}

// Select commits o in column col and cascades the change downward.
func (c *Cascade) Select(col int, o *option.Option) error {
	column, err := c.ctl.Column(col)
	if err != nil {
		return err
	}
	c.err = nil
	column.Select(o)
	return c.err
}

// Commit is Select with toggle semantics: confirming the category that is
// already selected clears it.
func (c *Cascade) Commit(col int, o *option.Option) error {
	column, err := c.ctl.Column(col)
	if err != nil {
		return err
	}
	if col > 0 && column.HasSelection() && column.Selected().Equal(o) {
		return c.Clear(col)
	}
	return c.Select(col, o)
}

// Clear resets the selection of column col and cascades the change.
func (c *Cascade) Clear(col int) error {
	column, err := c.ctl.Column(col)
	if err != nil {
		return err
	}
	c.err = nil
	column.ClearSelected()
	return c.err
}

// ClearAll clears every selection, most general first.
func (c *Cascade) ClearAll() error {
	c.err = nil
	if err := c.ctl.ClearSelectedOptions(c.ctl.NumColumns() - 1); err != nil {
		return err
	}
	return c.err
}

// SelectValue commits the value option whose value or label is text. An
// empty text clears the value. It reports whether a match was found.
func (c *Cascade) SelectValue(text string) bool {
	col := c.ctl.columns[0]
	if text == "" {
		col.ClearSelected()
		return true
	}
	for _, o := range col.Options() {
		if o.Value() == text || o.Label() == text {
			col.Select(o)
			return true
		}
	}
	return false
}

// Options returns the last computed set for column col.
func (c *Cascade) Options(col int) []*option.Option {
	if col < 0 || col >= len(c.sets) {
		return nil
	}
	return append([]*option.Option(nil), c.sets[col]...)
}

func (c *Cascade) categoryChanged(col int) func(now, was *option.Option) {
	return func(now, was *option.Option) {
		if now == was || c.busy {
			return
		}
		debug.Log("cascade: column %d selection %s -> %s", col, was, now)
		c.err = c.refreshFrom(col - 1)
	}
}

// disabledChanged runs a refresh held back while the controller was
// disabled, then resyncs the field.
func (c *Cascade) disabledChanged(now, _ bool) {
	if !now && c.held {
		c.held = false
		debug.Log("cascade: enabled, running held refresh from column %d", c.heldFrom)
		c.err = c.refreshFrom(c.heldFrom)
	}
	c.syncField()
}

// refreshFrom recomputes columns top down to 0. While the controller is
// disabled selections cannot be dropped, so the refresh is held and run on
// enable; the columns keep their last consistent sets meanwhile.
func (c *Cascade) refreshFrom(top int) error {
	if top < 0 {
		return nil
	}
	if c.loaded && c.ctl.Disabled() {
		if !c.held || top > c.heldFrom {
			c.heldFrom = top
		}
		c.held = true
		debug.Log("cascade: disabled, holding refresh from column %d", top)
		return nil
	}
	defer metrics.Timer(metrics.CascadeRefresh)()

	c.busy = true
	defer func() { c.busy = false }()

	for k := top; k >= 0; k-- {
		if err := c.refresh(k); err != nil {
			return err
		}
	}
	c.syncField()
	return nil
}

func (c *Cascade) refresh(k int) error {
	col := c.ctl.columns[k]
	filters, filtered := c.filterFor(k)

	var opts []*option.Option
	if !filtered || len(filters) > 0 {
		entries, err := c.query(k, filters)
		if err != nil {
			return err
		}
		opts = option.Unique(option.Options(k, entries))
	}
	c.sets[k] = opts

	if col.ReplaceOptions(opts) {
		debug.Log("cascade: column %d filters=%v -> %d options", k, filters, len(opts))
	} else {
		debug.Log("cascade: column %d unchanged", k)
	}

	if sel := col.Selected(); !sel.IsNull() && option.IndexOf(opts, sel) < 0 {
		debug.Log("cascade: column %d drops selection %s", k, sel)
		col.ClearSelected()
	}
	return nil
}

// filterFor derives the filter labels for column k and whether column k is
// filtered at all.
func (c *Cascade) filterFor(k int) ([]string, bool) {
	if k >= c.ctl.NumColumns()-1 {
		return nil, false
	}
	parent := c.ctl.columns[k+1]
	if parent.HasSelection() {
		return []string{parent.Selected().Label()}, true
	}
	if _, filtered := c.filterFor(k + 1); !filtered {
		return nil, false
	}
	return option.Labels(c.sets[k+1]), true
}

func (c *Cascade) query(k int, filters []string) ([]option.Entry, error) {
	defer metrics.Timer(metrics.SourceQuery)()
	entries, err := c.sources[k](filters...)
	if err != nil {
		return nil, fmt.Errorf("column %d source: %w", k, err)
	}
	return entries, nil
}

func (c *Cascade) syncField() {
	valid := c.ctl.Disabled() || c.ctl.Valid()
	c.field.set(c.ctl.SelectedValue().Value(), valid)
}
