// Package column pairs an option registry with a selection for one column of
// a cascade select.
package column

import (
	"time"

	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/observable"
	"github.com/vanderheijden86/cascade/pkg/option"
	"github.com/vanderheijden86/cascade/pkg/selection"
)

// Scheduler runs a deferred step after delay. Implementations must run fn on
// the same goroutine that owns the column state.
type Scheduler interface {
	Defer(delay time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(delay time.Duration, fn func())

// Defer implements Scheduler.
func (f SchedulerFunc) Defer(delay time.Duration, fn func()) { f(delay, fn) }

// Immediate runs deferred steps synchronously. Final state and notification
// order are the same as with a real timer.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) { fn() })

// Staging controls how large option lists are inserted.
type Staging struct {
	// Threshold is the list length above which insertion is staged behind
	// the loading flag. 0 disables staging.
	Threshold int
	// PlaceholderDelay lets the loading placeholder render before insertion.
	PlaceholderDelay time.Duration
	// SettleDelay keeps the placeholder up while the view catches up.
	SettleDelay time.Duration
}

// DefaultStaging returns the stock staging parameters.
func DefaultStaging() Staging {
	return Staging{
		Threshold:        50,
		PlaceholderDelay: 80 * time.Millisecond,
		SettleDelay:      300 * time.Millisecond,
	}
}

// ColumnOption configures a Column.
type ColumnOption func(*Column)

// WithStaging sets the staging parameters.
func WithStaging(s Staging) ColumnOption {
	return func(c *Column) {
		c.staging = s
	}
}

// WithScheduler sets the scheduler used for staged insertion.
func WithScheduler(s Scheduler) ColumnOption {
	return func(c *Column) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// Column is one column of a cascade: a registry of the currently visible
// options, the committed selection, and the cursor shared with the other
// columns of the same select.
type Column struct {
	index     int
	registry  *option.Registry
	selection *selection.Controller
	cursor    *selection.Controller
	loading   *observable.Value[bool]

	staging   Staging
	scheduler Scheduler

	// generation invalidates staged batches queued before a clear
	generation int
	pending    int
	// queued holds staged batches not inserted yet, in insertion order
	queued []*stagedBatch
}

type stagedBatch struct {
	opts []*option.Option
}

// New creates column index. seq mints option ids and cursor is the shared
// cursor-position controller (a private one is created when nil).
func New(index int, seq *option.Sequence, cursor *selection.Controller, opts ...ColumnOption) *Column {
	if cursor == nil {
		cursor = selection.New()
	}
	c := &Column{
		index:     index,
		registry:  option.NewRegistry(seq),
		selection: selection.New(),
		cursor:    cursor,
		loading:   observable.NewValue(false),
		scheduler: Immediate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Index returns the column position; 0 is the value column.
func (c *Column) Index() int {
	return c.index
}

// IsValueColumn reports whether this column holds value options.
func (c *Column) IsValueColumn() bool {
	return c.index == 0
}

// Options returns a copy of the live options.
func (c *Column) Options() []*option.Option {
	return c.registry.Options()
}

// Count returns the number of live options.
func (c *Column) Count() int {
	return c.registry.Count()
}

// Contains reports whether an option equal to o is live in this column.
func (c *Column) Contains(o *option.Option) bool {
	return c.registry.Contains(o)
}

// Lookup returns the live instance equal to o.
func (c *Column) Lookup(o *option.Option) (*option.Option, bool) {
	return c.registry.Lookup(o)
}

// Registry exposes the underlying registry.
func (c *Column) Registry() *option.Registry {
	return c.registry
}

// AddOptions adds opts in order with registry semantics. Lists longer than
// the staging threshold are inserted through the scheduler while Loading
// reports true.
func (c *Column) AddOptions(opts []*option.Option) {
	if len(opts) == 0 {
		return
	}
	if c.staging.Threshold <= 0 || len(opts) <= c.staging.Threshold {
		c.addNow(opts)
		return
	}

	batch := &stagedBatch{opts: append([]*option.Option(nil), opts...)}
	c.queued = append(c.queued, batch)
	gen := c.generation
	c.pending++
	c.loading.Set(true)
	debug.Log("column %d: staging %d options", c.index, len(batch.opts))

	c.scheduler.Defer(c.staging.PlaceholderDelay, func() {
		if gen == c.generation {
			c.unqueue(batch)
			c.addNow(batch.opts)
		}
		c.scheduler.Defer(c.staging.SettleDelay, c.settle)
	})
}

func (c *Column) unqueue(b *stagedBatch) {
	for i, q := range c.queued {
		if q == b {
			c.queued = append(c.queued[:i], c.queued[i+1:]...)
			return
		}
	}
}

func (c *Column) addNow(opts []*option.Option) {
	for _, o := range opts {
		c.registry.Add(o)
	}
}

func (c *Column) settle() {
	if c.pending > 0 {
		c.pending--
	}
	if c.pending == 0 {
		c.loading.Set(false)
	}
}

// DelOptions removes opts by structural equality.
func (c *Column) DelOptions(opts []*option.Option) {
	for _, o := range opts {
		c.registry.Del(o)
	}
}

// ClearOptions removes every live option, one notification per option, and
// drops staged batches that have not been inserted yet.
func (c *Column) ClearOptions() {
	c.generation++
	c.queued = nil
	c.registry.Clear()
}

// ReplaceOptions makes opts the live option set. It returns false without
// touching the registry when opts is structurally identical, in order, to
// the current (or pending) set.
func (c *Column) ReplaceOptions(opts []*option.Option) bool {
	if option.SameSet(c.desired(), opts) {
		return false
	}
	c.ClearOptions()
	c.AddOptions(opts)
	return true
}

// desired returns the set the column will hold once staged batches land:
// the live options followed by the queued ones not already present.
func (c *Column) desired() []*option.Option {
	out := c.registry.Options()
	for _, b := range c.queued {
		for _, o := range b.opts {
			if o == nil || o.Equal(option.Null()) || option.IndexOf(out, o) >= 0 {
				continue
			}
			out = append(out, o)
		}
	}
	return out
}

// Selected returns the committed selection.
func (c *Column) Selected() *option.Option {
	return c.selection.Selected()
}

// HasSelection reports whether a non-null option is selected.
func (c *Column) HasSelection() bool {
	return c.selection.HasSelection()
}

// Select commits o. A live option equal to o is selected in its place so
// the selection carries the registered id. The null option, or any option
// equal to it, clears.
func (c *Column) Select(o *option.Option) {
	if o == nil {
		return
	}
	if o.Equal(option.Null()) {
		c.selection.Clear()
		return
	}
	if reg, ok := c.registry.Lookup(o); ok {
		o = reg
	}
	c.selection.Select(o)
}

// ClearSelected resets the selection to the null option.
func (c *Column) ClearSelected() {
	c.selection.Clear()
}

// OnSelected registers fn for selection changes, with replay.
func (c *Column) OnSelected(fn func(now, was *option.Option)) func() {
	return c.selection.OnSelected(fn)
}

// SelectedDisabled reports whether the selection is frozen.
func (c *Column) SelectedDisabled() bool {
	return c.selection.Disabled()
}

// SetSelectedDisabled freezes or unfreezes the selection.
func (c *Column) SetSelectedDisabled(d bool) {
	c.selection.SetDisabled(d)
}

// OnSelectedDisabledChanged registers fn for disabled flag changes, with replay.
func (c *Column) OnSelectedDisabledChanged(fn func(now, was bool)) func() {
	return c.selection.OnDisabledChanged(fn)
}

// Cursor returns the cursor controller shared with sibling columns.
func (c *Column) Cursor() *selection.Controller {
	return c.cursor
}

// OnOptionAdded registers fn for options entering the column.
func (c *Column) OnOptionAdded(fn func(*option.Option)) func() {
	return c.registry.OnAdd(fn)
}

// OnOptionRemoved registers fn for options leaving the column.
func (c *Column) OnOptionRemoved(fn func(*option.Option)) func() {
	return c.registry.OnDel(fn)
}

// Loading reports whether a staged insertion is in flight.
func (c *Column) Loading() bool {
	return c.loading.Get()
}

// OnLoadingChanged registers fn for loading flag changes, with replay.
func (c *Column) OnLoadingChanged(fn func(now, was bool)) func() {
	return c.loading.OnChange(fn)
}
