package option

import (
	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/observable"
)

type key struct {
	value, label string
}

func keyOf(o *Option) key {
	return key{value: o.value, label: o.label}
}

// Registry is the per-column option store. It has set semantics for the
// live view and an append-only memory of every option ever added, so that
// re-adding a previously seen (value, label) pair reuses the original
// instance and id for as long as the registry lives.
type Registry struct {
	seq  *Sequence
	live *observable.List[*Option]
	seen map[key]*Option
}

// NewRegistry creates an empty registry minting ids from seq. A nil seq uses
// DefaultSequence.
func NewRegistry(seq *Sequence) *Registry {
	if seq == nil {
		seq = DefaultSequence()
	}
	return &Registry{
		seq: seq,
		live: observable.NewListFunc(func(a, b *Option) bool {
			return a.Equal(b)
		}),
		seen: make(map[key]*Option),
	}
}

// Add registers o and returns the registered instance, which is the
// remembered instance when an equal option was added before. The live view
// only grows (and add listeners only fire) if no equal option is currently
// present. nil and options equal to the null option are ignored.
func (r *Registry) Add(o *Option) *Option {
	if o == nil || o.Equal(Null()) {
		return nil
	}
	k := keyOf(o)
	reg, ok := r.seen[k]
	if !ok {
		reg = o
		reg.assignID(r.seq)
		r.seen[k] = reg
		debug.Log("registry: minted %s for %s", reg.id, reg)
	}
	if !r.live.Contains(reg) {
		r.live.Add(reg)
	}
	return reg
}

// Del removes the option structurally equal to o from the live view. The
// all-time memory keeps it.
func (r *Registry) Del(o *Option) bool {
	if o == nil {
		return false
	}
	return r.live.Del(o)
}

// Clear removes every live option one at a time, in order, firing one
// delete notification per option.
func (r *Registry) Clear() {
	for _, o := range r.live.Items() {
		r.live.Del(o)
	}
}

// Options returns a copy of the live options in insertion order.
func (r *Registry) Options() []*Option {
	return r.live.Items()
}

// Count returns the number of live options.
func (r *Registry) Count() int {
	return r.live.Count()
}

// At returns the live option at index i.
func (r *Registry) At(i int) (*Option, bool) {
	return r.live.At(i)
}

// Index returns the live position of the option equal to o, or -1.
func (r *Registry) Index(o *Option) int {
	if o == nil {
		return -1
	}
	return r.live.Index(o)
}

// Contains reports whether an option equal to o is live.
func (r *Registry) Contains(o *Option) bool {
	return r.Index(o) >= 0
}

// Lookup returns the live instance equal to o.
func (r *Registry) Lookup(o *Option) (*Option, bool) {
	idx := r.Index(o)
	if idx < 0 {
		return nil, false
	}
	return r.live.At(idx)
}

// Seen returns the remembered instance equal to o, live or not.
func (r *Registry) Seen(o *Option) (*Option, bool) {
	if o.IsNull() {
		return nil, false
	}
	reg, ok := r.seen[keyOf(o)]
	return reg, ok
}

// OnAdd registers a listener for options entering the live view.
func (r *Registry) OnAdd(fn func(*Option)) func() {
	return r.live.OnAdd(fn)
}

// OnDel registers a listener for options leaving the live view.
func (r *Registry) OnDel(fn func(*Option)) func() {
	return r.live.OnDel(fn)
}
