// Package option defines the selectable items of a cascade select and the
// per-column registry that deduplicates them.
//
// An option plays one of two roles. A value option has a non-empty value and
// belongs to the value column (column 0). A category option has an empty
// value and acts as a filter in a more general column. The null option is
// the sentinel for "nothing selected".
//
// Options compare by (label, value), never by id. The id is assigned once,
// when an option is first registered, and is what lets two structurally
// equal options be recognised as the same individual later on.
package option

import "fmt"

// nullID marks the null option.
const nullID = "option-null"

// Option is an immutable selectable item. Only its id may change, once.
type Option struct {
	value string
	label string
	id    string
}

var null = &Option{id: nullID}

// Null returns the singleton that represents "nothing selected".
func Null() *Option {
	return null
}

// NewValue creates a value option. An empty label defaults to value.
func NewValue(value, label string) *Option {
	if label == "" {
		label = value
	}
	return &Option{value: value, label: label}
}

// NewCategory creates a category option; its value is always empty.
func NewCategory(label string) *Option {
	return &Option{label: label}
}

// Value returns the option value ("" for categories and the null option).
func (o *Option) Value() string {
	if o == nil {
		return ""
	}
	return o.value
}

// Label returns the display label.
func (o *Option) Label() string {
	if o == nil {
		return ""
	}
	return o.label
}

// ID returns the registry-assigned id, or "" for an option that was never
// registered.
func (o *Option) ID() string {
	if o == nil {
		return ""
	}
	return o.id
}

// IsNull reports whether o is the null option (or nil).
func (o *Option) IsNull() bool {
	return o == nil || o == null
}

// IsValue reports whether o is a value option.
func (o *Option) IsValue() bool {
	return !o.IsNull() && o.value != ""
}

// IsCategory reports whether o is a category option.
func (o *Option) IsCategory() bool {
	return !o.IsNull() && o.value == ""
}

// Equal reports structural equality on (label, value). nil equals only nil.
// The null option is equal to any option with an empty label and value.
func (o *Option) Equal(other *Option) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.label == other.label && o.value == other.value
}

// Registered reports whether the option carries an id.
func (o *Option) Registered() bool {
	return o.ID() != ""
}

// assignID sets the id from seq unless one is already set.
func (o *Option) assignID(seq *Sequence) {
	if o == nil || o.id != "" {
		return
	}
	o.id = seq.Next()
}

func (o *Option) String() string {
	switch {
	case o.IsNull():
		return "<null>"
	case o.IsCategory():
		return fmt.Sprintf("category(%q)", o.label)
	case o.label == o.value:
		return fmt.Sprintf("value(%q)", o.value)
	default:
		return fmt.Sprintf("value(%q, %q)", o.value, o.label)
	}
}

// Labels returns the labels of opts in order.
func Labels(opts []*Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Label()
	}
	return out
}

// SameSet reports whether a and b hold structurally equal options in the
// same order.
func SameSet(a, b []*Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// IndexOf returns the position of the first option in opts equal to o, or -1.
func IndexOf(opts []*Option, o *Option) int {
	if o == nil {
		return -1
	}
	for i, it := range opts {
		if it.Equal(o) {
			return i
		}
	}
	return -1
}

// Unique returns opts without structural duplicates, keeping first
// occurrences in order.
func Unique(opts []*Option) []*Option {
	seen := make(map[key]struct{}, len(opts))
	out := make([]*Option, 0, len(opts))
	for _, o := range opts {
		if o == nil {
			continue
		}
		k := keyOf(o)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, o)
	}
	return out
}
