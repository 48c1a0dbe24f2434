package option

import "strings"

// Entry is what a data source returns for one option. Sources produce either
// a bare string or a value/label pair; both shapes are normalised into an
// Entry at the source boundary so the core never sees the difference.
type Entry struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Text is the string shape: value and label are the same.
func Text(s string) Entry {
	return Entry{Value: s, Label: s}
}

// Pair is the object shape. An empty label defaults to value.
func Pair(value, label string) Entry {
	if label == "" {
		label = value
	}
	return Entry{Value: value, Label: label}
}

// Texts converts a list of strings into entries.
func Texts(items ...string) []Entry {
	out := make([]Entry, len(items))
	for i, s := range items {
		out[i] = Text(s)
	}
	return out
}

// DisplayLabel returns the label, falling back to the value.
func (e Entry) DisplayLabel() string {
	if strings.TrimSpace(e.Label) == "" {
		return e.Value
	}
	return e.Label
}

// ValueOption builds the value option for this entry.
func (e Entry) ValueOption() *Option {
	return NewValue(e.Value, e.DisplayLabel())
}

// CategoryOption builds the category option for this entry. Categories are
// identified by label alone.
func (e Entry) CategoryOption() *Option {
	return NewCategory(e.DisplayLabel())
}

// Options converts entries for the given column: value options for column 0,
// category options otherwise. Value entries without a value and category
// entries without a label are skipped.
func Options(column int, entries []Entry) []*Option {
	out := make([]*Option, 0, len(entries))
	for _, e := range entries {
		switch {
		case column == 0 && e.Value != "":
			out = append(out, e.ValueOption())
		case column > 0 && e.DisplayLabel() != "":
			out = append(out, e.CategoryOption())
		}
	}
	return out
}
