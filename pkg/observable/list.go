package observable

// List is a mutable ordered collection that notifies on add and delete.
// It keeps insertion order and never sorts. The raw list has no dedup;
// set semantics are layered on top by option.Registry.
type List[T any] struct {
	items []T
	equal func(a, b T) bool
	onAdd []*func(T)
	onDel []*func(T)
}

// NewList creates a list that compares items with ==.
func NewList[T comparable]() *List[T] {
	return NewListFunc(func(a, b T) bool { return a == b })
}

// NewListFunc creates a list that compares items with equal.
func NewListFunc[T any](equal func(a, b T) bool) *List[T] {
	return &List[T]{equal: equal}
}

// Add appends item and notifies add listeners.
func (l *List[T]) Add(item T) {
	l.items = append(l.items, item)
	for _, fn := range snapshot(l.onAdd) {
		(*fn)(item)
	}
}

// Del removes the first item equal to item and notifies delete listeners.
// Removing an item that is not present is a silent no-op.
func (l *List[T]) Del(item T) bool {
	idx := l.Index(item)
	if idx < 0 {
		return false
	}
	removed := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	for _, fn := range snapshot(l.onDel) {
		(*fn)(removed)
	}
	return true
}

// Count returns the current length.
func (l *List[T]) Count() int {
	return len(l.items)
}

// Items returns a copy of the items in insertion order. Mutating the
// returned slice does not affect the list.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// At returns the item at index i, or the zero value if out of bounds.
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Index returns the position of the first item equal to item, or -1.
func (l *List[T]) Index(item T) int {
	for i, it := range l.items {
		if l.equal(it, item) {
			return i
		}
	}
	return -1
}

// Contains reports whether an item equal to item is present.
func (l *List[T]) Contains(item T) bool {
	return l.Index(item) >= 0
}

// OnAdd registers an add listener. Unlike Value.OnChange it does not replay
// existing items.
func (l *List[T]) OnAdd(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	p := &fn
	l.onAdd = append(l.onAdd, p)
	return func() { l.onAdd = remove(l.onAdd, p) }
}

// OnDel registers a delete listener.
func (l *List[T]) OnDel(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	p := &fn
	l.onDel = append(l.onDel, p)
	return func() { l.onDel = remove(l.onDel, p) }
}
