// Package observable provides the change-notifying primitives that bind
// presentation models to views.
//
// Both primitives deliver notifications synchronously, in listener
// registration order, before the mutating call returns. A listener always
// observes the state exactly as it will remain once the call completes.
//
// Usage:
//
//	visible := observable.NewValue(false)
//	visible.OnChange(func(now, was bool) {
//	    // called once immediately with (false, false), then on every Set
//	})
//	visible.Set(true)
package observable

// Value is a single mutable slot with change notification.
type Value[T any] struct {
	value     T
	listeners []*func(now, was T)
}

// NewValue creates a value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores x and notifies every listener with (x, previous).
// Writes of an equal value still notify.
func (v *Value[T]) Set(x T) {
	was := v.value
	v.value = x
	for _, fn := range snapshot(v.listeners) {
		(*fn)(x, was)
	}
}

// OnChange registers fn and immediately calls it once with (current, current)
// so the listener never needs a separate read of the initial state.
// The returned function removes the listener.
func (v *Value[T]) OnChange(fn func(now, was T)) func() {
	if fn == nil {
		return func() {}
	}
	p := &fn
	v.listeners = append(v.listeners, p)
	fn(v.value, v.value)
	return func() {
		v.listeners = remove(v.listeners, p)
	}
}

// Listeners returns the number of registered listeners.
func (v *Value[T]) Listeners() int {
	return len(v.listeners)
}

// snapshot copies a listener slice so listeners added or removed during a
// notification do not affect the one in flight.
func snapshot[F any](fns []*F) []*F {
	if len(fns) == 0 {
		return nil
	}
	return append([]*F(nil), fns...)
}

func remove[F any](fns []*F, p *F) []*F {
	for i, fn := range fns {
		if fn == p {
			return append(fns[:i:i], fns[i+1:]...)
		}
	}
	return fns
}
