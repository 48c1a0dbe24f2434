package cascade

import "github.com/vanderheijden86/cascade/pkg/observable"

// Field is the input a select is bound to: the committed value as text plus
// its validity. Views render it; forms read it.
type Field struct {
	text  *observable.Value[string]
	valid *observable.Value[bool]
}

func newField() *Field {
	return &Field{
		text:  observable.NewValue(""),
		valid: observable.NewValue(true),
	}
}

// Text returns the bound value.
func (f *Field) Text() string {
	return f.text.Get()
}

// Valid reports whether the bound value satisfies the required flag.
func (f *Field) Valid() bool {
	return f.valid.Get()
}

// OnTextChanged registers fn, with replay.
func (f *Field) OnTextChanged(fn func(now, was string)) func() {
	return f.text.OnChange(fn)
}

// OnValidityChanged registers fn, with replay.
func (f *Field) OnValidityChanged(fn func(now, was bool)) func() {
	return f.valid.OnChange(fn)
}

func (f *Field) set(text string, valid bool) {
	if f.text.Get() != text {
		f.text.Set(text)
	}
	if f.valid.Get() != valid {
		f.valid.Set(valid)
	}
}
