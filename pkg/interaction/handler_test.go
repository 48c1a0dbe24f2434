package interaction

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/option"
)

func list(labels ...string) cascade.DataFunc {
	return func(...string) ([]option.Entry, error) {
		return option.Texts(labels...), nil
	}
}

// regions maps countries to regions for a two-column fixture.
var regions = map[string]string{
	"Austria": "Europe",
	"Égypte":  "Africa",
	"France":  "Europe",
	"Kenya":   "Africa",
}

func regionSources() []cascade.DataFunc {
	values := func(filters ...string) ([]option.Entry, error) {
		var out []option.Entry
		for _, c := range []string{"Austria", "Égypte", "France", "Kenya"} {
			if len(filters) == 0 || filters[0] == regions[c] {
				out = append(out, option.Text(c))
			}
		}
		return out, nil
	}
	return []cascade.DataFunc{values, list("Europe", "Africa")}
}

func newHandler(t *testing.T, cfg Config, sources ...cascade.DataFunc) (*Handler, *cascade.Cascade) {
	t.Helper()
	c, err := cascade.Bind(cascade.New(len(sources)), sources)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return New(c, cfg), c
}

func press(t *testing.T, h *Handler, keys ...string) Result {
	t.Helper()
	var res Result
	for _, k := range keys {
		var err error
		res, err = h.HandleKey(k)
		if err != nil {
			t.Fatalf("key %q: %v", k, err)
		}
	}
	return res
}

func cursorLabel(h *Handler) string {
	return h.ctl.CursorPosition().Label()
}

func TestClosedArrowDownEndHome(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b", "c"))
	ctl := c.Controller()

	press(t, h, "ArrowDown")
	if ctl.SelectedValue().Value() != "a" || cursorLabel(h) != "a" {
		t.Fatalf("expected a selected with cursor, got %s cursor %q", ctl.SelectedValue(), cursorLabel(h))
	}
	press(t, h, "End")
	if ctl.SelectedValue().Value() != "c" || cursorLabel(h) != "c" {
		t.Errorf("expected c after End, got %s cursor %q", ctl.SelectedValue(), cursorLabel(h))
	}
	press(t, h, "Home")
	if ctl.SelectedValue().Value() != "a" || cursorLabel(h) != "a" {
		t.Errorf("expected a after Home, got %s cursor %q", ctl.SelectedValue(), cursorLabel(h))
	}
	if ctl.OptionsVisible() {
		t.Error("expected list to stay closed")
	}
}

func TestClosedBoundaryIsNoOp(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b"))
	press(t, h, "down", "down", "down")
	if got := c.Controller().SelectedValue().Value(); got != "b" {
		t.Errorf("expected to stop at b, got %q", got)
	}
	press(t, h, "up", "up", "up")
	if got := c.Controller().SelectedValue().Value(); got != "a" {
		t.Errorf("expected to stop at a, got %q", got)
	}
}

func TestClosedCursorCanStayPut(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CursorFollowsSelection = false
	h, _ := newHandler(t, cfg, list("a", "b"))
	press(t, h, "down")
	if !h.ctl.CursorPosition().IsNull() {
		t.Errorf("expected cursor untouched, got %q", cursorLabel(h))
	}
}

func TestClosedPassThroughAndSwallow(t *testing.T) {
	h, _ := newHandler(t, DefaultConfig(), list("a", "b"))

	for _, k := range []string{"enter", "Tab", "Escape"} {
		if res := press(t, h, k); res.Consumed {
			t.Errorf("expected %q to pass through", k)
		}
	}

	res := press(t, h, "x")
	if !res.Consumed || res.Action != ActionNone {
		t.Errorf("expected x to be swallowed, got %+v", res)
	}
	if cursorLabel(h) != "a" {
		t.Errorf("expected lazy cursor init on first option, got %q", cursorLabel(h))
	}
}

func TestClosedPassThroughInitsCursor(t *testing.T) {
	for _, k := range []string{"enter", "Tab", "Escape"} {
		t.Run(k, func(t *testing.T) {
			h, c := newHandler(t, DefaultConfig(), list("a", "b"))
			if res := press(t, h, k); res.Consumed {
				t.Errorf("expected %q to pass through", k)
			}
			if cursorLabel(h) != "a" {
				t.Errorf("expected cursor on first option, got %q", cursorLabel(h))
			}
			if !c.Controller().SelectedValue().IsNull() {
				t.Errorf("expected no value committed, got %s", c.Controller().SelectedValue())
			}
		})
	}
}

func TestOpenAndClose(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b"))
	ctl := c.Controller()

	for _, open := range []string{" ", "alt+down"} {
		res := press(t, h, open)
		if res.Action != ActionOpen || !ctl.OptionsVisible() {
			t.Fatalf("expected %q to open, got %+v", open, res)
		}
		if cursorLabel(h) != "a" {
			t.Errorf("expected cursor on first option, got %q", cursorLabel(h))
		}
		res = press(t, h, "esc")
		if res.Action != ActionClose || !res.Consumed || ctl.OptionsVisible() {
			t.Errorf("expected esc to close, got %+v", res)
		}
	}

	h.Open()
	res := press(t, h, "tab")
	if res.Action != ActionClose || res.Consumed {
		t.Errorf("expected tab to close and pass through, got %+v", res)
	}
}

func TestOpenNavigationWithinColumn(t *testing.T) {
	h, _ := newHandler(t, DefaultConfig(), list("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"))
	h.Open()

	t.Run("up at top is no-op", func(t *testing.T) {
		if res := press(t, h, "up"); res.Action != ActionNone {
			t.Errorf("expected no move, got %+v", res)
		}
		if cursorLabel(h) != "a" {
			t.Errorf("expected cursor a, got %q", cursorLabel(h))
		}
	})

	t.Run("down and page", func(t *testing.T) {
		press(t, h, "down")
		if cursorLabel(h) != "b" {
			t.Errorf("expected b, got %q", cursorLabel(h))
		}
		press(t, h, "PageDown")
		if cursorLabel(h) != "j" {
			t.Errorf("expected page down to clamp at j, got %q", cursorLabel(h))
		}
		press(t, h, "pgup")
		if cursorLabel(h) != "b" {
			t.Errorf("expected b after page up, got %q", cursorLabel(h))
		}
	})

	t.Run("home and end", func(t *testing.T) {
		press(t, h, "end")
		if cursorLabel(h) != "j" {
			t.Errorf("expected j, got %q", cursorLabel(h))
		}
		if res := press(t, h, "down"); res.Action != ActionNone {
			t.Errorf("expected no wrap, got %+v", res)
		}
		press(t, h, "home")
		if cursorLabel(h) != "a" {
			t.Errorf("expected a, got %q", cursorLabel(h))
		}
	})
}

func TestOpenCommitValueAutoCloses(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b"))
	h.Open()
	press(t, h, "down")
	res := press(t, h, "enter")
	if res.Action != ActionClose {
		t.Errorf("expected auto close, got %+v", res)
	}
	if c.Controller().SelectedValue().Value() != "b" {
		t.Errorf("expected b committed, got %s", c.Controller().SelectedValue())
	}

	cfg := DefaultConfig()
	cfg.AutoClose = false
	h, c = newHandler(t, cfg, list("a", "b"))
	h.Open()
	res = press(t, h, " ")
	if res.Action != ActionSelect || !c.Controller().OptionsVisible() {
		t.Errorf("expected list to stay open, got %+v", res)
	}
}

func TestOpenColumnsAndCascade(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), regionSources()...)
	ctl := c.Controller()
	h.Open()

	if res := press(t, h, "right"); res.Action != ActionNone {
		t.Errorf("expected right at value column to be a no-op, got %+v", res)
	}

	press(t, h, "left")
	if h.ActiveColumn() != 1 || cursorLabel(h) != "Europe" {
		t.Fatalf("expected region column with cursor on Europe, got %d %q", h.ActiveColumn(), cursorLabel(h))
	}
	if res := press(t, h, "ArrowLeft"); res.Action != ActionNone {
		t.Errorf("expected left at top column to be a no-op, got %+v", res)
	}

	press(t, h, "down", "enter")
	values, _ := ctl.Column(0)
	if got := option.Labels(values.Options()); len(got) != 2 || got[0] != "Égypte" {
		t.Errorf("expected African countries, got %v", got)
	}

	press(t, h, "enter")
	if got := values.Count(); got != 4 {
		t.Errorf("expected re-confirming Africa to clear the filter, got %d countries", got)
	}

	press(t, h, "enter", "right")
	if cursorLabel(h) != "Égypte" {
		t.Errorf("expected cursor on first African country, got %q", cursorLabel(h))
	}
}

func TestLetterJumpFoldsDiacritics(t *testing.T) {
	h, _ := newHandler(t, DefaultConfig(), regionSources()...)
	h.Open()

	press(t, h, "e")
	if cursorLabel(h) != "Égypte" {
		t.Errorf("expected e to reach Égypte, got %q", cursorLabel(h))
	}
	press(t, h, "K")
	if cursorLabel(h) != "Kenya" {
		t.Errorf("expected K to reach Kenya, got %q", cursorLabel(h))
	}
	if res := press(t, h, "z"); res.Action != ActionNone {
		t.Errorf("expected no match for z, got %+v", res)
	}
}

func TestBackspaceClearsActiveOrAll(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), regionSources()...)
	ctl := c.Controller()
	_ = c.Select(1, option.NewCategory("Europe"))
	_ = c.Select(0, option.NewValue("France", ""))

	press(t, h, "backspace")
	region, _ := ctl.Column(1)
	if !ctl.SelectedValue().IsNull() || !region.HasSelection() {
		t.Errorf("expected only the value cleared")
	}

	cfg := DefaultConfig()
	cfg.BackspaceClearsAll = true
	h, c = newHandler(t, cfg, regionSources()...)
	ctl = c.Controller()
	_ = c.Select(1, option.NewCategory("Europe"))
	_ = c.Select(0, option.NewValue("France", ""))

	press(t, h, "Delete")
	region, _ = ctl.Column(1)
	if !ctl.SelectedValue().IsNull() || region.HasSelection() {
		t.Errorf("expected every column cleared")
	}
}

func TestDisabledIgnoresKeys(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b"))
	c.Controller().SetDisabled(true)
	for _, k := range []string{"down", " ", "backspace", "x"} {
		if res := press(t, h, k); res != (Result{}) {
			t.Errorf("expected %q ignored, got %+v", k, res)
		}
	}
	if c.Controller().OptionsVisible() || !c.Controller().SelectedValue().IsNull() {
		t.Error("expected no state change")
	}
}

func TestCommitErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	values := func(...string) ([]option.Entry, error) {
		if fail {
			return nil, boom
		}
		return option.Texts("a"), nil
	}
	h, _ := newHandler(t, DefaultConfig(), values, list("x"))
	h.Open()
	press(t, h, "left")

	fail = true
	if _, err := h.HandleKey("enter"); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestHandleMsg(t *testing.T) {
	h, c := newHandler(t, DefaultConfig(), list("a", "b"))
	if _, err := h.HandleMsg(tea.KeyMsg{Type: tea.KeyDown}); err != nil {
		t.Fatal(err)
	}
	if c.Controller().SelectedValue().Value() != "a" {
		t.Errorf("expected a, got %s", c.Controller().SelectedValue())
	}
	if _, err := h.HandleMsg(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}); err != nil {
		t.Fatal(err)
	}
	if !c.Controller().OptionsVisible() {
		t.Error("expected space to open")
	}
}

func TestSetActiveColumnOutOfRange(t *testing.T) {
	h, _ := newHandler(t, DefaultConfig(), list("a"))
	if err := h.SetActiveColumn(3); !errors.Is(err, cascade.ErrColumnOutOfRange) {
		t.Errorf("expected ErrColumnOutOfRange, got %v", err)
	}
}

func TestFold(t *testing.T) {
	for in, want := range map[string]string{"Égypte": "egypte", "ÅRHUS": "arhus", "plain": "plain"} {
		if got := fold(in); got != want {
			t.Errorf("fold(%q): expected %q, got %q", in, want, got)
		}
	}
}
