package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/cascade/internal/datasource"
	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/interaction"
)

func placesCatalog() *datasource.Catalog {
	return &datasource.Catalog{
		Name:    "places",
		Columns: []string{"City", "Country", "Continent"},
		Items: []datasource.Item{
			{Value: "paris", Label: "Paris", Categories: []string{"France", "Europe"}},
			{Value: "lyon", Label: "Lyon", Categories: []string{"France", "Europe"}},
			{Value: "berlin", Label: "Berlin", Categories: []string{"Germany", "Europe"}},
			{Value: "tokyo", Label: "Tokyo", Categories: []string{"Japan", "Asia"}},
		},
	}
}

type fixture struct {
	cat   *datasource.Catalog
	sched *Scheduler
	cas   *cascade.Cascade
	m     Model
}

func newFixture(t *testing.T, required bool, staging column.Staging) *fixture {
	t.Helper()
	cat := placesCatalog()
	sched := NewScheduler()
	ctl := cascade.New(cat.Depth(),
		cascade.WithRequired(required),
		cascade.WithColumnOptions(column.WithScheduler(sched), column.WithStaging(staging)),
	)
	cas, err := cascade.Bind(ctl, cat.Sources(cat.Depth()))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	h := interaction.New(cas, interaction.DefaultConfig())
	titles := []string{cat.Title(0), cat.Title(1), cat.Title(2)}
	m := New(cas, h, Options{Titles: titles, Scheduler: sched})
	return &fixture{cat: cat, sched: sched, cas: cas, m: m}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = f.m.Update(keyMsg(k))
		f.m = updated.(Model)
	}
	return cmd
}

func TestClosedArrowSelectsAndEnterSubmits(t *testing.T) {
	f := newFixture(t, false, column.Staging{})

	f.press("down", "down")
	if got := f.cas.Field().Text(); got != "lyon" {
		t.Fatalf("expected field lyon, got %q", got)
	}

	cmd := f.press("enter")
	if cmd == nil || !f.m.Quitting() {
		t.Fatal("expected enter to quit")
	}
	v, ok := f.m.Chosen()
	if !ok || v.Value() != "lyon" {
		t.Errorf("expected chosen lyon, got %v (%v)", v, ok)
	}
}

func TestEscCancels(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	f.press("down")
	f.press("esc")
	if !f.m.Quitting() {
		t.Fatal("expected esc to quit while closed")
	}
	if _, ok := f.m.Chosen(); ok {
		t.Error("expected no chosen value after esc")
	}
}

func TestRequiredBlocksSubmit(t *testing.T) {
	f := newFixture(t, true, column.Staging{})

	if view := f.m.View(); !strings.Contains(view, "*") || !strings.Contains(view, "!") {
		t.Errorf("expected required and invalid markers in %q", view)
	}

	f.press("enter")
	if f.m.Quitting() {
		t.Fatal("expected enter without a value to keep running")
	}
	if f.m.Status() != "a value is required" {
		t.Errorf("unexpected status %q", f.m.Status())
	}

	f.press("down", "enter")
	if !f.m.Quitting() {
		t.Error("expected enter with a value to quit")
	}
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t, false, column.Staging{})

	f.press("space")
	f.press("q")
	if f.m.Quitting() {
		t.Fatal("expected q to jump, not quit, while open")
	}

	f.press("esc", "q")
	if !f.m.Quitting() {
		t.Fatal("expected q to quit while closed")
	}

	g := newFixture(t, false, column.Staging{})
	g.press("space", "ctrl+c")
	if !g.m.Quitting() {
		t.Fatal("expected ctrl+c to quit while open")
	}
}

func TestOpenViewOrdersColumnsGeneralFirst(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	f.press("space")

	view := f.m.View()
	cont := strings.Index(view, "Continent")
	country := strings.Index(view, "Country")
	city := strings.Index(view, "City")
	if cont < 0 || country < 0 || city < 0 {
		t.Fatalf("expected all column titles in view:\n%s", view)
	}
	if !(cont < country && country < city) {
		t.Errorf("expected Continent, Country, City left to right; got %d %d %d", cont, country, city)
	}
	for _, label := range []string{"Europe", "France", "Paris"} {
		if !strings.Contains(view, label) {
			t.Errorf("expected %q in view", label)
		}
	}
}

func TestOpenNarrowsThroughKeys(t *testing.T) {
	f := newFixture(t, false, column.Staging{})

	// open, move to the continent column, pick Asia
	f.press("space", "left", "left", "A", "enter")
	ctl := f.cas.Controller()
	cont, _ := ctl.Column(2)
	if got := cont.Selected().Label(); got != "Asia" {
		t.Fatalf("expected Asia, got %q", got)
	}
	city := ctl.ValueColumn()
	if city.Count() != 1 || city.Options()[0].Label() != "Tokyo" {
		t.Errorf("expected only Tokyo, got %v", city.Options())
	}
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t, false, column.Staging{})

	f.press("?")
	if !f.m.showHelp {
		t.Fatal("expected help overlay")
	}
	if view := f.m.View(); !strings.Contains(view, "to close") {
		t.Errorf("expected help footer in overlay:\n%s", view)
	}

	f.press("down")
	if f.cas.Field().Text() != "" {
		t.Error("expected keys to be ignored under the overlay")
	}

	f.press("?")
	if f.m.showHelp {
		t.Error("expected ? to dismiss help")
	}
}

func TestCopyValue(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	f := newFixture(t, false, column.Staging{})
	f.press("ctrl+y")
	if f.m.Status() != "nothing to copy" {
		t.Errorf("unexpected status %q", f.m.Status())
	}

	f.press("down", "ctrl+y")
	if copied != "paris" {
		t.Errorf("expected paris copied, got %q", copied)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	f.press("ctrl+y")
	if !strings.Contains(f.m.Status(), "no clipboard") {
		t.Errorf("expected clipboard error, got %q", f.m.Status())
	}
}

func TestStagedColumnsLoadThroughScheduler(t *testing.T) {
	f := newFixture(t, false, column.Staging{Threshold: 2})

	city := f.cas.Controller().ValueColumn()
	if !city.Loading() || city.Count() != 0 {
		t.Fatalf("expected city column staged, loading=%v count=%d", city.Loading(), city.Count())
	}
	if f.sched.Pending() == 0 {
		t.Fatal("expected queued steps")
	}
	if cmd := f.m.Init(); cmd == nil {
		t.Fatal("expected Init to flush queued steps")
	}
	if f.sched.Pending() != 0 {
		t.Fatal("expected Init to drain the queue")
	}

	f.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.press("space")
	if view := f.m.View(); !strings.Contains(view, "loading") {
		t.Errorf("expected loading placeholder:\n%s", view)
	}
}

func TestDeferredMsgRunsOnUpdate(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	ran := false
	updated, _ := f.m.Update(deferredMsg{fn: func() { ran = true }})
	f.m = updated.(Model)
	if !ran {
		t.Error("expected deferred step to run")
	}
}

func TestReloadAppliesCatalog(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	r := NewReloader(f.cat, []string{"places.json"}, nil)
	f.m.opts.Reloader = r

	f.press("down")
	if f.cas.Field().Text() != "paris" {
		t.Fatal("expected paris selected")
	}

	next := placesCatalog()
	next.Items = next.Items[1:]
	next.Items = append(next.Items, datasource.Item{Value: "osaka", Label: "Osaka", Categories: []string{"Japan", "Asia"}})

	updated, _ := f.m.Update(CatalogLoadedMsg{Catalog: next})
	f.m = updated.(Model)

	if !strings.HasPrefix(f.m.Status(), "catalog reloaded: +1 -1") {
		t.Errorf("unexpected status %q", f.m.Status())
	}
	if f.cas.Field().Text() != "" {
		t.Errorf("expected removed selection cleared, got %q", f.cas.Field().Text())
	}
	if got := f.cas.Controller().ValueColumn().Count(); got != 4 {
		t.Errorf("expected 4 cities, got %d", got)
	}

	updated, _ = f.m.Update(CatalogLoadedMsg{Err: errors.New("boom")})
	f.m = updated.(Model)
	if !strings.Contains(f.m.Status(), "boom") {
		t.Errorf("expected reload error, got %q", f.m.Status())
	}
}

func TestReloadKey(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	f.press("ctrl+r")
	if f.m.Status() != "no catalog files to reload" {
		t.Errorf("unexpected status %q", f.m.Status())
	}

	r := NewReloader(f.cat, []string{"places.json"}, nil)
	r.load = func(context.Context, []string) (*datasource.Catalog, error) {
		return placesCatalog(), nil
	}
	f.m.opts.Reloader = r

	cmd := f.press("ctrl+r")
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg := r.loadCmd()()
	updated, _ := f.m.Update(msg)
	f.m = updated.(Model)
	if !strings.HasPrefix(f.m.Status(), "catalog unchanged") {
		t.Errorf("unexpected status %q", f.m.Status())
	}
}

func TestViewEmptyWhenQuitting(t *testing.T) {
	f := newFixture(t, false, column.Staging{})
	f.press("ctrl+c")
	if f.m.View() != "" {
		t.Error("expected empty view after quit")
	}
}
