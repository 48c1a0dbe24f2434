package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/cascade/internal/datasource"
	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/watcher"
)

// reloadTimeout bounds one catalog reload.
const reloadTimeout = 10 * time.Second

// CatalogChangedMsg is sent when a watched catalog file changed on disk.
type CatalogChangedMsg struct{}

// CatalogLoadedMsg carries a freshly loaded catalog back to the event loop.
type CatalogLoadedMsg struct {
	Catalog *datasource.Catalog
	Err     error
}

// Reloader re-reads catalog files into the catalog the cascade sources read
// from. The swap happens on the event loop; only the file I/O runs in a
// command.
type Reloader struct {
	catalog *datasource.Catalog
	paths   []string
	watcher *watcher.Watcher
	load    func(ctx context.Context, paths []string) (*datasource.Catalog, error)
}

// NewReloader creates a reloader for catalog, loaded from paths. w may be
// nil, in which case only manual reloads happen.
func NewReloader(catalog *datasource.Catalog, paths []string, w *watcher.Watcher) *Reloader {
	return &Reloader{
		catalog: catalog,
		paths:   paths,
		watcher: w,
		load:    datasource.LoadAll,
	}
}

// Watching reports whether file changes trigger reloads.
func (r *Reloader) Watching() bool {
	return r != nil && r.watcher != nil
}

// waitCmd blocks until the watcher reports a change.
func (r *Reloader) waitCmd() tea.Cmd {
	if !r.Watching() {
		return nil
	}
	ch := r.watcher.Changed()
	return func() tea.Msg {
		<-ch
		return CatalogChangedMsg{}
	}
}

// loadCmd reads the catalog files off the event loop.
func (r *Reloader) loadCmd() tea.Cmd {
	if r == nil {
		return nil
	}
	load, paths := r.load, r.paths
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		cat, err := load(ctx, paths)
		return CatalogLoadedMsg{Catalog: cat, Err: err}
	}
}

// apply swaps next into the live catalog and reports what changed. The
// catalog is left alone when nothing changed.
func (r *Reloader) apply(next *datasource.Catalog) datasource.CatalogDiff {
	diff := datasource.DiffCatalogs(r.catalog, next)
	debug.Log("ui: %s", diff.Summary())
	if diff.HasChanges() {
		*r.catalog = *next
	}
	return diff
}
