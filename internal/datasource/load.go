package datasource

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/cascade/pkg/debug"
	"github.com/vanderheijden86/cascade/pkg/metrics"
)

// LoadFile loads the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	src, err := NewSource(path)
	if err != nil {
		return nil, err
	}
	return LoadFromSource(src)
}

// LoadFromSource loads a catalog from a specific DataSource, dispatching to
// the appropriate reader based on source type.
func LoadFromSource(source DataSource) (*Catalog, error) {
	defer metrics.Timer(metrics.SourceLoad)()
	start := time.Now()

	var (
		cat *Catalog
		err error
	)
	switch source.Type {
	case SourceTypeSQLite:
		var reader *SQLiteReader
		reader, err = NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		cat, err = reader.LoadCatalog()

	case SourceTypeJSON, SourceTypeYAML:
		var data []byte
		data, err = os.ReadFile(source.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", source.Path, err)
		}
		if source.Type == SourceTypeJSON {
			cat, err = decodeJSON(data)
		} else {
			cat, err = decodeYAML(data)
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source.Path, err)
	}

	debug.LogTiming("load "+source.Path, time.Since(start))
	return cat, nil
}

// decodeJSON accepts either a catalog object or a bare array of items.
func decodeJSON(data []byte) (*Catalog, error) {
	data = bytes.TrimSpace(data)
	cat := &Catalog{}
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &cat.Items); err != nil {
			return nil, err
		}
		return cat, nil
	}
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// decodeYAML accepts either a catalog mapping or a bare sequence of items.
func decodeYAML(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	cat := &Catalog{}
	if len(doc.Content) == 0 {
		return cat, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := root.Decode(&cat.Items); err != nil {
			return nil, err
		}
		return cat, nil
	}
	if err := root.Decode(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadAll loads every path in parallel and merges the catalogs in argument
// order. The first failure cancels the rest.
func LoadAll(ctx context.Context, paths []string) (*Catalog, error) {
	sources, err := DiscoverSources(paths, DiscoveryOptions{Logger: func(msg string) { debug.Log("%s", msg) }})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no catalog sources in %v", paths)
	}

	results := make([]*Catalog, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cat, err := LoadFromSource(src)
			if err != nil {
				return err
			}
			results[i] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Catalog{Name: results[0].Name}
	for _, cat := range results {
		merged.Merge(cat)
	}
	debug.Log("datasource: loaded %d items from %d sources", len(merged.Items), len(sources))
	return merged, nil
}
