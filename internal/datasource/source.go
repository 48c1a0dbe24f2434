// Package datasource discovers, validates and loads the catalogs a cascade
// select draws its options from. Catalogs are read from JSON, YAML and SQLite
// files.
package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnknownSource is returned for a file whose format cannot be detected.
var ErrUnknownSource = errors.New("unknown catalog format")

// SourceType identifies the file format of a catalog source
type SourceType string

const (
	// SourceTypeJSON is a JSON document (.json)
	SourceTypeJSON SourceType = "json"
	// SourceTypeYAML is a YAML document (.yaml, .yml)
	SourceTypeYAML SourceType = "yaml"
	// SourceTypeSQLite is a SQLite database with an items table (.db, .sqlite)
	SourceTypeSQLite SourceType = "sqlite"
)

// DetectType returns the source type for path based on its extension.
func DetectType(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceTypeJSON, nil
	case ".yaml", ".yml":
		return SourceTypeYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSource, path)
}

// DataSource represents one catalog file
type DataSource struct {
	// Type identifies the source format
	Type SourceType `json:"type"`
	// Path is the path to the source file
	Path string `json:"path"`
	// ModTime is the last modification time of the source
	ModTime time.Time `json:"mod_time"`
	// Size is the file size in bytes
	Size int64 `json:"size"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// ItemCount is the number of items in the source (set during validation)
	ItemCount int `json:"item_count"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, mod=%s, items=%d, %s)",
		s.Path, s.Type, s.ModTime.Format(time.RFC3339), s.ItemCount, status)
}

// NewSource stats path and returns its DataSource.
func NewSource(path string) (DataSource, error) {
	typ, err := DetectType(path)
	if err != nil {
		return DataSource{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return DataSource{
		Type:    typ,
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// ValidateAfterDiscovery runs validation on each discovered source
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives progress messages (optional)
	Logger func(msg string)
}

// DiscoverSources expands paths into catalog sources. Directories contribute
// every catalog file directly inside them, in name order; files are taken as
// given. Hidden files are skipped.
func DiscoverSources(paths []string, opts DiscoveryOptions) ([]DataSource, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}

	var sources []DataSource
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			src, err := NewSource(p)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
			continue
		}

		found, err := discoverDir(p)
		if err != nil {
			return nil, err
		}
		opts.Logger(fmt.Sprintf("Found %d catalogs in %s", len(found), p))
		sources = append(sources, found...)
	}

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			if err := ValidateSource(&sources[i]); err != nil {
				opts.Logger(fmt.Sprintf("Validation failed for %s: %v", sources[i].Path, err))
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}
	return sources, nil
}

func discoverDir(dir string) ([]DataSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}
	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := DetectType(path); err != nil {
			continue
		}
		src, err := NewSource(path)
		if err != nil {
			continue
		}
		sources = append(sources, src)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// ValidateSource loads s and records whether it holds at least one item.
func ValidateSource(s *DataSource) error {
	cat, err := LoadFromSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.ItemCount = len(cat.Items)
	if s.ItemCount == 0 {
		s.Valid = false
		s.ValidationError = "no items"
		return fmt.Errorf("%s: no items", s.Path)
	}
	s.Valid = true
	s.ValidationError = ""
	return nil
}
