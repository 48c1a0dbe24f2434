package datasource

import (
	"fmt"
	"slices"
	"strings"
)

// CatalogDiff represents differences between two loads of a catalog
type CatalogDiff struct {
	// Added contains values present in the new catalog only
	Added []string
	// Removed contains values present in the old catalog only
	Removed []string
	// Changed contains values whose label or categories differ
	Changed []ItemDifference
	// CountA is the number of items in the old catalog
	CountA int
	// CountB is the number of items in the new catalog
	CountB int
}

// ItemDifference describes a value whose presentation changed
type ItemDifference struct {
	Value string `json:"value"`
	Was   string `json:"was"`
	Now   string `json:"now"`
}

// HasChanges returns true if the catalogs differ
func (d CatalogDiff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// Summary returns a one-line summary of the differences
func (d CatalogDiff) Summary() string {
	if !d.HasChanges() {
		return fmt.Sprintf("catalog unchanged (%d items)", d.CountB)
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d", n))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d", n))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d", n))
	}
	return fmt.Sprintf("catalog reloaded: %s (%d items)", strings.Join(parts, " "), d.CountB)
}

// DiffCatalogs compares two catalogs by item value. Results are sorted.
func DiffCatalogs(a, b *Catalog) CatalogDiff {
	var d CatalogDiff
	mapA := index(a)
	mapB := index(b)
	d.CountA = len(mapA)
	d.CountB = len(mapB)

	for v := range mapA {
		if _, ok := mapB[v]; !ok {
			d.Removed = append(d.Removed, v)
		}
	}
	for v, itB := range mapB {
		itA, ok := mapA[v]
		if !ok {
			d.Added = append(d.Added, v)
			continue
		}
		if was, now := describe(itA), describe(itB); was != now {
			d.Changed = append(d.Changed, ItemDifference{Value: v, Was: was, Now: now})
		}
	}

	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.SortFunc(d.Changed, func(x, y ItemDifference) int { return strings.Compare(x.Value, y.Value) })
	return d
}

func index(c *Catalog) map[string]Item {
	m := make(map[string]Item)
	if c == nil {
		return m
	}
	for _, it := range c.Items {
		m[it.Value] = it
	}
	return m
}

func describe(it Item) string {
	return it.DisplayLabel() + " [" + strings.Join(it.Categories, " / ") + "]"
}
