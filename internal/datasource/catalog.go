package datasource

import (
	"slices"
	"strconv"

	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// Item is one selectable value with its categories, most specific first.
type Item struct {
	Value      string   `json:"value" yaml:"value"`
	Label      string   `json:"label,omitempty" yaml:"label,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// DisplayLabel returns Label, or Value when Label is empty.
func (it Item) DisplayLabel() string {
	if it.Label != "" {
		return it.Label
	}
	return it.Value
}

// Category returns the category at level i, or "" when the item has none.
func (it Item) Category(i int) string {
	if i < 0 || i >= len(it.Categories) {
		return ""
	}
	return it.Categories[i]
}

// Catalog is an ordered list of items loaded from one or more sources.
type Catalog struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Items   []Item   `json:"items" yaml:"items"`
}

// Depth returns the number of columns needed to show every category level.
func (c *Catalog) Depth() int {
	depth := 1
	for _, it := range c.Items {
		depth = max(depth, len(it.Categories)+1)
	}
	return depth
}

// Title returns the heading for column i: the catalog's own column name
// when it has one, "Value" for column 0 and "Level i" otherwise.
func (c *Catalog) Title(i int) string {
	if i >= 0 && i < len(c.Columns) && c.Columns[i] != "" {
		return c.Columns[i]
	}
	if i == 0 {
		return "Value"
	}
	return "Level " + strconv.Itoa(i)
}

// Merge appends the items of other, skipping values already present.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		seen[it.Value] = struct{}{}
	}
	for _, it := range other.Items {
		if _, ok := seen[it.Value]; ok {
			continue
		}
		seen[it.Value] = struct{}{}
		c.Items = append(c.Items, it)
	}
	if len(c.Columns) == 0 {
		c.Columns = append([]string(nil), other.Columns...)
	}
}

// Sources returns one cascade.DataFunc per column. Column 0 yields the items
// whose first category is among the filters. Column k yields the distinct
// categories at level k-1 whose level-k category is among the filters. No
// filters means no restriction.
func (c *Catalog) Sources(columns int) []cascade.DataFunc {
	if columns < 1 {
		columns = 1
	}
	out := make([]cascade.DataFunc, columns)
	for k := range out {
		out[k] = c.source(k)
	}
	return out
}

func (c *Catalog) source(k int) cascade.DataFunc {
	return func(filters ...string) ([]option.Entry, error) {
		var entries []option.Entry
		seen := make(map[string]struct{})
		for _, it := range c.Items {
			if len(filters) > 0 && !slices.Contains(filters, it.Category(k)) {
				continue
			}
			if k == 0 {
				entries = append(entries, option.Pair(it.Value, it.DisplayLabel()))
				continue
			}
			label := it.Category(k - 1)
			if label == "" {
				continue
			}
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			entries = append(entries, option.Text(label))
		}
		return entries, nil
	}
}
