// Package testutil provides catalog fixture generators and assertions for
// cascade tests. All generators produce deterministic output for
// reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vanderheijden86/cascade/internal/datasource"
)

// GeneratorConfig controls catalog generation.
type GeneratorConfig struct {
	Seed        int64  // Random seed for determinism (0 = use current time)
	ValuePrefix string // Prefix for item values (default: "item")
	Shuffle     bool   // Shuffle item order instead of grouping by category
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:        42, // Deterministic
		ValuePrefix: "item",
	}
}

// Generator creates catalogs with various shapes.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.ValuePrefix == "" {
		cfg.ValuePrefix = "item"
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// ============================================================================
// Catalog Shape Generators
// ============================================================================

// Flat creates size items without categories: a one-column catalog.
func (g *Generator) Flat(size int) *datasource.Catalog {
	cat := &datasource.Catalog{Name: fmt.Sprintf("flat-%d", size)}
	for i := 0; i < size; i++ {
		cat.Items = append(cat.Items, g.item(i, nil))
	}
	g.finish(cat)
	return cat
}

// Tree creates a balanced hierarchy. Level depth-1 has breadth categories,
// every category has breadth subcategories, and every leaf category holds
// leaves items. The catalog needs depth+1 columns.
//
// Category labels spell their path, most general first: "c1", "c1.2",
// "c1.2.0".
func (g *Generator) Tree(depth, breadth, leaves int) *datasource.Catalog {
	if depth < 1 {
		depth = 1
	}
	if breadth < 1 {
		breadth = 1
	}
	if leaves < 1 {
		leaves = 1
	}

	cat := &datasource.Catalog{Name: fmt.Sprintf("tree-%dx%dx%d", depth, breadth, leaves)}
	for i := 0; i <= depth; i++ {
		cat.Columns = append(cat.Columns, levelTitle(i))
	}

	// paths[i] lists the categories most general first
	paths := [][]string{nil}
	for d := 0; d < depth; d++ {
		var next [][]string
		for _, p := range paths {
			for b := 0; b < breadth; b++ {
				label := fmt.Sprintf("c%d", b)
				if len(p) > 0 {
					label = fmt.Sprintf("%s.%d", p[len(p)-1], b)
				}
				next = append(next, append(append([]string(nil), p...), label))
			}
		}
		paths = next
	}

	n := 0
	for _, p := range paths {
		cats := make([]string, len(p))
		for i := range p {
			cats[i] = p[len(p)-1-i]
		}
		for l := 0; l < leaves; l++ {
			cat.Items = append(cat.Items, g.item(n, cats))
			n++
		}
	}
	g.finish(cat)
	return cat
}

// Ragged creates a catalog where items carry different numbers of
// categories, like a place list that names a region only for some cities.
func (g *Generator) Ragged(size, maxDepth int) *datasource.Catalog {
	if maxDepth < 1 {
		maxDepth = 1
	}
	cat := &datasource.Catalog{Name: fmt.Sprintf("ragged-%d", size)}
	for i := 0; i < size; i++ {
		d := g.rng.Intn(maxDepth + 1)
		cats := make([]string, d)
		for j := range cats {
			cats[j] = fmt.Sprintf("L%d-%d", j+1, g.rng.Intn(3))
		}
		cat.Items = append(cat.Items, g.item(i, cats))
	}
	g.finish(cat)
	return cat
}

func (g *Generator) item(i int, cats []string) datasource.Item {
	return datasource.Item{
		Value:      fmt.Sprintf("%s-%d", g.cfg.ValuePrefix, i),
		Label:      fmt.Sprintf("Item %d", i),
		Categories: cats,
	}
}

func (g *Generator) finish(cat *datasource.Catalog) {
	if g.cfg.Shuffle {
		g.rng.Shuffle(len(cat.Items), func(i, j int) {
			cat.Items[i], cat.Items[j] = cat.Items[j], cat.Items[i]
		})
	}
}

func levelTitle(i int) string {
	if i == 0 {
		return "Item"
	}
	return fmt.Sprintf("Level %d", i)
}

// ============================================================================
// Convenience Functions
// ============================================================================

// QuickTree creates a tree catalog with the default generator.
func QuickTree(depth, breadth, leaves int) *datasource.Catalog {
	return NewDefault().Tree(depth, breadth, leaves)
}

// QuickFlat creates a flat catalog with the default generator.
func QuickFlat(size int) *datasource.Catalog {
	return NewDefault().Flat(size)
}

// Places returns a small hand-written catalog of cities, countries and
// continents.
func Places() *datasource.Catalog {
	return &datasource.Catalog{
		Name:    "places",
		Columns: []string{"City", "Country", "Continent"},
		Items: []datasource.Item{
			{Value: "paris", Label: "Paris", Categories: []string{"France", "Europe"}},
			{Value: "lyon", Label: "Lyon", Categories: []string{"France", "Europe"}},
			{Value: "berlin", Label: "Berlin", Categories: []string{"Germany", "Europe"}},
			{Value: "tokyo", Label: "Tokyo", Categories: []string{"Japan", "Asia"}},
			{Value: "osaka", Label: "Osaka", Categories: []string{"Japan", "Asia"}},
		},
	}
}
