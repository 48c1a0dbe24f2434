package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/cascade/internal/datasource"
	"github.com/vanderheijden86/cascade/pkg/cascade"
	"github.com/vanderheijden86/cascade/pkg/option"
)

// AssertLabels verifies the labels of opts, in order.
func AssertLabels(t *testing.T, opts []*option.Option, expected ...string) {
	t.Helper()
	got := option.Labels(opts)
	if !slices.Equal(got, expected) && !(len(got) == 0 && len(expected) == 0) {
		t.Errorf("expected labels %v, got %v", expected, got)
	}
}

// AssertValue verifies the committed value of the cascade. An empty
// expected value means no value.
func AssertValue(t *testing.T, c *cascade.Cascade, expected string) {
	t.Helper()
	if got := c.Controller().SelectedValue().Value(); got != expected {
		t.Errorf("expected value %q, got %q", expected, got)
	}
	if got := c.Field().Text(); got != expected {
		t.Errorf("expected field text %q, got %q", expected, got)
	}
}

// AssertColumnsConsistent verifies that every column shows exactly the set
// the cascade last computed for it and that every selection is live.
func AssertColumnsConsistent(t *testing.T, c *cascade.Cascade) {
	t.Helper()
	for i, col := range c.Controller().Columns() {
		if col.Loading() {
			continue
		}
		if !option.SameSet(col.Options(), c.Options(i)) {
			t.Errorf("column %d shows %v, cascade computed %v", i, option.Labels(col.Options()), option.Labels(c.Options(i)))
		}
		if col.HasSelection() && !col.Contains(col.Selected()) {
			t.Errorf("column %d selection %q is not among its options", i, col.Selected().Label())
		}
	}
}

// AssertNoDuplicateValues verifies all item values in cat are unique.
func AssertNoDuplicateValues(t *testing.T, cat *datasource.Catalog) {
	t.Helper()
	seen := make(map[string]bool)
	for _, it := range cat.Items {
		if seen[it.Value] {
			t.Errorf("duplicate item value: %s", it.Value)
		}
		seen[it.Value] = true
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) == actual {
		return
	}
	// Report the first differing line
	expectedLines := strings.Split(string(expected), "\n")
	actualLines := strings.Split(actual, "\n")
	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}
		if expLine != actLine {
			g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s", i+1, expLine, actLine)
			return
		}
	}
}

// AssertJSON compares actual value as JSON against the golden file.
func (g *GoldenFile) AssertJSON(actual any) {
	g.t.Helper()

	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		g.t.Fatalf("failed to marshal actual value: %v", err)
	}

	g.Assert(string(data))
}

// Catalog file helpers

// WriteCatalog writes cat to dir/name as JSON or YAML, chosen by the file
// extension, and returns the path.
func WriteCatalog(t *testing.T, dir, name string, cat *datasource.Catalog) string {
	t.Helper()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cat)
	default:
		data, err = json.Marshal(cat)
	}
	if err != nil {
		t.Fatalf("failed to marshal catalog: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

// BindCatalog binds cat's sources to a new controller with one column per
// category level.
func BindCatalog(t *testing.T, cat *datasource.Catalog, opts ...cascade.ControllerOption) *cascade.Cascade {
	t.Helper()
	n := cat.Depth()
	c, err := cascade.Bind(cascade.New(n, opts...), cat.Sources(n))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

// FindOption returns the option labelled label in column col.
func FindOption(t *testing.T, c *cascade.Cascade, col int, label string) *option.Option {
	t.Helper()
	column, err := c.Controller().Column(col)
	if err != nil {
		t.Fatalf("column %d: %v", col, err)
	}
	for _, o := range column.Options() {
		if o.Label() == label {
			return o
		}
	}
	t.Fatalf("column %d has no option %q (has %v)", col, label, option.Labels(column.Options()))
	return nil
}
