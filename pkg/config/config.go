// Package config handles loading and saving cascade configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/cascade/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/cascade/pkg/column"
	"github.com/vanderheijden86/cascade/pkg/interaction"
)

// InteractionConfig holds keyboard behavior settings.
type InteractionConfig struct {
	PageSize               int   `yaml:"page_size,omitempty"`                // PageUp/PageDown step
	AutoClose              *bool `yaml:"auto_close,omitempty"`               // Close after committing a value (default true)
	BackspaceClearsAll     bool  `yaml:"backspace_clears_all,omitempty"`     // Clear every column instead of the active one
	CursorFollowsSelection *bool `yaml:"cursor_follows_selection,omitempty"` // Move the cursor with the value while closed (default true)
}

// StagingConfig controls staged insertion of long option lists.
type StagingConfig struct {
	Threshold          int  `yaml:"threshold,omitempty"`            // Lists longer than this are staged (0 = default)
	PlaceholderDelayMS int  `yaml:"placeholder_delay_ms,omitempty"` // Delay before insertion
	InsertDelayMS      int  `yaml:"insert_delay_ms,omitempty"`      // Delay before the placeholder is cleared
	Disabled           bool `yaml:"disabled,omitempty"`             // Insert everything at once
}

// UIConfig holds terminal view settings.
type UIConfig struct {
	ColumnWidth    int   `yaml:"column_width,omitempty"`     // Width of one column in cells
	MaxVisible     int   `yaml:"max_visible,omitempty"`      // Rows shown per column before scrolling
	ShowHelpFooter *bool `yaml:"show_help_footer,omitempty"` // Key hints under the columns (default true)
}

// SourcesConfig names the catalogs to load when no -data flag is given.
type SourcesConfig struct {
	Paths   []string `yaml:"paths,omitempty"`   // Catalog files or directories
	Columns []string `yaml:"columns,omitempty"` // Column titles, value column first
	Depth   int      `yaml:"depth,omitempty"`   // Number of columns (0 = from catalog)
}

// Config is the top-level configuration for cascade.
type Config struct {
	Interaction InteractionConfig `yaml:"interaction,omitempty"`
	Staging     StagingConfig     `yaml:"staging,omitempty"`
	UI          UIConfig          `yaml:"ui,omitempty"`
	Sources     SourcesConfig     `yaml:"sources,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	staging := column.DefaultStaging()
	return Config{
		Interaction: InteractionConfig{
			PageSize: interaction.DefaultConfig().PageSize,
		},
		Staging: StagingConfig{
			Threshold:          staging.Threshold,
			PlaceholderDelayMS: int(staging.PlaceholderDelay / time.Millisecond),
			InsertDelayMS:      int(staging.SettleDelay / time.Millisecond),
		},
		UI: UIConfig{
			ColumnWidth: 24,
			MaxVisible:  12,
		},
	}
}

// Normalize clamps out-of-range values back to their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Interaction.PageSize < 1 || c.Interaction.PageSize > 100 {
		c.Interaction.PageSize = def.Interaction.PageSize
	}
	if c.Staging.Threshold < 1 {
		c.Staging.Threshold = def.Staging.Threshold
	}
	if c.Staging.PlaceholderDelayMS < 0 {
		c.Staging.PlaceholderDelayMS = def.Staging.PlaceholderDelayMS
	}
	if c.Staging.InsertDelayMS < 0 {
		c.Staging.InsertDelayMS = def.Staging.InsertDelayMS
	}
	if c.UI.ColumnWidth < 8 {
		c.UI.ColumnWidth = def.UI.ColumnWidth
	}
	if c.UI.MaxVisible < 3 {
		c.UI.MaxVisible = def.UI.MaxVisible
	}
	if c.Sources.Depth < 0 {
		c.Sources.Depth = 0
	}
}

// InteractionSettings converts the interaction section for the key handler.
func (c Config) InteractionSettings() interaction.Config {
	return interaction.Config{
		PageSize:               c.Interaction.PageSize,
		AutoClose:              boolOr(c.Interaction.AutoClose, true),
		BackspaceClearsAll:     c.Interaction.BackspaceClearsAll,
		CursorFollowsSelection: boolOr(c.Interaction.CursorFollowsSelection, true),
	}
}

// StagingSettings converts the staging section for columns.
func (c Config) StagingSettings() column.Staging {
	if c.Staging.Disabled {
		return column.Staging{}
	}
	return column.Staging{
		Threshold:        c.Staging.Threshold,
		PlaceholderDelay: time.Duration(c.Staging.PlaceholderDelayMS) * time.Millisecond,
		SettleDelay:      time.Duration(c.Staging.InsertDelayMS) * time.Millisecond,
	}
}

// HelpFooter reports whether key hints are shown.
func (c Config) HelpFooter() bool {
	return boolOr(c.UI.ShowHelpFooter, true)
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ConfigDir returns the XDG config directory for cascade.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cascade")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cascade")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Normalize()
	for i := range cfg.Sources.Paths {
		cfg.Sources.Paths[i] = expandHome(cfg.Sources.Paths[i])
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
