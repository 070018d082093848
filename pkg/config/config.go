// Package config handles loading and saving tw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/tw/config.yaml
//   - Data:    ~/.local/share/tw/ (bundled datasets, exports)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme       string `yaml:"theme,omitempty"`        // named lipgloss theme
	TickMillis  int    `yaml:"tick_millis,omitempty"`  // simulation tick interval
	HidePopup   bool   `yaml:"hide_popup,omitempty"`   // suppress the hover/click info panel
	AsciiGlyphs bool   `yaml:"ascii_glyphs,omitempty"` // substitute ASCII for emoji glyph modes
}

// ExportConfig holds snapshot export defaults.
type ExportConfig struct {
	Dir    string `yaml:"dir,omitempty"`    // default output directory
	Format string `yaml:"format,omitempty"` // svg or png
}

// Config is the top-level configuration for tw.
type Config struct {
	// DataPath points at a techniques dataset (csv, json or sqlite). Empty
	// means discover one in the working directory.
	DataPath string `yaml:"data_path,omitempty"`

	// DoneMatch selects how order tags are matched against "done" by the
	// to-do recolor: "substring" (default) or "exact".
	DoneMatch string `yaml:"done_match,omitempty"`

	UI     UIConfig     `yaml:"ui,omitempty"`
	Export ExportConfig `yaml:"export,omitempty"`

	// Watch re-loads the dataset when the file changes on disk.
	Watch *bool `yaml:"watch,omitempty"`
}

// DefaultTickMillis is the simulation tick interval when unconfigured.
const DefaultTickMillis = 33

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DoneMatch: "substring",
		UI: UIConfig{
			TickMillis: DefaultTickMillis,
		},
		Export: ExportConfig{
			Format: "svg",
		},
	}
}

// WatchEnabled reports whether dataset watching is on (default true).
func (c Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// DoneMatcher returns the order-tag predicate selected by DoneMatch.
func (c Config) DoneMatcher() func(orderTag string) bool {
	if strings.EqualFold(c.DoneMatch, "exact") {
		return func(tag string) bool {
			return strings.EqualFold(strings.TrimSpace(tag), "done")
		}
	}
	return func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), "done")
	}
}

// ConfigDir returns the XDG config directory for tw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tw")
}

// DataDir returns the XDG data directory for tw.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "tw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "tw")
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

	if cfg.UI.TickMillis <= 0 {
		cfg.UI.TickMillis = DefaultTickMillis
	}

	cfg.DataPath = expandHome(cfg.DataPath)
	cfg.Export.Dir = expandHome(cfg.Export.Dir)

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
