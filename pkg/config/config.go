// Package config loads editor settings from a TOML file. Settings cover the
// pieces of editor behavior users reasonably tune: interaction timing, hit
// tolerances, zoom limits, and the default size of newly placed blocks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds blockcanvas configuration.
type Config struct {
	Canvas      CanvasConfig      `toml:"canvas"`
	Interaction InteractionConfig `toml:"interaction"`
	Routing     RoutingConfig     `toml:"routing"`
	Storage     StorageConfig     `toml:"storage"`
}

// CanvasConfig controls viewport behavior.
type CanvasConfig struct {
	MinZoom            float64 `toml:"min_zoom"`
	MaxZoom            float64 `toml:"max_zoom"`
	DefaultBlockWidth  float64 `toml:"default_block_width"`
	DefaultBlockHeight float64 `toml:"default_block_height"`
}

// InteractionConfig controls pointer handling.
type InteractionConfig struct {
	DoubleClickWindowMS int     `toml:"double_click_window_ms"`
	PortPickRadius      float64 `toml:"port_pick_radius"`
	HandleStripWidth    float64 `toml:"handle_strip_width"`
	EdgeTolerance       float64 `toml:"edge_tolerance"`
}

// RoutingConfig controls edge path generation.
type RoutingConfig struct {
	MinSegment float64 `toml:"min_segment"`
	Clearance  float64 `toml:"clearance"`
}

// StorageConfig controls where diagrams are persisted.
type StorageConfig struct {
	Backend string `toml:"backend"` // "filesystem" or "sqlite"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			MinZoom:            0.1,
			MaxZoom:            10,
			DefaultBlockWidth:  30,
			DefaultBlockHeight: 30,
		},
		Interaction: InteractionConfig{
			DoubleClickWindowMS: 300,
			PortPickRadius:      6,
			HandleStripWidth:    6,
			EdgeTolerance:       4,
		},
		Routing: RoutingConfig{
			MinSegment: 10,
			Clearance:  15,
		},
		Storage: StorageConfig{
			Backend: "filesystem",
		},
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".blockcanvas", "config.toml"), nil
}

// Load reads the config file, returning defaults when it does not exist.
// Fields absent from the file keep their default values.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that loaded settings are usable.
func (c *Config) Validate() error {
	if c.Canvas.MinZoom <= 0 || c.Canvas.MaxZoom < c.Canvas.MinZoom {
		return fmt.Errorf("zoom bounds must satisfy 0 < min <= max, got [%g, %g]", c.Canvas.MinZoom, c.Canvas.MaxZoom)
	}
	if c.Canvas.DefaultBlockWidth <= 0 || c.Canvas.DefaultBlockHeight <= 0 {
		return fmt.Errorf("default block size must be positive")
	}
	if c.Interaction.DoubleClickWindowMS <= 0 {
		return fmt.Errorf("double click window must be positive")
	}
	if c.Routing.MinSegment <= 0 {
		return fmt.Errorf("min segment must be positive")
	}
	switch c.Storage.Backend {
	case "filesystem", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Save writes the config to its default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
