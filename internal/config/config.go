package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/NeverVane/pickline/internal/logger"
)

// DataDirEnv overrides the data directory when set to an absolute path.
const DataDirEnv = "PICKLINE_DATA_DIR"

// Config represents the complete configuration for pickline
type Config struct {
	// Matching and layout behaviour
	Menu MenuConfig `toml:"menu"`

	// Recent-selection log
	History HistoryConfig `toml:"history"`

	// Colors
	Appearance AppearanceConfig `toml:"appearance"`

	// Logging configuration
	Logging logger.Config `toml:"logging"`

	// Sentry configuration
	Sentry SentryConfig `toml:"sentry"`

	// Directory paths (computed, not stored in TOML)
	DataDir   string `toml:"-"`
	ConfigDir string `toml:"-"`
}

// MenuConfig contains picker behaviour settings
type MenuConfig struct {
	// Fold case when matching
	CaseInsensitive bool `toml:"case_insensitive"`

	// Split the query on spaces; every token must match
	Tokenize bool `toml:"tokenize"`

	// Tokens past this count are ignored
	MaxTokens int `toml:"max_tokens"`

	// Vertical list height; 0 uses the terminal height
	Lines int `toml:"lines"`

	// List items one per line instead of a single bar
	Vertical bool `toml:"vertical"`

	// Text drawn before the query
	Prompt string `toml:"prompt"`

	// Draw scroll indicators
	Indicators bool `toml:"indicators"`

	// Show "(N)" matches next to the query
	HitCounter bool `toml:"hit_counter"`

	// Highlight items equal to the previous selection
	MarkLast bool `toml:"mark_last"`

	// Keep running after accept
	Multiselect bool `toml:"multiselect"`

	// Terminate emitted text with a newline
	Newline bool `toml:"newline"`

	// Shrink the vertical list to the number of matches
	Resize bool `toml:"resize"`

	// Prompt above the list (false draws it at the bottom)
	Topbar bool `toml:"topbar"`

	// Carry the match tier across items like older releases did
	LegacyTierCarry bool `toml:"legacy_tier_carry"`

	// Width of each scroll indicator slot in cells
	ItemSpacing int `toml:"item_spacing"`
}

// HistoryConfig contains history log settings
type HistoryConfig struct {
	// Path to the history file; empty disables history
	Path string `toml:"path"`

	// Maximum number of remembered entries
	Capacity int `toml:"capacity"`
}

// SentryConfig contains Sentry error monitoring settings
type SentryConfig struct {
	// Enable Sentry error monitoring
	Enabled bool `toml:"enabled"`

	// Sentry DSN for error reporting
	DSN string `toml:"dsn"`

	// Environment name (development, staging, production)
	Environment string `toml:"environment"`

	// Sample rate for error reporting (0.0 to 1.0)
	SampleRate float64 `toml:"sample_rate"`

	// Release version for error grouping
	Release string `toml:"release"`

	// Debug mode for Sentry SDK
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "pickline")
	dataDir := filepath.Join(homeDir, ".local", "share", "pickline")

	logging := logger.DefaultConfig()
	logging.Output = filepath.Join(dataDir, "pickline.log")

	return &Config{
		Menu: MenuConfig{
			CaseInsensitive: false,
			Tokenize:        true,
			MaxTokens:       16,
			Lines:           0,
			Vertical:        false,
			Prompt:          "",
			Indicators:      true,
			HitCounter:      false,
			MarkLast:        false,
			Multiselect:     false,
			Newline:         false,
			Resize:          false,
			Topbar:          true,
			LegacyTierCarry: false,
			ItemSpacing:     2,
		},
		History: HistoryConfig{
			Path:     "",
			Capacity: 20,
		},
		Appearance: DefaultAppearance(),
		Logging:    *logging,
		Sentry: SentryConfig{
			Enabled:     false,
			DSN:         "",
			Environment: "production",
			SampleRate:  1.0,
		},
		DataDir:   dataDir,
		ConfigDir: configDir,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "pickline", "config.toml")
}

// Load loads configuration from the specified file path
func Load(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = DefaultPath()
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if _, err := toml.DecodeFile(configPath, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	if err := config.ApplyDataDirOverride(os.Getenv(DataDirEnv)); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ApplyDataDirOverride relocates the data directory and everything derived
// from it. An empty dir is a no-op.
func (c *Config) ApplyDataDirOverride(dir string) error {
	if dir == "" {
		return nil
	}
	if !filepath.IsAbs(dir) {
		return fmt.Errorf("%s must be an absolute path, got: %s", DataDirEnv, dir)
	}
	if filepath.Clean(dir) != dir {
		return fmt.Errorf("%s contains invalid path components: %s", DataDirEnv, dir)
	}

	oldDefaultLog := filepath.Join(c.DataDir, "pickline.log")
	c.DataDir = dir
	if c.Logging.Output == oldDefaultLog {
		c.Logging.Output = filepath.Join(dir, "pickline.log")
	}
	return nil
}

// Save saves the configuration to the specified file path
func (c *Config) Save(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config as TOML: %w", err)
	}

	return nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Menu.MaxTokens <= 0 {
		return fmt.Errorf("menu.max_tokens must be positive")
	}
	if c.Menu.Lines < 0 {
		return fmt.Errorf("menu.lines must be non-negative")
	}
	if c.Menu.ItemSpacing < 0 {
		return fmt.Errorf("menu.item_spacing must be non-negative")
	}

	if c.History.Capacity <= 0 {
		return fmt.Errorf("history.capacity must be positive")
	}

	if err := c.Appearance.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error, disabled")
	}

	if c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1 {
		return fmt.Errorf("sentry.sample_rate must be between 0.0 and 1.0")
	}
	if c.Sentry.Enabled && c.Sentry.DSN == "" {
		return fmt.Errorf("sentry.dsn is required when sentry is enabled")
	}

	return nil
}

// EnsureDirectories creates the directories the configuration points at
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.DataDir}
	if c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// ApplyDefaults applies default values for all configuration sections
// This ensures that TOML decoding doesn't override defaults with zero values
func (c *Config) ApplyDefaults() {
	if c.Menu.MaxTokens <= 0 {
		c.Menu.MaxTokens = 16
	}

	if c.History.Capacity <= 0 {
		c.History.Capacity = 20
	}

	c.Appearance.applyDefaults()

	if c.Logging.Level == "" {
		c.Logging.Level = "error"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = filepath.Join(c.DataDir, "pickline.log")
	}
	if c.Logging.MaxSize <= 0 {
		c.Logging.MaxSize = 5
	}

	if c.Sentry.Environment == "" {
		c.Sentry.Environment = "production"
	}
	if c.Sentry.SampleRate == 0 {
		c.Sentry.SampleRate = 1.0
	}
}
