// Package config loads and saves the solpkg configuration: the package feeds
// and the settings shared by every command.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
	"github.com/glorpus-work/solpkg/pkg/feed"
	"github.com/glorpus-work/solpkg/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Feeds    []*FeedConfig `yaml:"feeds"`
	Settings Settings      `yaml:"settings"`
}

// FeedConfig represents a single package feed.
type FeedConfig struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Priority uint   `yaml:"priority"`
}

// IsEnabled reports whether the feed is used. Feeds are enabled unless disabled explicitly.
func (f *FeedConfig) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

// Settings represents general application settings.
type Settings struct {
	// Solution manifest used when --solution is not given
	Solution string `yaml:"solution"`

	CacheDir string        `yaml:"cache_dir,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`

	OutputFormat string `yaml:"output_format"` // text, json
	ColorOutput  bool   `yaml:"color_output"`
	LogLevel     string `yaml:"log_level"` // debug, info, warn, error

	// List projects the selected action does not apply to
	ShowAll bool `yaml:"show_all"`
}

// Default configuration values.
const (
	DefaultSolution    = "solpkg.yaml"
	DefaultCacheTTL    = 24 * time.Hour
	DefaultHTTPTimeout = 30 * time.Second

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Feeds: []*FeedConfig{},
		Settings: Settings{
			Solution:     DefaultSolution,
			CacheDir:     defaultCacheDir(),
			CacheTTL:     DefaultCacheTTL,
			HTTPTimeout:  DefaultHTTPTimeout,
			OutputFormat: "text",
			ColorOutput:  true,
			LogLevel:     "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return &config, nil
}

// SaveConfig writes the configuration to path atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}
	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return buf.Bytes(), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateFeeds(c.Feeds); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validateFeeds(feeds []*FeedConfig) error {
	names := make(map[string]bool, len(feeds))
	for i, f := range feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name cannot be empty", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed '%s': URL cannot be empty", f.Name)
		}
		if names[f.Name] {
			return fmt.Errorf("feed '%s': duplicate feed name", f.Name)
		}
		names[f.Name] = true
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout cannot be negative")
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative")
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return fmt.Errorf("invalid output_format '%s', must be one of: text, json", s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return fmt.Errorf("invalid log_level '%s', must be one of: debug, info, warn, error", s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "solpkg", "config.yaml"), nil
}

// AddFeed adds a feed. Returns an error if a feed with the same name already exists.
func (c *Config) AddFeed(name, url string, priority uint) error {
	if c.GetFeed(name) != nil {
		return fmt.Errorf("feed '%s' already exists: %w", name, errors.ErrConfigValidation)
	}
	c.Feeds = append(c.Feeds, &FeedConfig{Name: name, URL: url, Priority: priority})
	return nil
}

// RemoveFeed removes a feed from the configuration.
func (c *Config) RemoveFeed(name string) bool {
	for i, f := range c.Feeds {
		if f.Name == name {
			c.Feeds = append(c.Feeds[:i], c.Feeds[i+1:]...)
			return true
		}
	}
	return false
}

// GetFeed gets a feed configuration by name.
func (c *Config) GetFeed(name string) *FeedConfig {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnableFeed enables or disables a feed.
func (c *Config) EnableFeed(name string, enabled bool) bool {
	f := c.GetFeed(name)
	if f == nil {
		return false
	}
	f.Enabled = &enabled
	return true
}

// FeedSources converts the configured feeds for the feed manager.
func (c *Config) FeedSources() []*feed.Feed {
	out := make([]*feed.Feed, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		out = append(out, &feed.Feed{
			Name:     f.Name,
			URL:      f.URL,
			Priority: f.Priority,
			Enabled:  f.IsEnabled(),
		})
	}
	return out
}

// GetCacheDir returns the base cache directory from settings.
func (c *Config) GetCacheDir() string {
	return c.Settings.CacheDir
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Feeds == nil {
		c.Feeds = defaults.Feeds
	}
	if c.Settings.Solution == "" {
		c.Settings.Solution = defaults.Settings.Solution
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.CacheTTL == 0 {
		c.Settings.CacheTTL = defaults.Settings.CacheTTL
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "solpkg")
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "solpkg")
	}
	return filepath.Join(dir, "solpkg")
}
