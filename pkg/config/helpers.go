package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glorpus-work/solpkg/pkg/errors"
)

// Keys lists the settings SetValue and GetValue understand, in display order.
var Keys = []string{
	"solution",
	"cache_dir",
	"cache_ttl",
	"http_timeout",
	"output_format",
	"color_output",
	"log_level",
	"show_all",
}

// SetValue sets a setting by key. The result is validated.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "solution":
		c.Settings.Solution = value
	case "cache_dir":
		c.Settings.CacheDir = value
	case "cache_ttl", "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		if key == "cache_ttl" {
			c.Settings.CacheTTL = d
		} else {
			c.Settings.HTTPTimeout = d
		}
	case "output_format":
		c.Settings.OutputFormat = value
	case "color_output", "show_all":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		if key == "color_output" {
			c.Settings.ColorOutput = b
		} else {
			c.Settings.ShowAll = b
		}
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return fmt.Errorf("%s: %w", key, errors.ErrUnknownConfigKey)
	}
	if err := validateSettings(c.Settings); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return nil
}

// GetValue returns a setting as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "solution":
		return c.Settings.Solution, nil
	case "cache_dir":
		return c.Settings.CacheDir, nil
	case "cache_ttl":
		return c.Settings.CacheTTL.String(), nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "color_output":
		return strconv.FormatBool(c.Settings.ColorOutput), nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "show_all":
		return strconv.FormatBool(c.Settings.ShowAll), nil
	default:
		return "", fmt.Errorf("%s: %w", key, errors.ErrUnknownConfigKey)
	}
}

// ToMap returns every setting keyed by name. This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys))
	for _, key := range Keys {
		v, _ := c.GetValue(key)
		result[key] = v
	}
	return result
}
