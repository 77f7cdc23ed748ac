package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/bulkdata/internal/format"
)

var ErrUnknownKey = errors.New("unknown config key")

// Config represents the application configuration
type Config struct {
	Format             string `toml:"format"`
	Align              string `toml:"align"`
	Newline            string `toml:"newline"`
	StrictContinuation bool   `toml:"strict_continuation"`
	MaxLineLength      int    `toml:"max_line_length"`
}

// Keys lists the settable config keys in file order
var Keys = []string{"format", "align", "newline", "strict_continuation", "max_line_length"}

// Default returns the configuration written on first use
func Default() *Config {
	f := format.FixedFormat()
	return &Config{
		Format:        "fixed",
		Align:         f.Align.String(),
		Newline:       "lf",
		MaxLineLength: f.MaxLineLength,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "bulkdata", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return &config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := saveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// saveConfig writes config to the config file, creating its directory
func saveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// BuildFormat turns the configuration into a layout. Empty settings keep the
// preset's values.
func (c *Config) BuildFormat() (format.Format, error) {
	f, err := format.Preset(c.Format)
	if err != nil {
		return format.Format{}, err
	}

	if f.Align, err = format.ParseAlignment(c.Align); err != nil {
		return format.Format{}, err
	}

	if f.Newline, err = parseNewline(c.Newline); err != nil {
		return format.Format{}, err
	}

	if c.MaxLineLength > 0 {
		f.MaxLineLength = c.MaxLineLength
	}
	f.StrictContinuation = c.StrictContinuation

	return f, f.Validate()
}

// Get returns the value of key as it appears in the config file
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "format":
		return c.Format, nil
	case "align":
		return c.Align, nil
	case "newline":
		return c.Newline, nil
	case "strict_continuation":
		return strconv.FormatBool(c.StrictContinuation), nil
	case "max_line_length":
		return strconv.Itoa(c.MaxLineLength), nil
	}
	return "", fmt.Errorf("%w: %s (expected one of %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
}

// Set parses value and assigns it to key
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "format":
		if _, err := format.Preset(value); err != nil {
			return err
		}
		c.Format = strings.ToLower(value)
	case "align":
		a, err := format.ParseAlignment(value)
		if err != nil {
			return err
		}
		c.Align = a.String()
	case "newline":
		if _, err := parseNewline(value); err != nil {
			return err
		}
		c.Newline = strings.ToLower(value)
	case "strict_continuation":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid strict_continuation %q: %w", value, err)
		}
		c.StrictContinuation = b
	case "max_line_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid max_line_length %q: expected a positive integer", value)
		}
		c.MaxLineLength = n
	default:
		return fmt.Errorf("%w: %s (expected one of %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// SetValue updates one key in the config file
func SetValue(key, value string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	if err := config.Set(key, value); err != nil {
		return err
	}

	return saveConfig(config)
}

// LoadFormat reads the config file and builds the configured layout
func LoadFormat() (format.Format, error) {
	config, err := LoadConfig()
	if err != nil {
		return format.Format{}, err
	}
	return config.BuildFormat()
}

func parseNewline(s string) (string, error) {
	switch strings.ToLower(s) {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	}
	return "", fmt.Errorf("%w: unknown newline %q (expected lf or crlf)", format.ErrInvalidFormat, s)
}
