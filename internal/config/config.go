package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the config file searched for from the working directory upward
const FileName = "charfreq.toml"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the complete configuration for charfreq
type Config struct {
	LogLevel  string      `toml:"log_level"`
	Color     string      `toml:"color"`
	ChunkSize int         `toml:"chunk_size"`
	Watch     WatchConfig `toml:"watch"`

	// Path of the file the values came from, empty for defaults
	Path string `toml:"-"`
}

// WatchConfig configures the watch command
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Color:     ColorAuto,
		ChunkSize: 64 * 1024,
		Watch: WatchConfig{
			DebounceMS: 100,
		},
	}
}

// Load searches for charfreq.toml starting at startPath and walking up.
// No file is not an error; defaults are returned.
func Load(startPath string) (*Config, error) {
	configPath, err := findConfigFile(startPath)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads the given config file on top of the defaults
func LoadFile(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	md, err := toml.Decode(string(configData), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", configPath, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Path = configPath
	return cfg, nil
}

// findConfigFile returns the nearest charfreq.toml at or above startPath,
// or "" if there is none.
func findConfigFile(startPath string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	// If startPath is a file, start from its directory
	info, err := os.Stat(absPath)
	if err == nil && !info.IsDir() {
		absPath = filepath.Dir(absPath)
	}

	currentDir := absPath
	for {
		configPath := filepath.Join(currentDir, FileName)
		_, err := os.Stat(configPath)
		if err == nil {
			return configPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", configPath, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.LogLevel) {
	case "error", "warn", "info", "debug":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of error, warn, info, debug", c.LogLevel))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		problems = append(problems, fmt.Sprintf("color %q is not one of auto, always, never", c.Color))
	}

	if c.ChunkSize <= 0 {
		problems = append(problems, "chunk_size must be positive")
	}
	if c.Watch.DebounceMS < 0 {
		problems = append(problems, "watch.debounce_ms must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// Debounce returns the watch debounce delay
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
