package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Color modes for diagnostic output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the project configuration read from polymodal.yaml.
type Config struct {
	Checks  ChecksConfig  `yaml:"checks"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Output  OutputConfig  `yaml:"output"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `yaml:"-"`
}

type ChecksConfig struct {
	// Types enables the type checker for Compiled programs.
	Types bool `yaml:"types"`
	// Ownership enables the move checker for Compiled programs.
	Ownership bool `yaml:"ownership"`
	// WarningsAsErrors blocks evaluation when any warning was reported.
	WarningsAsErrors bool `yaml:"warnings_as_errors"`
}

type RuntimeConfig struct {
	MaxCallDepth int `yaml:"max_call_depth"`
}

type OutputConfig struct {
	Color    string `yaml:"color"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Checks: ChecksConfig{
			Types:     true,
			Ownership: true,
		},
		Runtime: RuntimeConfig{MaxCallDepth: DefaultMaxCallDepth},
		Output: OutputConfig{
			Color:    ColorAuto,
			LogLevel: "warn",
		},
	}
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses configuration content on top of Default.
// Unknown keys are rejected. The path argument is used for messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// FindConfig searches for a configuration file starting from dir and
// walking up to the filesystem root. It returns "" when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Resolve finds and loads the configuration governing a source file,
// falling back to Default when there is none.
func Resolve(sourcePath string) (*Config, error) {
	path, err := FindConfig(filepath.Dir(sourcePath))
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

func (c *Config) setDefaults() {
	if c.Runtime.MaxCallDepth == 0 {
		c.Runtime.MaxCallDepth = DefaultMaxCallDepth
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
	if c.Output.LogLevel == "" {
		c.Output.LogLevel = "warn"
	}
}

func (c *Config) validate(path string) error {
	if c.Runtime.MaxCallDepth < 0 {
		return fmt.Errorf("%w: %s: runtime.max_call_depth must be positive, got %d",
			ErrInvalidConfig, path, c.Runtime.MaxCallDepth)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %s: output.color must be auto, always or never, got %q",
			ErrInvalidConfig, path, c.Output.Color)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %s: output.log_level: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// SlogLevel converts output.log_level to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Output.LogLevel)); err != nil {
		return slog.LevelWarn, err
	}
	return level, nil
}
