// Package config loads scribbit's user settings from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file looked up in the home directory when
// no path is given.
const DefaultFile = ".scribbit.toml"

// Output formats for parsed statements.
const (
	FormatSummary = "summary" // "Parsed a function definition." and friends
	FormatSExpr   = "sexpr"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

var formats = []string{FormatSummary, FormatSExpr, FormatJSON, FormatYAML}

// Config holds the settings shared by the CLI commands.
type Config struct {
	Prompt       string `toml:"prompt" yaml:"prompt"`
	HistoryFile  string `toml:"history_file" yaml:"history_file"`
	Color        bool   `toml:"color" yaml:"color"`
	Format       string `toml:"format" yaml:"format"`
	LogLevel     string `toml:"log_level" yaml:"log_level"`
	Eval         bool   `toml:"eval" yaml:"eval"`
	MaxCallDepth int    `toml:"max_call_depth" yaml:"max_call_depth"`

	path string
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{
		Prompt:       "ready> ",
		Color:        true,
		Format:       FormatSummary,
		LogLevel:     "warn",
		Eval:         true,
		MaxCallDepth: 10000,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".scribbit_history")
	}
	return cfg
}

// Load reads the settings file at path on top of the defaults. An empty
// path means ~/.scribbit.toml, which may be absent. Files ending in .yaml
// or .yml are read as YAML, everything else as TOML. Unknown keys are
// errors.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, DefaultFile)
	}
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.decode(data, path); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path
	cfg.HistoryFile = os.ExpandEnv(cfg.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	}
}

// Path returns the file the settings were read from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	if err := CheckFormat(c.Format); err != nil {
		return err
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxCallDepth < 1 {
		return fmt.Errorf("max_call_depth must be positive, got %d", c.MaxCallDepth)
	}
	return nil
}

// CheckFormat reports whether format names a known output format.
func CheckFormat(format string) error {
	if !contains(formats, format) {
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(formats, ", "))
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level. Invalid levels map to warn.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
