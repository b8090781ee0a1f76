// Package config loads repo-activity settings.
//
// Settings are resolved in order, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at [Path] ($XDG_CONFIG_HOME/repo-activity/config.toml)
//  3. REPO_ACTIVITY_* environment variables, optionally seeded from a .env file
//  4. command-line flags (applied by the CLI)
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/kenjiO/repo-activity/pkg/buildinfo"
	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/integrations/github"
)

// Environment variables that override file settings.
const (
	EnvAPIBase     = "REPO_ACTIVITY_API_BASE"
	EnvTimeout     = "REPO_ACTIVITY_TIMEOUT"
	EnvConcurrency = "REPO_ACTIVITY_CONCURRENCY"
	EnvListenAddr  = "REPO_ACTIVITY_LISTEN_ADDR"
	EnvOutput      = "REPO_ACTIVITY_OUTPUT"
)

// Output formats accepted by the latest command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Outputs lists the valid output formats.
var Outputs = []string{OutputText, OutputJSON, OutputYAML}

// Config holds runtime settings shared by all commands.
type Config struct {
	// APIBase is the repositories root of the GitHub API.
	APIBase string `toml:"api_base"`

	// Timeout bounds each lookup. Zero means no deadline.
	Timeout Duration `toml:"timeout"`

	// Concurrency is the number of lookups the latest command runs at once.
	Concurrency int `toml:"concurrency"`

	// ListenAddr is the address the serve command binds.
	ListenAddr string `toml:"listen_addr"`

	// Output is the default output format of the latest command.
	Output string `toml:"output"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:     github.DefaultAPIBase,
		Timeout:     Duration{30 * time.Second},
		Concurrency: 4,
		ListenAddr:  ":8080",
		Output:      OutputText,
	}
}

// Path returns the config file location using the XDG standard
// (~/.config/repo-activity/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, buildinfo.Name, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", buildinfo.Name, "config.toml"), nil
}

// Load builds a Config from the defaults, the file at path and the
// environment. A missing file is not an error. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.APIBase = envDefault(EnvAPIBase, c.APIBase)
	c.ListenAddr = envDefault(EnvListenAddr, c.ListenAddr)
	c.Output = envDefault(EnvOutput, c.Output)

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvTimeout)
		}
		c.Timeout = Duration{d}
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvConcurrency)
		}
		c.Concurrency = n
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.APIBase); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "api_base")
	}
	if c.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must not be negative, got %s", c.Timeout)
	}
	if c.Concurrency < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.ListenAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "listen_addr is required")
	}
	if !slices.Contains(Outputs, c.Output) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown output %q (valid: %v)", c.Output, Outputs)
	}
	return nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write saves c to path, creating parent directories. An existing file is
// only replaced when overwrite is set.
func (c Config) Write(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func envDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
