// Package config holds the settings of the dt command.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/datatree/format"
)

// Config is the structure of the configuration file.
//
//	server:
//	  url: https://data.example.org/tree
//	  token: ...
//	  timeout: 30s
//	  retries: 3
//	output:
//	  format: json
//	  color: auto
type Config struct {
	Server ServerConfig `yaml:"server"`
	Output OutputConfig `yaml:"output"`
}

type ServerConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`
}

type OutputConfig struct {
	// Format is json, yaml or cbor.
	Format string `yaml:"format"`
	// Color is auto, always or never.
	Color string `yaml:"color"`
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables overriding file settings.
const (
	EnvURL     = "DATATREE_URL"
	EnvToken   = "DATATREE_TOKEN"
	EnvTimeout = "DATATREE_TIMEOUT"
	EnvRetries = "DATATREE_RETRIES"
)

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Output: OutputConfig{
			Format: "json",
			Color:  ColorAuto,
		},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "datatree", "config.yaml"), nil
}

// Load reads a configuration file over the defaults.  Unknown fields are
// errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides settings from the environment as read by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvURL); v != "" {
		c.Server.URL = v
	}
	if v := getenv(EnvToken); v != "" {
		c.Server.Token = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Server.Timeout = d
	}
	if v := getenv(EnvRetries); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetries, err)
		}
		c.Server.Retries = n
	}
	return nil
}

// Validate checks the configuration for errors.  An empty server URL is
// allowed; commands needing a server check for it.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.URL != "" {
		u, err := url.Parse(c.Server.URL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("server.url: %w", err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, fmt.Errorf("server.url: %q is not an http(s) URL", c.Server.URL))
		}
	}
	if c.Server.Timeout < 0 {
		errs = append(errs, fmt.Errorf("server.timeout: negative duration %s", c.Server.Timeout))
	}
	if c.Server.Retries < 0 {
		errs = append(errs, fmt.Errorf("server.retries: negative count %d", c.Server.Retries))
	}
	if _, err := format.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color: %q is not one of auto, always, never", c.Output.Color))
	}
	return errors.Join(errs...)
}

// UseColor resolves the color setting given whether output goes to a
// terminal.
func (o OutputConfig) UseColor(terminal bool) bool {
	switch o.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}
