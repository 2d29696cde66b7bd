package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/goliatone/go-formblock/internal/logging"
)

// Version is the only supported configuration version.
const Version = "v1"

// Defaults applied to empty settings.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatText
	DefaultListen    = "127.0.0.1:8080"
)

// Config is the CLI and preview server configuration.
type Config struct {
	Version   string  `toml:"version"`
	LogLevel  string  `toml:"log_level"`
	LogFormat string  `toml:"log_format"`
	Content   Content `toml:"content"`
	Submit    Submit  `toml:"submit"`
	Server    Server  `toml:"server"`
	Theme     Theme   `toml:"theme"`
}

// Content locates block documents and template overrides.
type Content struct {
	// Dir holds block documents. Empty selects the bundled samples.
	Dir          string `toml:"dir"`
	TemplatesDir string `toml:"templates_dir"`
}

// Submit configures the form backend.
type Submit struct {
	Endpoint string `toml:"endpoint"`
}

// Server configures the preview server.
type Server struct {
	Listen string `toml:"listen"`
}

// Theme selects partial overrides and design tokens for rendering.
type Theme struct {
	Name     string            `toml:"name"`
	Variant  string            `toml:"variant"`
	Partials map[string]string `toml:"partials"`
	Tokens   map[string]string `toml:"tokens"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadFile reads a TOML configuration file.
func LoadFile(path string) (*Config, error) {
	if ext := filepath.Ext(path); ext != ".toml" {
		return nil, fmt.Errorf("config: unsupported config format: %s, only .toml is supported", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Load reads TOML configuration from r.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML bytes, applies defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := toml.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("config: %s", strict.String())
		}
		return nil, fmt.Errorf("config: parse TOML: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills empty settings.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Version) == "" {
		c.Version = Version
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if strings.TrimSpace(c.LogFormat) == "" {
		c.LogFormat = DefaultLogFormat
	}
	if strings.TrimSpace(c.Server.Listen) == "" {
		c.Server.Listen = DefaultListen
	}
}

// Validate checks every setting and joins all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.Version != Version {
		errs = append(errs, fmt.Errorf("unsupported config version: %s", c.Version))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log_format %q", c.LogFormat))
	}
	if endpoint := strings.TrimSpace(c.Submit.Endpoint); endpoint != "" {
		if u, err := url.Parse(endpoint); err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, fmt.Errorf("submit.endpoint must be an absolute URL, got %q", endpoint))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}

// Overrides carries flag values that take precedence over the file. Empty
// values leave the file setting in place.
type Overrides struct {
	LogLevel     string
	LogFormat    string
	ContentDir   string
	TemplatesDir string
	Endpoint     string
	Listen       string
}

// Apply merges non-empty overrides and validates the result.
func (c *Config) Apply(o Overrides) error {
	set := func(dst *string, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*dst = trimmed
		}
	}
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	set(&c.Content.Dir, o.ContentDir)
	set(&c.Content.TemplatesDir, o.TemplatesDir)
	set(&c.Submit.Endpoint, o.Endpoint)
	set(&c.Server.Listen, o.Listen)
	return c.Validate()
}
