package tui

import (
	"log/slog"

	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
)

// Theme captures optional formatting hints applied when printing messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the collector and the text renderer.
type Option func(*config)

type config struct {
	driver   PromptDriver
	resolver *fields.Resolver
	theme    Theme
	logger   *slog.Logger
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithResolver sets the field resolver. Defaults to the frozen built-in
// registry.
func WithResolver(resolver *fields.Resolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.resolver = resolver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

// WithLogger sets the logger used for prompt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(nil)
	}
	if cfg.resolver == nil {
		cfg.resolver = fields.NewDefaultRegistry().Freeze()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}
