package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/submission"
)

// Collector fills a block's live form from terminal prompts.
type Collector struct {
	driver   PromptDriver
	resolver *fields.Resolver
	theme    Theme
	logger   *slog.Logger
}

// NewCollector constructs a collector with defaults (survey driver, built-in
// fields).
func NewCollector(options ...Option) *Collector {
	cfg := newConfig(options)
	return &Collector{
		driver:   cfg.driver,
		resolver: cfg.resolver,
		theme:    cfg.theme,
		logger:   cfg.logger,
	}
}

// Collect prompts for every field of block in order and returns the filled
// form. The hidden form-name and honeypot controls are never prompted for.
func (c *Collector) Collect(ctx context.Context, block model.Block) (*submission.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	form, resolved, err := fields.NewForm(c.resolver, block)
	if err != nil {
		return nil, err
	}

	for _, field := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		input := field.Input()
		if input.Name == "" {
			c.logger.Debug("tui: skipping unnamed field", "kind", input.Kind)
			continue
		}
		if err := c.prompt(ctx, form, input); err != nil {
			return nil, fmt.Errorf("tui: prompt %q: %w", input.Name, err)
		}
	}
	return form, nil
}

// Report prints the status text for state through the driver.
func (c *Collector) Report(ctx context.Context, state submission.State) error {
	msgs := render.DefaultMessages()
	switch {
	case state.ErrorMessage != "":
		return c.driver.Info(ctx, c.theme.ErrorPrefix+state.ErrorMessage)
	case state.Submitting:
		return c.driver.Info(ctx, c.theme.InfoPrefix+msgs.Submitting)
	case state.Submitted:
		return c.driver.Info(ctx, c.theme.InfoPrefix+msgs.Submitted)
	default:
		return nil
	}
}

func (c *Collector) prompt(ctx context.Context, form *submission.Values, input fields.Input) error {
	message := c.theme.PromptPrefix + input.Prompt()

	switch input.Kind {
	case fields.KindCheckbox:
		checked, err := c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: input.Checked})
		if err != nil {
			return err
		}
		return form.Check(input.Name, checked)

	case fields.KindSelect:
		options := input.Options
		if input.Placeholder != "" && !input.Required {
			options = append([]string{""}, options...)
		}
		if len(options) == 0 {
			return nil
		}
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: indexOf(options, input.Default),
			Help:         input.Placeholder,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("tui: selection %d out of range", idx)
		}
		return form.Set(input.Name, options[idx])

	case fields.KindTextarea:
		value, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message:  message,
			Default:  input.Default,
			Help:     input.Placeholder,
			Required: input.Required,
		})
		if err != nil {
			return err
		}
		if input.Required && strings.TrimSpace(value) == "" {
			return ErrRequired
		}
		return form.Set(input.Name, value)

	default:
		value, err := c.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     input.Default,
			Placeholder: input.Placeholder,
			Validator:   validatorFor(input),
		})
		if err != nil {
			return err
		}
		return form.Set(input.Name, value)
	}
}

func validatorFor(input fields.Input) func(string) error {
	return func(value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			if input.Required {
				return ErrRequired
			}
			return nil
		}
		if input.InputType == "email" {
			if _, err := mail.ParseAddress(value); err != nil {
				return fmt.Errorf("tui: invalid email address: %w", err)
			}
		}
		return nil
	}
}
