package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
)

// Renderer implements render.Renderer with a plain text summary of a block,
// useful for terminals and logs.
type Renderer struct {
	resolver *fields.Resolver
	theme    Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	cfg := newConfig(options)
	return &Renderer{resolver: cfg.resolver, theme: cfg.theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "text"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render lists the controls of block in order, followed by the submit label
// and any status text. A block without fields renders nothing.
func (r *Renderer) Render(ctx context.Context, block model.Block, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !block.HasContent() {
		return nil, nil
	}
	resolved, err := fields.Resolve(r.resolver, render.LocalizeFields(block.Fields, opts))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Form %s\n", block.ElementID)
	for _, field := range resolved {
		input := field.Input()
		fmt.Fprintf(&b, "%s%s [%s]", r.theme.PromptPrefix, input.Prompt(), input.Name)
		if input.Required {
			b.WriteString(" *")
		}
		if values := opts.Values[input.Name]; len(values) > 0 {
			fmt.Fprintf(&b, " = %s", strings.Join(values, ", "))
		}
		if len(input.Options) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(input.Options, " | "))
		}
		b.WriteByte('\n')
	}

	if block.SubmitButton != nil {
		label := block.SubmitButton.Label
		if label == "" {
			label = fields.DefaultSubmitLabel
		}
		state := ""
		if opts.State.Submitting {
			state = " (disabled)"
		}
		fmt.Fprintf(&b, "[ %s ]%s\n", label, state)

		msgs := render.LocalizeMessages(opts)
		if opts.State.Submitting {
			fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, msgs.Submitting)
		}
		if opts.State.Submitted {
			fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, msgs.Submitted)
		}
		if message := render.StatusError(opts.State, msgs); message != "" {
			fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
		}
	}
	return []byte(b.String()), nil
}
