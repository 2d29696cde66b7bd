package fields

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
)

// DefaultSubmitLabel is used when the submit descriptor has no label.
const DefaultSubmitLabel = "Submit"

// SubmitContext carries the live state the submit control reflects.
type SubmitContext struct {
	RenderContext
	// Disabled is set while a submission is in flight.
	Disabled bool
}

// RenderSubmitButton writes the submit control for button.
func RenderSubmitButton(buf *bytes.Buffer, button model.SubmitButton, ctx SubmitContext) error {
	if ctx.Template == nil {
		return fmt.Errorf("fields: template renderer not configured for %q", TemplateSubmit)
	}

	iconPosition := strings.ToLower(button.IconPosition)
	if iconPosition != "left" {
		iconPosition = "right"
	}
	style := firstNonEmpty(button.Style, "primary")

	classes := []string{"sb-component", "sb-component-block", "sb-component-button", "sb-component-button-" + style}
	if button.ClassName != "" {
		classes = append(classes, strings.Fields(button.ClassName)...)
	}

	rendered, err := ctx.Template.RenderTemplate(resolveTemplate(ctx.Partials, PartialSubmit, TemplateSubmit), map[string]any{
		"button": map[string]any{
			"id":           button.ElementID,
			"label":        firstNonEmpty(button.Label, DefaultSubmitLabel),
			"classes":      classes,
			"icon":         button.Icon,
			"showIcon":     button.ShowIcon && button.Icon != "",
			"iconPosition": iconPosition,
			"disabled":     ctx.Disabled,
			"fieldPath":    ctx.FieldPath,
		},
	})
	if err != nil {
		return fmt.Errorf("fields: render submit button: %w", err)
	}
	buf.WriteString(rendered)
	return nil
}
