package fields

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	rendertemplate "github.com/goliatone/go-formblock/pkg/render/template"
	"github.com/goliatone/go-formblock/pkg/submission"
)

// Input describes the control a field contributes to the live form. Terminal
// prompts and the submission form are built from it.
type Input struct {
	Name        string
	Label       string
	Kind        Kind
	InputType   string
	Placeholder string
	Options     []string
	Required    bool
	Checkable   bool
	Checked     bool
	Default     string
}

// Control converts the input into a submission control.
func (in Input) Control() submission.Control {
	control := submission.Control{
		Name:      in.Name,
		Checkable: in.Checkable,
		Checked:   in.Checked,
	}
	if in.Checkable {
		control.CheckedValue = in.Default
		return control
	}
	control.Default = []string{in.Default}
	return control
}

// Prompt returns the label, falling back to the control name.
func (in Input) Prompt() string {
	if label := strings.TrimSpace(in.Label); label != "" {
		return label
	}
	return in.Name
}

// RenderContext carries what a component needs besides its own descriptor.
type RenderContext struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys to template paths overriding the defaults.
	Partials map[string]string
	// Values prefill the control when Prefilled is set.
	Values    []string
	Prefilled bool
	// FieldPath is emitted as data-sb-field-path when non-empty.
	FieldPath string
}

// Field is a resolved component ready to render.
type Field interface {
	Input() Input
	Render(buf *bytes.Buffer, ctx RenderContext) error
}

// Factory builds a Field from a descriptor.
type Factory func(model.FieldDescriptor) (Field, error)
