package fields

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/submission"
)

// Resolve builds a Field for every descriptor in order. A descriptor without a
// model name, or with one the resolver does not know, stops resolution with a
// *render.ConfigError.
func Resolve(resolver *Resolver, descriptors []model.FieldDescriptor) ([]Field, error) {
	out := make([]Field, 0, len(descriptors))
	for idx, desc := range descriptors {
		kind := Kind(strings.TrimSpace(desc.ModelName))
		if kind == "" {
			return nil, &render.ConfigError{Index: idx, Err: render.ErrMissingModelName}
		}
		factory, ok := resolver.Lookup(kind)
		if !ok {
			return nil, &render.ConfigError{Index: idx, ModelName: string(kind), Err: render.ErrNoMatchingComponent}
		}
		field, err := factory(desc)
		if err != nil {
			return nil, &render.ConfigError{Index: idx, ModelName: string(kind), Err: err}
		}
		out = append(out, field)
	}
	return out, nil
}

// Controls lists the controls of a rendered block in document order: the
// form-name input set to formName, the extra hidden inputs, the empty
// honeypot, then one control per field.
func Controls(formName string, resolved []Field, hidden ...render.HiddenField) []submission.Control {
	extra := render.ExtraHiddenFields(hidden...)
	controls := make([]submission.Control, 0, len(resolved)+len(extra)+2)
	controls = append(controls, hiddenControl(render.FormNameField(formName)))
	for _, field := range extra {
		controls = append(controls, hiddenControl(field))
	}
	controls = append(controls, hiddenControl(render.HoneypotField()))
	for _, field := range resolved {
		controls = append(controls, field.Input().Control())
	}
	return controls
}

func hiddenControl(field render.HiddenField) submission.Control {
	return submission.Control{Name: field.Name, Default: []string{field.Value}}
}

// NewForm resolves block and returns its live form. hidden must match the
// extra inputs the block was rendered with.
func NewForm(resolver *Resolver, block model.Block, hidden ...render.HiddenField) (*submission.Values, []Field, error) {
	resolved, err := Resolve(resolver, block.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("fields: resolve block %q: %w", block.ElementID, err)
	}
	return submission.NewValues(Controls(block.ElementID, resolved, hidden...)...), resolved, nil
}
