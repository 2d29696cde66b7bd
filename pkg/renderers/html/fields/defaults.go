package fields

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(KindText, TextFactory("text"))
	registry.MustRegister(KindEmail, TextFactory("email"))
	registry.MustRegister(KindTextarea, TextareaFactory)
	registry.MustRegister(KindSelect, SelectFactory)
	registry.MustRegister(KindCheckbox, CheckboxFactory)
	return registry
}

// TextFactory builds single line inputs. The inputType prop overrides
// defaultType.
func TextFactory(defaultType string) Factory {
	return func(desc model.FieldDescriptor) (Field, error) {
		input := baseInput(desc)
		input.InputType = firstNonEmpty(desc.String("inputType"), defaultType, "text")
		switch input.InputType {
		case "email":
			input.Kind = KindEmail
		default:
			input.Kind = KindText
		}
		return &templateField{
			input:      input,
			desc:       desc,
			template:   TemplateText,
			partialKey: PartialText,
		}, nil
	}
}

// TextareaFactory builds multi line inputs.
func TextareaFactory(desc model.FieldDescriptor) (Field, error) {
	input := baseInput(desc)
	input.Kind = KindTextarea
	return &templateField{
		input:      input,
		desc:       desc,
		template:   TemplateTextarea,
		partialKey: PartialTextarea,
	}, nil
}

// SelectFactory builds a single choice select. Options come from the options
// prop. Without a placeholder or defaultValue the first option is the default,
// which is what a browser submits for an untouched select.
func SelectFactory(desc model.FieldDescriptor) (Field, error) {
	input := baseInput(desc)
	input.Kind = KindSelect
	input.Options = desc.Strings("options")
	if input.Default != "" && len(input.Options) > 0 && !contains(input.Options, input.Default) {
		return nil, fmt.Errorf("fields: select %q default %q is not an option", input.Name, input.Default)
	}
	if input.Default == "" && input.Placeholder == "" && len(input.Options) > 0 {
		input.Default = input.Options[0]
	}
	return &templateField{
		input:      input,
		desc:       desc,
		template:   TemplateSelect,
		partialKey: PartialSelect,
	}, nil
}

// CheckboxFactory builds a checkbox. The value prop is submitted when checked
// and defaults to "on"; defaultValue sets the initial checked state.
func CheckboxFactory(desc model.FieldDescriptor) (Field, error) {
	input := baseInput(desc)
	input.Kind = KindCheckbox
	input.Checkable = true
	input.Default = desc.String("value")
	input.Checked = desc.Bool("defaultValue") || desc.Bool("checked")
	return &templateField{
		input:      input,
		desc:       desc,
		template:   TemplateCheckbox,
		partialKey: PartialCheckbox,
	}, nil
}

type templateField struct {
	input      Input
	desc       model.FieldDescriptor
	template   string
	partialKey string
}

func (f *templateField) Input() Input { return f.input }

func (f *templateField) Render(buf *bytes.Buffer, ctx RenderContext) error {
	if ctx.Template == nil {
		return fmt.Errorf("fields: template renderer not configured for %q", f.template)
	}

	rendered, err := ctx.Template.RenderTemplate(resolveTemplate(ctx.Partials, f.partialKey, f.template), map[string]any{
		"field": f.data(ctx),
	})
	if err != nil {
		return fmt.Errorf("fields: render %s %q: %w", f.input.Kind, f.input.Name, err)
	}
	buf.WriteString(rendered)
	return nil
}

func (f *templateField) data(ctx RenderContext) map[string]any {
	in := f.input
	value := in.Default
	checked := in.Checked
	if ctx.Prefilled {
		value = ""
		checked = false
		if len(ctx.Values) > 0 {
			value = ctx.Values[0]
			checked = true
		}
		if in.Checkable {
			value = in.Default
		}
	}

	options := make([]map[string]any, 0, len(in.Options))
	for _, option := range in.Options {
		options = append(options, map[string]any{
			"value":    option,
			"selected": option == value,
		})
	}

	return map[string]any{
		"id":          ControlID(f.desc),
		"name":        in.Name,
		"label":       in.Label,
		"hideLabel":   f.desc.Bool("hideLabel"),
		"placeholder": in.Placeholder,
		"required":    in.Required,
		"inputType":   in.InputType,
		"value":       value,
		"checked":     checked,
		"options":     options,
		"classes":     ControlClasses(f.desc),
		"fieldPath":   ctx.FieldPath,
	}
}

// ControlID returns the element id of a control: the elementId prop, or the
// control name.
func ControlID(desc model.FieldDescriptor) string {
	return firstNonEmpty(desc.String("elementId"), desc.Name())
}

// ControlClasses returns the wrapper classes for a control, honouring the
// width prop (full or 1/2).
func ControlClasses(desc model.FieldDescriptor) []string {
	classes := []string{"sb-form-control", "w-full"}
	if desc.String("width") == "1/2" {
		classes = append(classes, "sm:w-formField")
	}
	if extra := desc.String("className"); extra != "" {
		classes = append(classes, strings.Fields(extra)...)
	}
	return classes
}

func baseInput(desc model.FieldDescriptor) Input {
	return Input{
		Name:        desc.Name(),
		Label:       desc.String("label"),
		Placeholder: desc.String("placeholder"),
		Required:    desc.Bool("isRequired"),
		Default:     desc.String("defaultValue"),
	}
}

func resolveTemplate(partials map[string]string, key, fallback string) string {
	if partials != nil {
		if candidate := strings.TrimSpace(partials[key]); candidate != "" {
			return candidate
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
