package fields

// Kind names a field component. Descriptors select it through their model
// name.
type Kind string

// Built-in kinds registered by NewDefaultRegistry.
const (
	KindText     Kind = "TextFormControl"
	KindEmail    Kind = "EmailFormControl"
	KindTextarea Kind = "TextareaFormControl"
	KindSelect   Kind = "SelectFormControl"
	KindCheckbox Kind = "CheckboxFormControl"
)

// Template paths of the built-in components, relative to the HTML renderer's
// template bundle.
const (
	TemplateText     = "templates/fields/text.tmpl"
	TemplateTextarea = "templates/fields/textarea.tmpl"
	TemplateSelect   = "templates/fields/select.tmpl"
	TemplateCheckbox = "templates/fields/checkbox.tmpl"
	TemplateSubmit   = "templates/fields/submit.tmpl"
)

// Partial keys looked up in theme partials to override a component template.
const (
	PartialText     = "formblock.text"
	PartialTextarea = "formblock.textarea"
	PartialSelect   = "formblock.select"
	PartialCheckbox = "formblock.checkbox"
	PartialSubmit   = "formblock.submit"
)

// DefaultPartials maps every partial key to its built-in template. It is a
// fresh map on each call.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialText:     TemplateText,
		PartialTextarea: TemplateTextarea,
		PartialSelect:   TemplateSelect,
		PartialCheckbox: TemplateCheckbox,
		PartialSubmit:   TemplateSubmit,
	}
}
