package template

// TemplateRenderer renders a named template from the bundle. Field renderers
// receive it through their render context; the pongo subpackage provides the
// default implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
