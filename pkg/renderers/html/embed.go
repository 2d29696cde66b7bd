package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/fields/*.tmpl
var embeddedTemplates embed.FS

// FormTemplate is the root template rendering the form chrome.
const FormTemplate = "templates/form.tmpl"

// TemplatesFS exposes the embedded template bundle for consumers that want to
// use the built-in form rendering out of the box or copy it as a starting
// point for overrides.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
