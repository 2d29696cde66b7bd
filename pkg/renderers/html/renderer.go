package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	rendertemplate "github.com/goliatone/go-formblock/pkg/render/template"
	"github.com/goliatone/go-formblock/pkg/render/template/pongo"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/styles"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	overrides        []fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	resolver         *fields.Resolver
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers a directory of template overrides over the bundle.
// A template missing from the directory is served from the bundle, so a theme
// can replace one partial without copying the rest.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.overrides = append(cfg.overrides, os.DirFS(path))
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
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

// Renderer renders a FormBlock as an HTML fragment.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	resolver  *fields.Resolver
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.resolver == nil {
		cfg.resolver = fields.NewDefaultRegistry().Freeze()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithLayers(cfg.overrides...),
			pongo.WithLayers(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, resolver: cfg.resolver}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Resolver exposes the field resolver so callers build the live form from the
// same components the markup was rendered with.
func (r *Renderer) Resolver() *fields.Resolver {
	return r.resolver
}

// Render writes the form block. A block without fields renders nothing and
// returns nil output. Configuration errors abort rendering and are returned
// as *render.ConfigError.
func (r *Renderer) Render(_ context.Context, block model.Block, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if !block.HasContent() {
		return nil, nil
	}

	resolved, err := fields.Resolve(r.resolver, render.LocalizeFields(block.Fields, opts))
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}
	annotate := strings.TrimSpace(block.FieldPath) != ""

	renderedFields := make([]string, 0, len(resolved))
	for idx, field := range resolved {
		values, prefilled := lookupValues(opts.Values, field.Input().Name)
		ctx := fields.RenderContext{
			Template:  r.templates,
			Partials:  partials,
			Values:    values,
			Prefilled: prefilled,
		}
		if annotate {
			ctx.FieldPath = "." + strconv.Itoa(idx)
		}
		var buf bytes.Buffer
		if err := field.Render(&buf, ctx); err != nil {
			return nil, fmt.Errorf("html renderer: field %d: %w", idx, err)
		}
		renderedFields = append(renderedFields, buf.String())
	}

	var actions map[string]any
	if block.SubmitButton != nil {
		actions, err = r.renderActions(block, partials, annotate, opts)
		if err != nil {
			return nil, err
		}
	}

	formFieldPath := ""
	fieldsPath := ""
	if annotate {
		formFieldPath = block.FieldPath
		fieldsPath = ".fields"
	}

	result, err := r.templates.RenderTemplate(FormTemplate, map[string]any{
		"form": map[string]any{
			"id":            block.ElementID,
			"classes":       styles.Join(styles.BlockClasses(block.ClassName, block.Styles)...),
			"style":         cssVarsStyle(opts),
			"fieldPath":     formFieldPath,
			"formName":      render.FormNameField(block.ElementID).Value,
			"hidden":        hiddenFields(opts.Hidden),
			"fieldsClasses": styles.Join(styles.FieldsClasses(block.Styles)...),
			"fieldsPath":    fieldsPath,
			"fields":        renderedFields,
			"actions":       actions,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderActions(block model.Block, partials map[string]string, annotate bool, opts render.RenderOptions) (map[string]any, error) {
	ctx := fields.SubmitContext{
		RenderContext: fields.RenderContext{Template: r.templates, Partials: partials},
		Disabled:      opts.State.Submitting,
	}
	if annotate {
		ctx.FieldPath = ".submitButton"
	}

	var buf bytes.Buffer
	if err := fields.RenderSubmitButton(&buf, *block.SubmitButton, ctx); err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	msgs := render.LocalizeMessages(opts)
	statuses := make([]map[string]any, 0, 3)
	if opts.State.Submitting {
		statuses = append(statuses, status("submitting", "mt-4 text-gray-600 text-center", msgs.Submitting))
	}
	if opts.State.Submitted {
		statuses = append(statuses, status("submitted", "mt-4 text-green-600 text-center", msgs.Submitted))
	}
	if message := render.StatusError(opts.State, msgs); message != "" {
		statuses = append(statuses, status("error", "mt-4 text-red-600 text-center", message))
	}

	return map[string]any{
		"classes":  styles.Join(styles.ActionsClasses(block.Styles)...),
		"button":   buf.String(),
		"statuses": statuses,
	}, nil
}

func status(kind, classes, text string) map[string]any {
	return map[string]any{"kind": kind, "classes": classes, "text": text}
}

func lookupValues(values map[string][]string, name string) ([]string, bool) {
	if values == nil {
		return nil, false
	}
	return values[name], true
}

func hiddenFields(extra []render.HiddenField) []map[string]string {
	sorted := render.ExtraHiddenFields(extra...)
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func cssVarsStyle(opts render.RenderOptions) string {
	if opts.Theme == nil || len(opts.Theme.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(opts.Theme.CSSVars))
	for name := range opts.Theme.CSSVars {
		if strings.HasPrefix(strings.TrimSpace(name), "--") {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(name))
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(opts.Theme.CSSVars[name]))
		b.WriteByte(';')
	}
	return b.String()
}
