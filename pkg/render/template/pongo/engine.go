// Package pongo renders the form templates with pongo2. Autoescaping stays on;
// templates mark pre-rendered markup with |safe.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formblock/pkg/render/template"
)

// DefaultExtension is appended to names that do not already carry it.
const DefaultExtension = ".tmpl"

type Option func(*config)

type config struct {
	layers    []fs.FS
	extension string
}

// WithLayers adds template sources. Layers are searched in the order given, so
// an override directory listed before the embedded bundle replaces single
// templates and leaves the rest to the bundle.
func WithLayers(layers ...fs.FS) Option {
	return func(cfg *config) {
		for _, layer := range layers {
			if layer != nil {
				cfg.layers = append(cfg.layers, layer)
			}
		}
	}
}

func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// Engine is safe for concurrent use. Compiled templates are cached by the
// underlying template set.
type Engine struct {
	set       *pongo2.TemplateSet
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

func New(options ...Option) (*Engine, error) {
	cfg := config{extension: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(cfg.layers) == 0 {
		return nil, errors.New("pongo: at least one template layer is required")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.layers))
	for _, layer := range cfg.layers {
		loaders = append(loaders, pongo2.NewFSLoader(layer))
	}
	registerFilters()

	return &Engine{
		set:       pongo2.NewSet("formblock", loaders...),
		extension: cfg.extension,
	}, nil
}

// RenderTemplate executes the named template with data as its context.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.set.FromCache(path)
	if err != nil {
		return "", fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	return out, nil
}

// Filters are process wide in pongo2, so they are registered once.
func registerFilters() {
	if !pongo2.FilterExists("classnames") {
		_ = pongo2.RegisterFilter("classnames", filterClassNames)
	}
}

// filterClassNames joins class lists into one attribute value. Blank entries
// and repeats are dropped; the first occurrence keeps its position.
func filterClassNames(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var parts []string
	switch v := in.Interface().(type) {
	case nil:
	case []string:
		for _, item := range v {
			parts = append(parts, strings.Fields(item)...)
		}
	case []any:
		for _, item := range v {
			if item != nil {
				parts = append(parts, strings.Fields(fmt.Sprint(item))...)
			}
		}
	default:
		parts = strings.Fields(in.String())
	}

	seen := make(map[string]bool, len(parts))
	out := parts[:0]
	for _, part := range parts {
		if !seen[part] {
			seen[part] = true
			out = append(out, part)
		}
	}
	return pongo2.AsValue(strings.Join(out, " ")), nil
}
