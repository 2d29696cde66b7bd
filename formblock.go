// Package formblock renders CMS form blocks and submits them to a form
// backend. The root package wires the built-in renderers together; the pkg/
// subpackages expose each stage on its own.
package formblock

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formblock/pkg/content"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/renderers/tui"
)

// Block is the form block props record.
type Block = model.Block

// RenderOptions describes per-request state, prefill values and theme
// overrides passed to renderers.
type RenderOptions = render.RenderOptions

// Renderer names registered by NewRegistry.
const (
	RendererHTML = html.Name
	RendererText = "text"
)

// NewRegistry returns a registry holding the HTML renderer (the default) and
// the plain text renderer. Both resolve fields through the same resolver.
func NewRegistry(options ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(options...)
	if err != nil {
		return nil, fmt.Errorf("formblock: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, fmt.Errorf("formblock: %w", err)
	}
	if err := registry.Register(tui.New(tui.WithResolver(htmlRenderer.Resolver()))); err != nil {
		return nil, fmt.Errorf("formblock: %w", err)
	}
	return registry, nil
}

// Render renders block with the named renderer from a default registry.
func Render(ctx context.Context, block Block, rendererName string, opts RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return registry.Render(ctx, rendererName, block, opts)
}

// LoadBlocks reads block documents from fsys. A nil fsys loads the bundled
// samples.
func LoadBlocks(fsys fs.FS, options ...content.LoadOption) (*content.Store, error) {
	if fsys == nil {
		fsys = content.EmbeddedFS()
	}
	return content.LoadFS(fsys, options...)
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// ThemeConfig resolves a theme selection into renderer configuration, using
// the built-in templates for any partial the theme leaves out.
func ThemeConfig(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	return render.SelectTheme(selector, name, variant, fields.DefaultPartials())
}
