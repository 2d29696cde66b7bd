package pongo_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formblock/pkg/render/template/pongo"
)

func bundle() fstest.MapFS {
	return fstest.MapFS{
		"templates/hello.tmpl":   {Data: []byte(`Hello {{ name }}!`)},
		"templates/classes.tmpl": {Data: []byte(`<div class="{{ classes|classnames }}"></div>`)},
		"templates/button.tmpl":  {Data: []byte(`<button>{{ label }}</button>`)},
	}
}

func newEngine(t *testing.T, layers ...fstest.MapFS) *pongo.Engine {
	t.Helper()
	opts := make([]pongo.Option, 0, len(layers))
	for _, layer := range layers {
		opts = append(opts, pongo.WithLayers(layer))
	}
	engine, err := pongo.New(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t, bundle())

	for _, name := range []string{"templates/hello", "templates/hello.tmpl"} {
		got, err := engine.RenderTemplate(name, map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if got != "Hello Ada!" {
			t.Fatalf("render %s: got %q", name, got)
		}
	}
}

func TestEngine_EscapesByDefault(t *testing.T) {
	engine := newEngine(t, bundle())

	got, err := engine.RenderTemplate("templates/hello", map[string]any{"name": "<b>Ada</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("expected escaped output, got %q", got)
	}
}

func TestEngine_ClassNamesFilter(t *testing.T) {
	engine := newEngine(t, bundle())

	got, err := engine.RenderTemplate("templates/classes", map[string]any{
		"classes": []string{"flex  gap-8", "", "flex", "justify-start"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `<div class="flex gap-8 justify-start"></div>`; got != want {
		t.Fatalf("classnames mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_OverrideLayerShadowsSingleTemplates(t *testing.T) {
	override := fstest.MapFS{
		"templates/button.tmpl":     {Data: []byte(`<button class="acme">{{ label }}</button>`)},
		"themes/acme/greeting.tmpl": {Data: []byte(`Hi {{ name }}`)},
	}
	engine := newEngine(t, override, bundle())

	cases := map[string]string{
		"templates/button":     `<button class="acme">Send</button>`,
		"templates/hello":      "Hello Ada!",
		"themes/acme/greeting": "Hi Ada",
	}
	for name, want := range cases {
		got, err := engine.RenderTemplate(name, map[string]any{"name": "Ada", "label": "Send"})
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if got != want {
			t.Fatalf("render %s\nwant: %q\n got: %q", name, want, got)
		}
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t, bundle())
	if _, err := engine.RenderTemplate("templates/missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestEngine_RequiresLayer(t *testing.T) {
	if _, err := pongo.New(pongo.WithLayers(nil)); err == nil {
		t.Fatalf("expected error without template layers")
	}
}
