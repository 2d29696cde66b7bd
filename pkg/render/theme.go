package render

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeFromManifest flattens a manifest and one of its variants into the
// renderer configuration. Variant templates, tokens and asset files override
// the base manifest; fallbacks fill partial keys neither declares. Every token
// is also exposed as a `--token` CSS variable.
func ThemeFromManifest(manifest *theme.Manifest, variant string, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Variant:  strings.TrimSpace(variant),
		Partials: make(map[string]string),
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
	}
	for key, value := range fallbacks {
		cfg.Partials[key] = value
	}
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}
	cfg.Theme = manifest.Name

	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	merge := func(templates, tokens map[string]string, assets theme.Assets) {
		for key, value := range templates {
			cfg.Partials[key] = value
		}
		for key, value := range tokens {
			cfg.Tokens[key] = value
		}
		if assets.Prefix != "" {
			prefix = assets.Prefix
		}
		for key, value := range assets.Files {
			files[key] = value
		}
	}
	merge(manifest.Templates, manifest.Tokens, manifest.Assets)
	if v, ok := manifest.Variants[cfg.Variant]; ok {
		merge(v.Templates, v.Tokens, v.Assets)
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// ThemeFromSelection builds the renderer configuration for a selection
// resolved by a theme.ThemeSelector.
func ThemeFromSelection(selection *theme.Selection, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selection == nil {
		return nil, fmt.Errorf("render: theme selection is nil")
	}
	cfg := ThemeFromManifest(selection.Manifest, selection.Variant, fallbacks)
	if selection.Theme != "" {
		cfg.Theme = selection.Theme
	}
	return cfg, nil
}

// SelectTheme asks selector for name/variant and converts the result.
func SelectTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("render: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	return ThemeFromSelection(selection, fallbacks)
}
