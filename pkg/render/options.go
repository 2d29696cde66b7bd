package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formblock/pkg/submission"
)

// RenderOptions describe per-request data that renderers use to reflect the
// live form without mutating the block.
type RenderOptions struct {
	// State drives the disabled submit control and the status text.
	State submission.State
	// Values prefill controls keyed by control name, typically the snapshot
	// of a form whose submission failed.
	Values map[string][]string
	// Hidden adds inputs beside form-name and the honeypot (CSRF tokens,
	// preview session ids).
	Hidden []HiddenField
	// Theme carries partial overrides, tokens and CSS variables resolved by
	// go-theme.
	Theme *theme.RendererConfig
	// Locale, Translator and OnMissing localise status messages and any field
	// label declared with a labelKey prop.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// Messages overrides the default status texts before localisation.
	Messages *Messages
}
