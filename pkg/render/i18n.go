package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/submission"
)

// Message keys looked up through a Translator.
const (
	MessageKeySubmitting = "formblock.status.submitting"
	MessageKeySubmitted  = "formblock.status.submitted"
	MessageKeyError      = "formblock.status.error"

	fieldLabelKeyProp       = "labelKey"
	fieldPlaceholderKeyProp = "placeholderKey"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key is
// set but no Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler picks the text used when a key cannot be
// translated. fallback is the untranslated text.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// Messages holds the status texts rendered under the submit control.
type Messages struct {
	Submitting string
	Submitted  string
	Error      string
}

// DefaultMessages returns the built-in English texts.
func DefaultMessages() Messages {
	return Messages{
		Submitting: "Submitting...",
		Submitted:  "Thank you! Your message has been sent.",
		Error:      submission.GenericErrorMessage,
	}
}

// LocalizeMessages resolves the status texts for the given options. Only the
// generic error is translated: any other error message is rendered verbatim.
func LocalizeMessages(opts RenderOptions) Messages {
	msgs := DefaultMessages()
	if opts.Messages != nil {
		if v := strings.TrimSpace(opts.Messages.Submitting); v != "" {
			msgs.Submitting = v
		}
		if v := strings.TrimSpace(opts.Messages.Submitted); v != "" {
			msgs.Submitted = v
		}
		if v := strings.TrimSpace(opts.Messages.Error); v != "" {
			msgs.Error = v
		}
	}
	if opts.Translator == nil {
		return msgs
	}
	msgs.Submitting = translate(opts, MessageKeySubmitting, msgs.Submitting)
	msgs.Submitted = translate(opts, MessageKeySubmitted, msgs.Submitted)
	msgs.Error = translate(opts, MessageKeyError, msgs.Error)
	return msgs
}

// StatusError returns the error text to show for a state, substituting the
// localised generic message.
func StatusError(state submission.State, msgs Messages) string {
	message := strings.TrimSpace(state.ErrorMessage)
	if message == "" {
		return ""
	}
	if message == submission.GenericErrorMessage {
		return msgs.Error
	}
	return message
}

// LocalizeProps returns a copy of field props with labelKey/placeholderKey
// resolved into label/placeholder. The input map is never mutated.
func LocalizeProps(props map[string]any, opts RenderOptions) map[string]any {
	labelKey := propString(props, fieldLabelKeyProp)
	placeholderKey := propString(props, fieldPlaceholderKeyProp)
	if labelKey == "" && placeholderKey == "" {
		return props
	}

	out := make(map[string]any, len(props))
	for key, value := range props {
		out[key] = value
	}
	if labelKey != "" {
		out["label"] = translate(opts, labelKey, propString(props, "label"))
	}
	if placeholderKey != "" {
		out["placeholder"] = translate(opts, placeholderKey, propString(props, "placeholder"))
	}
	return out
}

// LocalizeFields applies LocalizeProps to every descriptor.
func LocalizeFields(descriptors []model.FieldDescriptor, opts RenderOptions) []model.FieldDescriptor {
	out := make([]model.FieldDescriptor, len(descriptors))
	for idx, desc := range descriptors {
		out[idx] = model.FieldDescriptor{
			ModelName: desc.ModelName,
			Props:     LocalizeProps(desc.Props, opts),
		}
	}
	return out
}

func translate(opts RenderOptions, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	if opts.Translator == nil {
		return onMissing(opts.Locale, key, fallback, ErrMissingTranslator)
	}
	result, err := opts.Translator.Translate(opts.Locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(opts.Locale, key, fallback, err)
}

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func propString(props map[string]any, key string) string {
	if props == nil {
		return ""
	}
	value, _ := props[key].(string)
	return strings.TrimSpace(value)
}
