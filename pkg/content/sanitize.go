package content

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formblock/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Sanitizer returns a decorator that strips markup from every string prop of
// a block and its submit button. Templates escape on output, so the result is
// plain text rather than entity-encoded HTML.
func Sanitizer() model.Decorator {
	return model.DecoratorFunc(func(block *model.Block) error {
		for idx := range block.Fields {
			block.Fields[idx].Props = sanitizeProps(block.Fields[idx].Props)
		}
		if button := block.SubmitButton; button != nil {
			button.Label = sanitizeText(button.Label)
			button.Props = sanitizeProps(button.Props)
		}
		return nil
	})
}

func sanitizeProps(props map[string]any) map[string]any {
	for key, value := range props {
		props[key] = sanitizeValue(value)
	}
	return props
}

func sanitizeValue(value any) any {
	switch v := value.(type) {
	case string:
		return sanitizeText(v)
	case []any:
		for idx, item := range v {
			v[idx] = sanitizeValue(item)
		}
		return v
	case []string:
		for idx, item := range v {
			v[idx] = sanitizeText(item)
		}
		return v
	case map[string]any:
		return sanitizeProps(v)
	default:
		return value
	}
}

func sanitizeText(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	return strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(raw)))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
