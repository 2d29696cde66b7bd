package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Block holds the FormBlock props. An empty Fields slice means the block has no
// content and renders nothing.
type Block struct {
	Fields       []FieldDescriptor `json:"fields,omitempty"`
	ElementID    string            `json:"elementId,omitempty"`
	SubmitButton *SubmitButton     `json:"submitButton,omitempty"`
	ClassName    string            `json:"className,omitempty"`
	Styles       *Styles           `json:"styles,omitempty"`
	// FieldPath is echoed as data-sb-field-path so visual editors can map the
	// rendered markup back to the content document.
	FieldPath string `json:"fieldPath,omitempty"`
}

// HasContent reports whether the block renders anything at all.
func (b Block) HasContent() bool {
	return len(b.Fields) > 0
}

// FieldDescriptor describes one form control. ModelName selects the renderer;
// Props are passed through unchanged.
type FieldDescriptor struct {
	ModelName string         `json:"modelName,omitempty"`
	Props     map[string]any `json:"props,omitempty"`
}

// Name returns the control name authored in the CMS.
func (d FieldDescriptor) Name() string {
	return d.String("name")
}

// String reads a scalar prop as a trimmed string. Numbers and booleans are
// formatted; other shapes yield "".
func (d FieldDescriptor) String(key string) string {
	return stringValue(d.Props[key])
}

// Bool reads a prop as a boolean, accepting "true"/"false" strings.
func (d FieldDescriptor) Bool(key string) bool {
	return boolValue(d.Props[key])
}

// Strings reads a list prop. A scalar is returned as a single entry.
func (d FieldDescriptor) Strings(key string) []string {
	return stringsValue(d.Props[key])
}

// Has reports whether the prop is present.
func (d FieldDescriptor) Has(key string) bool {
	_, ok := d.Props[key]
	return ok
}

// Clone returns a copy whose Props map can be mutated independently.
func (d FieldDescriptor) Clone() FieldDescriptor {
	return FieldDescriptor{
		ModelName: d.ModelName,
		Props:     cloneProps(d.Props),
	}
}

// SubmitButton carries the submit control props.
type SubmitButton struct {
	Label        string         `json:"label,omitempty"`
	ElementID    string         `json:"elementId,omitempty"`
	ClassName    string         `json:"className,omitempty"`
	Style        string         `json:"style,omitempty"`
	Icon         string         `json:"icon,omitempty"`
	ShowIcon     bool           `json:"showIcon,omitempty"`
	IconPosition string         `json:"iconPosition,omitempty"`
	Props        map[string]any `json:"props,omitempty"`
}

// Styles mirrors the theme `styles` record; only `self` applies to the form.
type Styles struct {
	Self *SelfStyles `json:"self,omitempty"`
}

// SelfStyles lists the layout intents the form block understands.
type SelfStyles struct {
	Margin         []string `json:"margin,omitempty"`
	Padding        []string `json:"padding,omitempty"`
	BorderWidth    *int     `json:"borderWidth,omitempty"`
	BorderStyle    string   `json:"borderStyle,omitempty"`
	BorderColor    string   `json:"borderColor,omitempty"`
	BorderRadius   string   `json:"borderRadius,omitempty"`
	JustifyContent string   `json:"justifyContent,omitempty"`
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}

func stringsValue(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return trimAll(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := stringValue(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneProps(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneProps(v)
	case []any:
		out := make([]any, len(v))
		for idx, item := range v {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}
