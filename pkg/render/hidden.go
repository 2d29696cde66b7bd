package render

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// FormNameInput is the hidden input the form backend uses to detect which
	// form a submission belongs to.
	FormNameInput = "form-name"
	// HoneypotInput is the visually hidden input real users never fill.
	HoneypotInput = "bot-field"
)

// HiddenField represents a hidden form input emitted alongside the fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// FormNameField returns the form-name input for a block element id.
func FormNameField(elementID string) HiddenField {
	return Hidden(FormNameInput, strings.TrimSpace(elementID))
}

// ExtraHiddenFields returns the extra inputs in the order they are rendered,
// between form-name and the honeypot. Reserved and blank names are dropped.
func ExtraHiddenFields(extra ...HiddenField) []HiddenField {
	return SortedHiddenFields(MergeHiddenFields(nil, extra...))
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions. The reserved
// form-name and honeypot inputs cannot be overridden this way.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" && !reserved(trimmed) {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" || reserved(name) {
			continue
		}
		out[name] = field.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering. Empty names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{
			Name:  strings.TrimSpace(name),
			Value: fields[name],
		})
	}
	return result
}

func reserved(name string) bool {
	return name == FormNameInput || name == HoneypotInput
}

// HoneypotField returns the empty honeypot input.
func HoneypotField() HiddenField {
	return HiddenField{Name: HoneypotInput}
}
