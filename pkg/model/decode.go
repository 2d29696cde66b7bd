package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	metadataKey     = "__metadata"
	modelNameKey    = "modelName"
	typeKey         = "type"
	fieldPathKey    = "data-sb-field-path"
	fieldPathAltKey = "fieldPath"
)

// DecodeBlock builds a Block from a decoded JSON/YAML document. Unknown keys are
// ignored; shape mismatches on known keys are reported.
func DecodeBlock(raw map[string]any) (Block, error) {
	var block Block
	if raw == nil {
		return block, nil
	}

	block.ElementID = stringValue(raw["elementId"])
	block.ClassName = stringValue(raw["className"])
	block.FieldPath = stringValue(raw[fieldPathKey])
	if block.FieldPath == "" {
		block.FieldPath = stringValue(raw[fieldPathAltKey])
	}

	if rawFields, ok := raw["fields"]; ok && rawFields != nil {
		items, ok := rawFields.([]any)
		if !ok {
			return Block{}, fmt.Errorf("model: fields must be a list, got %T", rawFields)
		}
		block.Fields = make([]FieldDescriptor, 0, len(items))
		for idx, item := range items {
			entry, ok := asMap(item)
			if !ok {
				return Block{}, fmt.Errorf("model: field %d must be an object, got %T", idx, item)
			}
			block.Fields = append(block.Fields, FieldFromMap(entry))
		}
	}

	if rawButton, ok := raw["submitButton"]; ok && rawButton != nil {
		entry, ok := asMap(rawButton)
		if !ok {
			return Block{}, fmt.Errorf("model: submitButton must be an object, got %T", rawButton)
		}
		button := submitButtonFromMap(entry)
		block.SubmitButton = &button
	}

	if rawStyles, ok := raw["styles"]; ok && rawStyles != nil {
		entry, ok := asMap(rawStyles)
		if !ok {
			return Block{}, fmt.Errorf("model: styles must be an object, got %T", rawStyles)
		}
		styles, err := stylesFromMap(entry)
		if err != nil {
			return Block{}, err
		}
		block.Styles = styles
	}

	return block, nil
}

// FieldFromMap builds a descriptor. The model name is read from
// `__metadata.modelName` and falls back to a top-level `type` key.
func FieldFromMap(raw map[string]any) FieldDescriptor {
	desc := FieldDescriptor{Props: make(map[string]any, len(raw))}
	if meta, ok := asMap(raw[metadataKey]); ok {
		desc.ModelName = stringValue(meta[modelNameKey])
	}
	usedType := false
	if desc.ModelName == "" {
		desc.ModelName = stringValue(raw[typeKey])
		usedType = desc.ModelName != ""
	}
	for key, value := range raw {
		if key == metadataKey || (usedType && key == typeKey) {
			continue
		}
		desc.Props[key] = value
	}
	return desc
}

func submitButtonFromMap(raw map[string]any) SubmitButton {
	button := SubmitButton{
		Label:        stringValue(raw["label"]),
		ElementID:    stringValue(raw["elementId"]),
		ClassName:    stringValue(raw["className"]),
		Style:        stringValue(raw["style"]),
		Icon:         stringValue(raw["icon"]),
		ShowIcon:     boolValue(raw["showIcon"]),
		IconPosition: stringValue(raw["iconPosition"]),
	}
	for key, value := range raw {
		switch key {
		case "label", "elementId", "className", "style", "icon", "showIcon", "iconPosition", metadataKey, typeKey:
			continue
		}
		if button.Props == nil {
			button.Props = make(map[string]any)
		}
		button.Props[key] = value
	}
	return button
}

func stylesFromMap(raw map[string]any) (*Styles, error) {
	styles := &Styles{}
	rawSelf, ok := raw["self"]
	if !ok || rawSelf == nil {
		return styles, nil
	}
	self, ok := asMap(rawSelf)
	if !ok {
		return nil, fmt.Errorf("model: styles.self must be an object, got %T", rawSelf)
	}

	out := &SelfStyles{
		Margin:         stringsValue(self["margin"]),
		Padding:        stringsValue(self["padding"]),
		BorderStyle:    stringValue(self["borderStyle"]),
		BorderColor:    stringValue(self["borderColor"]),
		BorderRadius:   stringValue(self["borderRadius"]),
		JustifyContent: stringValue(self["justifyContent"]),
	}
	if rawWidth, ok := self["borderWidth"]; ok && rawWidth != nil {
		width, err := intValue(rawWidth)
		if err != nil {
			return nil, fmt.Errorf("model: styles.self.borderWidth: %w", err)
		}
		out.BorderWidth = &width
	}
	styles.Self = out
	return styles, nil
}

func intValue(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported integer type %T", value)
	}
}

// asMap accepts both map[string]any and the map[any]any shape some YAML
// decoders produce for nested documents.
func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}
