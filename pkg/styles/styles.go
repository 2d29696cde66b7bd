package styles

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
)

// DefaultJustifyContent applies when a block does not set justifyContent.
const DefaultJustifyContent = "flex-start"

// DefaultBorderColor applies when a bordered block does not set a colour.
const DefaultBorderColor = "border-primary"

// BaseClasses are always present on the form element.
var BaseClasses = []string{"sb-component", "sb-component-block", "sb-component-form-block"}

// Partial selects the style intents to map. Zero values are skipped.
type Partial struct {
	Margin         []string
	Padding        []string
	BorderWidth    *int
	BorderStyle    string
	BorderColor    string
	BorderRadius   string
	JustifyContent string
}

var (
	justifyContentClasses = map[string]string{
		"flex-start":    "justify-start",
		"flex-end":      "justify-end",
		"center":        "justify-center",
		"space-between": "justify-between",
		"space-around":  "justify-around",
		"space-evenly":  "justify-evenly",
	}
	borderStyleClasses = map[string]string{
		"solid":  "border-solid",
		"dashed": "border-dashed",
		"dotted": "border-dotted",
		"double": "border-double",
		"none":   "border-none",
	}
	borderRadiusClasses = map[string]string{
		"none":      "rounded-none",
		"xx-small":  "rounded-xs",
		"x-small":   "rounded-sm",
		"small":     "rounded",
		"medium":    "rounded-md",
		"large":     "rounded-lg",
		"x-large":   "rounded-xl",
		"xx-large":  "rounded-2xl",
		"xxx-large": "rounded-3xl",
		"full":      "rounded-full",
	}
)

// MapStyles converts a partial into a space separated class list. Enumerated
// values use the lookup tables; anything else is taken to be a class name.
func MapStyles(p Partial) string {
	classes := make([]string, 0, 8)
	classes = append(classes, clean(p.Margin)...)
	classes = append(classes, clean(p.Padding)...)
	if p.BorderWidth != nil {
		classes = append(classes, borderWidthClass(*p.BorderWidth))
	}
	classes = appendMapped(classes, borderStyleClasses, p.BorderStyle)
	if color := strings.TrimSpace(p.BorderColor); color != "" {
		classes = append(classes, color)
	}
	classes = appendMapped(classes, borderRadiusClasses, p.BorderRadius)
	classes = appendMapped(classes, justifyContentClasses, p.JustifyContent)
	return strings.Join(classes, " ")
}

// BlockClasses returns the form element classes for a block. A group whose
// style key is absent contributes nothing.
func BlockClasses(className string, s *model.Styles) []string {
	classes := append([]string(nil), BaseClasses...)
	classes = appendClass(classes, className)

	self := selfOf(s)
	if self == nil {
		return classes
	}
	if len(self.Margin) > 0 {
		classes = appendClass(classes, MapStyles(Partial{Margin: self.Margin}))
	}
	if len(self.Padding) > 0 {
		classes = appendClass(classes, MapStyles(Partial{Padding: self.Padding}))
	}
	if hasBorder(self) {
		color := self.BorderColor
		if strings.TrimSpace(color) == "" {
			color = DefaultBorderColor
		}
		classes = appendClass(classes, MapStyles(Partial{
			BorderWidth: self.BorderWidth,
			BorderStyle: self.BorderStyle,
			BorderColor: color,
		}))
	}
	if self.BorderRadius != "" {
		classes = appendClass(classes, MapStyles(Partial{BorderRadius: self.BorderRadius}))
	}
	return classes
}

// Justify returns the justify-content class shared by the fields and actions
// containers.
func Justify(s *model.Styles) string {
	value := DefaultJustifyContent
	if self := selfOf(s); self != nil && strings.TrimSpace(self.JustifyContent) != "" {
		value = self.JustifyContent
	}
	return MapStyles(Partial{JustifyContent: value})
}

// FieldsClasses lists the classes of the container wrapping every field.
func FieldsClasses(s *model.Styles) []string {
	return appendClass([]string{"w-full", "flex", "flex-wrap", "gap-8"}, Justify(s))
}

// ActionsClasses lists the classes of the container wrapping the submit control
// and the status text.
func ActionsClasses(s *model.Styles) []string {
	return appendClass([]string{"mt-8", "flex", "flex-col", "items-center"}, Justify(s))
}

// Join renders a class list, dropping blanks and duplicates while keeping order.
func Join(classes ...string) string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, group := range classes {
		for _, class := range strings.Fields(group) {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			out = append(out, class)
		}
	}
	return strings.Join(out, " ")
}

func hasBorder(self *model.SelfStyles) bool {
	if self.BorderWidth == nil || *self.BorderWidth == 0 {
		return false
	}
	return strings.TrimSpace(self.BorderStyle) != "none"
}

func borderWidthClass(width int) string {
	if width == 1 {
		return "border"
	}
	return "border-" + strconv.Itoa(width)
}

func appendMapped(classes []string, table map[string]string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return classes
	}
	if mapped, ok := table[value]; ok {
		return append(classes, mapped)
	}
	return append(classes, value)
}

func appendClass(classes []string, value string) []string {
	if value = strings.TrimSpace(value); value == "" {
		return classes
	}
	return append(classes, value)
}

func clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func selfOf(s *model.Styles) *model.SelfStyles {
	if s == nil {
		return nil
	}
	return s.Self
}
