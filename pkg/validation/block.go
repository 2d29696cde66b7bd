// Package validation lints form block documents before they are published.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
)

// Severity grades an issue. Only errors make a block invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a lint finding with optional location metadata.
type Issue struct {
	// Path locates the offending prop, e.g. "fields.2" or "submitButton".
	Path     string   `json:"path,omitempty"`
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	location := i.Path
	if i.Field != "" {
		location += " (" + i.Field + ")"
	}
	if location == "" {
		location = "block"
	}
	return fmt.Sprintf("%s: %s -> %s", i.Severity, location, i.Message)
}

// Result captures validation outcomes for a block.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors returns the error-level issues.
func (r Result) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateBlock reports every problem that would make rendering or submitting
// block fail, plus authoring mistakes the renderer tolerates silently. Unlike
// rendering it does not stop at the first bad field.
func ValidateBlock(resolver *fields.Resolver, block model.Block) Result {
	if resolver == nil {
		resolver = fields.NewDefaultRegistry().Freeze()
	}
	var issues []Issue
	add := func(path, field string, severity Severity, format string, args ...any) {
		issues = append(issues, Issue{
			Path:     path,
			Field:    field,
			Severity: severity,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if !block.HasContent() {
		add("fields", "", SeverityWarning, "block has no fields and renders nothing")
		return finish(issues)
	}
	if strings.TrimSpace(block.ElementID) == "" {
		add("elementId", "", SeverityWarning, "elementId is empty; submissions carry an empty form-name")
	}
	if block.SubmitButton == nil {
		add("submitButton", "", SeverityWarning, "block has no submitButton; status messages are never shown")
	}

	seen := make(map[string]string, len(block.Fields))
	for idx, desc := range block.Fields {
		path := "fields." + strconv.Itoa(idx)
		name := desc.Name()

		switch {
		case name == "":
			add(path, "", SeverityError, "field has no name and is never submitted")
		case name == render.FormNameInput || name == render.HoneypotInput:
			add(path, name, SeverityError, "control name %q is reserved", name)
		default:
			if first, dup := seen[name]; dup {
				add(path, name, SeverityError, "duplicate control name %q, first declared at %s", name, first)
			} else {
				seen[name] = path
			}
		}

		kind := fields.Kind(strings.TrimSpace(desc.ModelName))
		if kind == "" {
			add(path, name, SeverityError, "%s", render.ErrMissingModelName)
			continue
		}
		factory, ok := resolver.Lookup(kind)
		if !ok {
			add(path, name, SeverityError, "%s: %s", render.ErrNoMatchingComponent, kind)
			continue
		}
		if _, err := factory(desc); err != nil {
			add(path, name, SeverityError, "%s", issueMessage(err))
		}
	}
	return finish(issues)
}

func finish(issues []Issue) Result {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Severity != issues[j].Severity {
			return issues[i].Severity == SeverityError
		}
		return false
	})
	result := Result{Valid: true, Issues: issues}
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			result.Valid = false
			break
		}
	}
	return result
}

func issueMessage(err error) string {
	var cfgErr *render.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Err != nil {
		err = cfgErr.Err
	}
	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "fields: ")
	return msg
}
