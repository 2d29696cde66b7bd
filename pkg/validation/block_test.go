package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/model"
)

func field(kind string, props map[string]any) model.FieldDescriptor {
	return model.FieldDescriptor{ModelName: kind, Props: props}
}

func TestValidateBlock_Valid(t *testing.T) {
	block := model.Block{
		ElementID: "contact",
		Fields: []model.FieldDescriptor{
			field("TextFormControl", map[string]any{"name": "name"}),
			field("SelectFormControl", map[string]any{"name": "topic", "options": []any{"A", "B"}, "defaultValue": "B"}),
		},
		SubmitButton: &model.SubmitButton{Label: "Send"},
	}
	result := ValidateBlock(nil, block)
	if !result.Valid {
		t.Fatalf("expected block to be valid: %#v", result.Issues)
	}
	if len(result.Issues) != 0 {
		t.Fatalf("expected no issues, got %#v", result.Issues)
	}
}

func TestValidateBlock_CollectsEveryIssue(t *testing.T) {
	block := model.Block{
		Fields: []model.FieldDescriptor{
			field("", map[string]any{"name": "first"}),
			field("RatingFormControl", map[string]any{"name": "stars"}),
			field("TextFormControl", map[string]any{"name": "first"}),
			field("TextFormControl", map[string]any{"name": "bot-field"}),
			field("SelectFormControl", map[string]any{"name": "topic", "options": []any{"A"}, "defaultValue": "Z"}),
			field("TextFormControl", map[string]any{}),
		},
	}
	result := ValidateBlock(nil, block)
	if result.Valid {
		t.Fatalf("expected block to be invalid")
	}

	got := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		got = append(got, issue.String())
	}
	want := []string{
		"error: fields.0 (first) -> form field does not have the 'modelName' property",
		"error: fields.1 (stars) -> no component matching the form field model name: RatingFormControl",
		`error: fields.2 (first) -> duplicate control name "first", first declared at fields.0`,
		`error: fields.3 (bot-field) -> control name "bot-field" is reserved`,
		`error: fields.4 (topic) -> select "topic" default "Z" is not an option`,
		"error: fields.5 -> field has no name and is never submitted",
		"warning: elementId -> elementId is empty; submissions carry an empty form-name",
		"warning: submitButton -> block has no submitButton; status messages are never shown",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
	if len(result.Errors()) != 6 {
		t.Fatalf("expected 6 errors, got %d", len(result.Errors()))
	}
}

func TestValidateBlock_EmptyBlockIsOnlyAWarning(t *testing.T) {
	result := ValidateBlock(nil, model.Block{ElementID: "empty"})
	if !result.Valid {
		t.Fatalf("empty block should be valid")
	}
	if len(result.Issues) != 1 || result.Issues[0].Severity != SeverityWarning {
		t.Fatalf("expected a single warning, got %#v", result.Issues)
	}
}
