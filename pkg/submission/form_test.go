package submission_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/submission"
)

func contactForm() *submission.Values {
	return submission.NewValues(
		submission.Control{Name: "form-name", Default: []string{"contact"}},
		submission.Control{Name: "bot-field"},
		submission.Control{Name: "name"},
		submission.Control{Name: "topics", Multiple: true},
		submission.Control{Name: "updates", Checkable: true},
	)
}

func TestValuesEntries(t *testing.T) {
	form := contactForm()
	if err := form.Set("name", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := form.Add("topics", "sales"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := form.Add("topics", "support"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := form.Check("updates", true); err != nil {
		t.Fatalf("check: %v", err)
	}

	want := []submission.Entry{
		{Name: "form-name", Value: "contact"},
		{Name: "bot-field", Value: ""},
		{Name: "name", Value: "Ada"},
		{Name: "topics", Value: "sales"},
		{Name: "topics", Value: "support"},
		{Name: "updates", Value: "on"},
	}
	if diff := cmp.Diff(want, form.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesResetRestoresDefaults(t *testing.T) {
	form := contactForm()
	_ = form.Set("name", "Ada")
	_ = form.Set("form-name", "tampered")
	_ = form.Check("updates", true)

	form.Reset()

	want := []submission.Entry{
		{Name: "form-name", Value: "contact"},
		{Name: "bot-field", Value: ""},
		{Name: "name", Value: ""},
	}
	if diff := cmp.Diff(want, form.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if snap := form.Snapshot(); len(snap) != 1 {
		t.Fatalf("expected only the hidden default in snapshot, got %#v", snap)
	}
}

func TestValuesUnknownControl(t *testing.T) {
	form := contactForm()
	if err := form.Set("missing", "x"); !errors.Is(err, submission.ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
	if err := form.Check("name", true); err == nil {
		t.Fatalf("expected error checking a text control")
	}
}

func TestValuesFill(t *testing.T) {
	form := contactForm()
	_ = form.Check("updates", true)
	_ = form.Set("name", "stale")

	err := form.Fill([]submission.Entry{
		{Name: "form-name", Value: "contact"},
		{Name: "topics", Value: "sales"},
		{Name: "intruder", Value: "x"},
	})
	if !errors.Is(err, submission.ErrUnknownControl) {
		t.Fatalf("expected unknown control error, got %v", err)
	}

	want := map[string][]string{
		"form-name": {"contact"},
		"topics":    {"sales"},
	}
	if diff := cmp.Diff(want, form.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestNewValuesIgnoresDuplicatesAndBlanks(t *testing.T) {
	form := submission.NewValues(
		submission.Control{Name: "a"},
		submission.Control{Name: " "},
		submission.Control{Name: "a", Default: []string{"dup"}},
	)
	if diff := cmp.Diff([]string{"a"}, form.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
