package submission_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/submission"
)

func TestEncode(t *testing.T) {
	entries := []submission.Entry{
		{Name: "form-name", Value: "contact"},
		{Name: "message", Value: "hello world & more"},
		{Name: "tags", Value: "a"},
		{Name: "tags", Value: "b"},
		{Name: "bot-field", Value: ""},
	}
	want := "form-name=contact&message=hello+world+%26+more&tags=a&tags=b&bot-field="
	if got := submission.Encode(entries); got != want {
		t.Fatalf("encode:\nwant %q\n got %q", want, got)
	}
}

func TestParseEntriesRoundTripKeepsOrder(t *testing.T) {
	entries := []submission.Entry{
		{Name: "z", Value: "1"},
		{Name: "a", Value: "ü ✓"},
		{Name: "z", Value: "2"},
	}
	parsed, err := submission.ParseEntries(submission.Encode(entries))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff(entries, parsed); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEntriesEdgeCases(t *testing.T) {
	parsed, err := submission.ParseEntries("a&&b=&=c")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []submission.Entry{{Name: "a"}, {Name: "b"}, {Name: "", Value: "c"}}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}

	if _, err := submission.ParseEntries("bad=%zz"); err == nil {
		t.Fatalf("expected decode error")
	}
	if parsed, err := submission.ParseEntries("  "); err != nil || parsed != nil {
		t.Fatalf("expected nil result for blank body, got %v %v", parsed, err)
	}
}
