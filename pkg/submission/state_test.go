package submission_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/submission"
)

func TestReduce(t *testing.T) {
	cases := []struct {
		name  string
		start submission.State
		event submission.Event
		want  submission.State
	}{
		{
			name:  "start clears error",
			start: submission.State{ErrorMessage: "boom"},
			event: submission.SubmitStarted(),
			want:  submission.State{Submitting: true},
		},
		{
			name:  "start keeps submitted",
			start: submission.State{Submitted: true},
			event: submission.SubmitStarted(),
			want:  submission.State{Submitted: true, Submitting: true},
		},
		{
			name:  "success",
			start: submission.State{Submitting: true},
			event: submission.SubmitSucceeded(),
			want:  submission.State{Submitted: true},
		},
		{
			name:  "failure with message",
			start: submission.State{Submitting: true},
			event: submission.SubmitFailed("nope"),
			want:  submission.State{ErrorMessage: "nope"},
		},
		{
			name:  "failure without message uses generic text",
			start: submission.State{Submitting: true},
			event: submission.SubmitFailed("  "),
			want:  submission.State{ErrorMessage: submission.GenericErrorMessage},
		},
		{
			name:  "unknown event",
			start: submission.State{Submitted: true},
			event: submission.Event{},
			want:  submission.State{Submitted: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, submission.Reduce(tc.start, tc.event)); diff != "" {
				t.Fatalf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEventKindString(t *testing.T) {
	if got := submission.EventSubmitFailed.String(); got != "submit_failed" {
		t.Fatalf("got %q", got)
	}
	if got := submission.EventKind(0).String(); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}
