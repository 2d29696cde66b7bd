package submission_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/submission"
)

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func filledForm(t *testing.T) *submission.Values {
	t.Helper()
	form := contactForm()
	if err := form.Set("name", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}
	return form
}

func TestControllerSubmitSuccess(t *testing.T) {
	var gotBody string
	transport := submission.TransportFunc(func(_ context.Context, body string) (submission.Response, error) {
		gotBody = body
		return submission.Response{StatusCode: 200, OK: true}, nil
	})
	var outcomes []submission.Outcome
	ctrl, err := submission.NewController(transport,
		submission.WithLogger(quietLogger(&bytes.Buffer{})),
		submission.WithObserver(submission.ObserverFunc(func(o submission.Outcome, _ time.Duration) {
			outcomes = append(outcomes, o)
		})),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	form := filledForm(t)
	state := ctrl.Submit(context.Background(), form)

	if diff := cmp.Diff(submission.State{Submitted: true}, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if gotBody != "form-name=contact&bot-field=&name=Ada" {
		t.Fatalf("unexpected body %q", gotBody)
	}
	if snap := form.Snapshot(); len(snap["name"]) != 0 {
		t.Fatalf("expected visible inputs cleared, got %#v", snap)
	}
	if snap := form.Snapshot(); snap["form-name"][0] != "contact" {
		t.Fatalf("expected hidden form-name kept, got %#v", snap)
	}
	if diff := cmp.Diff([]submission.Outcome{submission.OutcomeSucceeded}, outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerSubmitNotOK(t *testing.T) {
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		return submission.Response{StatusCode: 500}, nil
	})
	ctrl, err := submission.NewController(transport, submission.WithLogger(quietLogger(&bytes.Buffer{})))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	form := filledForm(t)
	state := ctrl.Submit(context.Background(), form)

	want := submission.State{ErrorMessage: submission.GenericErrorMessage}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if got := form.Snapshot()["name"]; len(got) != 1 || got[0] != "Ada" {
		t.Fatalf("form must keep input on failure, got %#v", got)
	}
}

func TestControllerSubmitTransportError(t *testing.T) {
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		return submission.Response{}, errors.New("connection refused by upstream 10.0.0.7")
	})
	var logs bytes.Buffer
	ctrl, err := submission.NewController(transport, submission.WithLogger(quietLogger(&logs)))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	state := ctrl.Submit(context.Background(), filledForm(t))

	want := submission.State{ErrorMessage: submission.GenericErrorMessage}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(state.ErrorMessage, "10.0.0.7") {
		t.Fatalf("error detail leaked into user message")
	}
	if !strings.Contains(logs.String(), "10.0.0.7") {
		t.Fatalf("expected error detail in diagnostic log, got %q", logs.String())
	}
}

func TestControllerRetryClearsError(t *testing.T) {
	calls := 0
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		calls++
		if calls == 1 {
			return submission.Response{StatusCode: 503}, nil
		}
		return submission.Response{StatusCode: 200, OK: true}, nil
	})
	ctrl, err := submission.NewController(transport, submission.WithLogger(quietLogger(&bytes.Buffer{})))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	form := filledForm(t)
	first := ctrl.Submit(context.Background(), form)
	if first.ErrorMessage == "" {
		t.Fatalf("expected failure on first attempt")
	}
	second := ctrl.Submit(context.Background(), form)
	if diff := cmp.Diff(submission.State{Submitted: true}, second); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerNilFormIsNoop(t *testing.T) {
	called := false
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		called = true
		return submission.Response{OK: true}, nil
	})
	var transitions int
	ctrl, err := submission.NewController(transport, submission.WithOnChange(func(submission.State, submission.Event) {
		transitions++
	}))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	var nilValues *submission.Values
	if state := ctrl.Submit(context.Background(), nilValues); state != (submission.State{}) {
		t.Fatalf("expected untouched state, got %+v", state)
	}
	if state := ctrl.Submit(context.Background(), nil); state != (submission.State{}) {
		t.Fatalf("expected untouched state, got %+v", state)
	}
	if called || transitions != 0 {
		t.Fatalf("nil form must not send or transition (called=%v transitions=%d)", called, transitions)
	}
}

func TestControllerPendingInterval(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	transport := submission.TransportFunc(func(ctx context.Context, _ string) (submission.Response, error) {
		close(entered)
		<-release
		return submission.Response{StatusCode: 200, OK: true}, nil
	})

	var (
		mu     sync.Mutex
		events []submission.EventKind
	)
	ctrl, err := submission.NewController(transport,
		submission.WithLogger(quietLogger(&bytes.Buffer{})),
		submission.WithOnChange(func(_ submission.State, ev submission.Event) {
			mu.Lock()
			events = append(events, ev.Kind)
			mu.Unlock()
		}),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	form := filledForm(t)
	done := make(chan submission.State, 1)
	go func() {
		done <- ctrl.Submit(context.Background(), form)
	}()

	<-entered
	if pending := ctrl.State(); !pending.Submitting {
		t.Fatalf("expected submitting while transport pending, got %+v", pending)
	}

	close(release)
	final := <-done
	if final.Submitting || !final.Submitted {
		t.Fatalf("unexpected final state %+v", final)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []submission.EventKind{submission.EventSubmitStarted, submission.EventSubmitSucceeded}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerRejectsConcurrentSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var (
		mu    sync.Mutex
		calls int
	)
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(entered)
		<-release
		return submission.Response{StatusCode: 200, OK: true}, nil
	})

	var outcomes []submission.Outcome
	var outcomesMu sync.Mutex
	ctrl, err := submission.NewController(transport,
		submission.WithLogger(quietLogger(&bytes.Buffer{})),
		submission.WithObserver(submission.ObserverFunc(func(o submission.Outcome, _ time.Duration) {
			outcomesMu.Lock()
			outcomes = append(outcomes, o)
			outcomesMu.Unlock()
		})),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	form := filledForm(t)
	done := make(chan submission.State, 1)
	go func() {
		done <- ctrl.Submit(context.Background(), form)
	}()
	<-entered

	second, err := ctrl.TrySubmit(context.Background(), filledForm(t))
	if !errors.Is(err, submission.ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	if !second.Submitting {
		t.Fatalf("rejected submit should report the in-flight state, got %+v", second)
	}

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected a single request, got %d", calls)
	}
	outcomesMu.Lock()
	defer outcomesMu.Unlock()
	want := []submission.Outcome{submission.OutcomeInFlight, submission.OutcomeSucceeded}
	if diff := cmp.Diff(want, outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestControllerReleasesAfterTransportPanic(t *testing.T) {
	var calls int
	transport := submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
		calls++
		if calls == 1 {
			panic("transport exploded")
		}
		return submission.Response{StatusCode: 200, OK: true}, nil
	})
	var outcomes []submission.Outcome
	ctrl, err := submission.NewController(transport,
		submission.WithLogger(quietLogger(&bytes.Buffer{})),
		submission.WithObserver(submission.ObserverFunc(func(o submission.Outcome, _ time.Duration) {
			outcomes = append(outcomes, o)
		})),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the transport panic to propagate")
			}
		}()
		ctrl.Submit(context.Background(), filledForm(t))
	}()

	failed := ctrl.State()
	if failed.Submitting || failed.ErrorMessage != submission.GenericErrorMessage {
		t.Fatalf("expected failed idle state after panic, got %+v", failed)
	}

	state, err := ctrl.TrySubmit(context.Background(), filledForm(t))
	if err != nil {
		t.Fatalf("controller still in flight after panic: %v", err)
	}
	if !state.Submitted || state.ErrorMessage != "" {
		t.Fatalf("unexpected state after retry %+v", state)
	}
	want := []submission.Outcome{submission.OutcomeError, submission.OutcomeSucceeded}
	if diff := cmp.Diff(want, outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestNewControllerRequiresTransport(t *testing.T) {
	if _, err := submission.NewController(nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWithInitialStateClearsSubmitting(t *testing.T) {
	ctrl, err := submission.NewController(
		submission.TransportFunc(func(context.Context, string) (submission.Response, error) {
			return submission.Response{OK: true}, nil
		}),
		submission.WithInitialState(submission.State{Submitted: true, Submitting: true}),
	)
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if diff := cmp.Diff(submission.State{Submitted: true}, ctrl.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}
