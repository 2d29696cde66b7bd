package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formblock/pkg/submission"
)

func TestSubmissions_ObserveSubmission(t *testing.T) {
	registry := prometheus.NewRegistry()
	collectors := NewSubmissions(WithRegistry(registry))

	collectors.ObserveSubmission(submission.OutcomeSucceeded, 20*time.Millisecond)
	collectors.ObserveSubmission(submission.OutcomeSucceeded, 30*time.Millisecond)
	collectors.ObserveSubmission(submission.OutcomeError, time.Second)
	collectors.ObserveSubmission(submission.OutcomeInFlight, 0)

	if got := testutil.ToFloat64(collectors.total.WithLabelValues("ok")); got != 2 {
		t.Fatalf("ok count: want 2, got %v", got)
	}
	if got := testutil.ToFloat64(collectors.total.WithLabelValues("in_flight")); got != 1 {
		t.Fatalf("in_flight count: want 1, got %v", got)
	}
	if got := testutil.CollectAndCount(collectors.duration); got != 2 {
		t.Fatalf("expected durations for ok and error only, got %d series", got)
	}
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collectors := NewSubmissions(WithRegistry(registry), WithNamespace("test"))
	collectors.ObserveSubmission(submission.OutcomeNotOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`test_submissions_total{outcome="not_ok"} 1`,
		"test_submission_duration_seconds_bucket",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}
