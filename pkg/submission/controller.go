package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/goliatone/go-formblock/pkg/submission"

// Outcome labels how a Submit call ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "ok"
	OutcomeNotOK     Outcome = "not_ok"
	OutcomeError     Outcome = "error"
	OutcomeInFlight  Outcome = "in_flight"
)

// Observer receives one call per Submit.
type Observer interface {
	ObserveSubmission(outcome Outcome, elapsed time.Duration)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(outcome Outcome, elapsed time.Duration)

// ObserveSubmission calls the underlying function.
func (fn ObserverFunc) ObserveSubmission(outcome Outcome, elapsed time.Duration) {
	fn(outcome, elapsed)
}

// ChangeFunc is notified after every state transition, outside the controller
// lock.
type ChangeFunc func(state State, ev Event)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers a metrics observer.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithTracerProvider replaces the global OpenTelemetry provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Controller) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// WithOnChange registers a transition hook.
func WithOnChange(fn ChangeFunc) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithFormName tags logs and spans with the form's element id.
func WithFormName(name string) Option {
	return func(c *Controller) {
		c.formName = name
	}
}

// WithInitialState seeds the controller, for example when a preview session
// is resumed.
func WithInitialState(state State) Option {
	return func(c *Controller) {
		state.Submitting = false
		c.state = state
	}
}

// Controller runs submissions for one form block. It is safe for concurrent
// use; a Submit issued while another is in flight is rejected and returns the
// current state without sending anything.
type Controller struct {
	transport Transport
	logger    *slog.Logger
	observer  Observer
	tracer    trace.Tracer
	onChange  ChangeFunc
	formName  string
	now       func() time.Time

	mu       sync.Mutex
	state    State
	inFlight bool
}

// NewController builds a controller around a transport.
func NewController(transport Transport, options ...Option) (*Controller, error) {
	if transport == nil {
		return nil, errors.New("submission: transport is required")
	}
	c := &Controller{
		transport: transport,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrInFlight is returned by TrySubmit when another submission of the same
// form has not finished yet. Nothing was sent.
var ErrInFlight = errors.New("submission: already in flight")

// Submit collects the form entries, posts them once and returns the final
// state. A nil form aborts without touching the state. Errors are converted to
// the generic message and never returned. A rejected concurrent call returns
// the current state; use TrySubmit to tell it apart from a real result.
func (c *Controller) Submit(ctx context.Context, form Form) State {
	state, _ := c.TrySubmit(ctx, form)
	return state
}

// TrySubmit is Submit with the concurrent rejection made visible: it returns
// ErrInFlight and the current state when the form is already being sent. It
// returns no other error.
func (c *Controller) TrySubmit(ctx context.Context, form Form) (State, error) {
	if isNilForm(form) {
		return c.State(), nil
	}

	c.mu.Lock()
	if c.inFlight {
		current := c.state
		c.mu.Unlock()
		c.logger.Debug("form submission already in flight", "form", c.formName)
		c.observe(OutcomeInFlight, 0)
		return current, ErrInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	start := c.now()
	settled := false
	defer func() {
		if settled {
			return
		}
		// Send or Entries panicked; release the form before unwinding.
		c.finish(SubmitFailed(GenericErrorMessage))
		c.observe(OutcomeError, c.now().Sub(start))
	}()

	c.dispatch(SubmitStarted())

	ctx, span := c.tracer.Start(ctx, "formblock.submit", trace.WithAttributes(
		attribute.String("formblock.form", c.formName),
	))
	defer span.End()

	entries := form.Entries()
	span.SetAttributes(attribute.Int("formblock.entries", len(entries)))

	var (
		ev      Event
		outcome Outcome
	)
	resp, err := c.transport.Send(ctx, Encode(entries))
	switch {
	case err != nil:
		c.logger.Error("form submission error", "form", c.formName, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		ev, outcome = SubmitFailed(GenericErrorMessage), OutcomeError
	case !resp.OK:
		c.logger.Warn("form submission rejected", "form", c.formName, "status", resp.StatusCode)
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		span.SetStatus(codes.Error, "non-ok response")
		ev, outcome = SubmitFailed(GenericErrorMessage), OutcomeNotOK
	default:
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		form.Reset()
		ev, outcome = SubmitSucceeded(), OutcomeSucceeded
		c.logger.Info("form submitted", "form", c.formName, "status", resp.StatusCode)
	}

	settled = true
	final := c.finish(ev)
	c.observe(outcome, c.now().Sub(start))
	return final, nil
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	c.state = Reduce(c.state, ev)
	next := c.state
	c.mu.Unlock()
	c.notify(next, ev)
	return next
}

func (c *Controller) finish(ev Event) State {
	c.mu.Lock()
	c.state = Reduce(c.state, ev)
	c.inFlight = false
	next := c.state
	c.mu.Unlock()
	c.notify(next, ev)
	return next
}

func (c *Controller) notify(state State, ev Event) {
	if c.onChange != nil {
		c.onChange(state, ev)
	}
}

func (c *Controller) observe(outcome Outcome, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveSubmission(outcome, elapsed)
	}
}

func isNilForm(form Form) bool {
	if form == nil {
		return true
	}
	if values, ok := form.(*Values); ok && values == nil {
		return true
	}
	return false
}
