package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	theme "github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formblock/pkg/content"
	"github.com/goliatone/go-formblock/pkg/metrics"
	"github.com/goliatone/go-formblock/pkg/model"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
	"github.com/goliatone/go-formblock/pkg/submission"
)

const (
	// maxBodyBytes bounds a posted form body.
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// BlockRenderer is the renderer the server needs: it must expose the field
// resolver it renders with so posted bodies resolve against the same kinds.
type BlockRenderer interface {
	render.Renderer
	Resolver() *fields.Resolver
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver receives every submission outcome, typically a
// *metrics.Submissions.
func WithObserver(observer submission.Observer) Option {
	return func(s *Server) {
		s.observer = observer
	}
}

// WithGatherer exposes g on GET /metrics. Without it the route is not
// mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithTheme applies partial overrides and tokens to every render.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithHiddenFields renders extra hidden inputs (a session id, a CSRF token)
// in every block and accepts them back as controls of the posted form.
func WithHiddenFields(fields ...render.HiddenField) Option {
	return func(s *Server) {
		s.hidden = append(s.hidden, fields...)
	}
}

// WithControllerOptions appends options to every block controller.
func WithControllerOptions(options ...submission.Option) Option {
	return func(s *Server) {
		s.controllerOptions = append(s.controllerOptions, options...)
	}
}

// Server is the preview HTTP handler.
type Server struct {
	store             *content.Store
	renderer          BlockRenderer
	transport         submission.Transport
	logger            *slog.Logger
	observer          submission.Observer
	gatherer          prometheus.Gatherer
	theme             *theme.RendererConfig
	hidden            []render.HiddenField
	controllerOptions []submission.Option

	mu          sync.Mutex
	controllers map[string]*submission.Controller

	router chi.Router
}

// New builds a preview server over store. Submissions are sent through
// transport.
func New(store *content.Store, renderer BlockRenderer, transport submission.Transport, options ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("preview: content store is required")
	}
	if renderer == nil {
		return nil, errors.New("preview: renderer is required")
	}
	if transport == nil {
		return nil, errors.New("preview: transport is required")
	}
	s := &Server{
		store:       store,
		renderer:    renderer,
		transport:   transport,
		logger:      slog.Default(),
		controllers: make(map[string]*submission.Controller),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.router = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// State returns the current submission state of a block.
func (s *Server) State(id string) (submission.State, bool) {
	if _, ok := s.store.Block(id); !ok {
		return submission.State{}, false
	}
	controller, err := s.controller(id)
	if err != nil {
		return submission.State{}, false
	}
	return controller.State(), true
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Route("/blocks/{id}", func(r chi.Router) {
		r.Get("/", s.handleShow)
		r.Post("/", s.handleSubmit)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(s.gatherer))
	}
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var body strings.Builder
	body.WriteString("<ul>")
	for _, id := range s.store.IDs() {
		fmt.Fprintf(&body, `<li><a href="/blocks/%s">%s</a></li>`, html.EscapeString(id), html.EscapeString(id))
	}
	body.WriteString("</ul>")
	s.writePage(w, http.StatusOK, "Form blocks", []byte(body.String()))
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	block, ok := s.store.Block(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	controller, err := s.controller(id)
	if err != nil {
		s.serverError(w, r, id, err)
		return
	}
	s.renderBlock(w, r, id, block, http.StatusOK, render.RenderOptions{State: controller.State()})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	block, ok := s.store.Block(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	entries, err := submission.ParseEntries(string(raw))
	if err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	form, _, err := fields.NewForm(s.renderer.Resolver(), block, s.hidden...)
	if err != nil {
		s.serverError(w, r, id, err)
		return
	}
	if err := form.Fill(entries); err != nil {
		if !errors.Is(err, submission.ErrUnknownControl) {
			http.Error(w, "malformed form body", http.StatusBadRequest)
			return
		}
		s.logger.Warn("ignoring unknown form controls", "block", id, "error", err)
	}
	// The posted form always belongs to this block, whatever form-name says.
	if err := form.Set(render.FormNameInput, block.ElementID); err != nil {
		s.serverError(w, r, id, err)
		return
	}

	controller, err := s.controller(id)
	if err != nil {
		s.serverError(w, r, id, err)
		return
	}
	state, err := controller.TrySubmit(r.Context(), form)
	if errors.Is(err, submission.ErrInFlight) {
		// Another visitor's post of this block is still pending. This body
		// was not sent, so answer with the values and the error status.
		s.logger.Warn("form submission rejected while in flight", "block", id, "request_id", middleware.GetReqID(r.Context()))
		s.renderBlock(w, r, id, block, http.StatusConflict, render.RenderOptions{
			State:  submission.State{ErrorMessage: submission.GenericErrorMessage},
			Values: form.Snapshot(),
		})
		return
	}
	if state.ErrorMessage == "" && state.Submitted {
		http.Redirect(w, r, "/blocks/"+id, http.StatusSeeOther)
		return
	}
	s.renderBlock(w, r, id, block, http.StatusOK, render.RenderOptions{
		State:  state,
		Values: form.Snapshot(),
	})
}

func (s *Server) renderBlock(w http.ResponseWriter, r *http.Request, id string, block model.Block, status int, opts render.RenderOptions) {
	opts.Theme = s.theme
	opts.Hidden = s.hidden
	out, err := s.renderer.Render(r.Context(), block, opts)
	if err != nil {
		s.serverError(w, r, id, err)
		return
	}
	s.writePage(w, status, id, out)
}

func (s *Server) writePage(w http.ResponseWriter, status int, title string, body []byte) {
	var page bytes.Buffer
	page.WriteString("<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>")
	page.WriteString(html.EscapeString(title))
	page.WriteString("</title></head><body>\n")
	page.Write(body)
	page.WriteString("\n</body></html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(page.Bytes())
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, id string, err error) {
	attrs := []any{"block", id, "request_id", middleware.GetReqID(r.Context()), "error", err}
	if render.IsConfigError(err) {
		s.logger.Error("form block configuration error", attrs...)
	} else {
		s.logger.Error("form block preview failed", attrs...)
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) controller(id string) (*submission.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if controller, ok := s.controllers[id]; ok {
		return controller, nil
	}
	options := []submission.Option{
		submission.WithLogger(s.logger.With("block", id)),
		submission.WithFormName(id),
	}
	if s.observer != nil {
		options = append(options, submission.WithObserver(s.observer))
	}
	options = append(options, s.controllerOptions...)
	controller, err := submission.NewController(s.transport, options...)
	if err != nil {
		return nil, fmt.Errorf("preview: controller for %q: %w", id, err)
	}
	s.controllers[id] = controller
	return controller, nil
}

// ListenAndServe runs the server on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("preview: shutdown: %w", err)
		}
		return nil
	}
}
