package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock/pkg/metrics"
	"github.com/goliatone/go-formblock/pkg/preview"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html"
	"github.com/goliatone/go-formblock/pkg/submission"
)

func serveCmd(a *app) *cobra.Command {
	var hidden map[string]string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local preview of every form block",
		Long: `Serve every form block at /blocks/{id}. Posted forms are sent to the
configured backend and the page shows the resulting status. Prometheus
metrics are exposed at /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			renderer, err := html.New(a.htmlOptions()...)
			if err != nil {
				return err
			}

			var transport submission.Transport
			if a.cfg.Submit.Endpoint == "" {
				a.logger.Warn("no submit endpoint configured, submissions will fail")
				transport = unconfiguredBackend{}
			} else {
				transport, err = submission.NewHTTPTransport(a.cfg.Submit.Endpoint)
				if err != nil {
					return err
				}
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			srv, err := preview.New(store, renderer, transport,
				preview.WithLogger(a.logger),
				preview.WithObserver(metrics.NewSubmissions(metrics.WithRegistry(registry))),
				preview.WithGatherer(registry),
				preview.WithTheme(a.theme()),
				preview.WithHiddenFields(hiddenFlags(hidden)...),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, a.cfg.Server.Listen)
		},
	}

	cmd.Flags().StringVar(&a.contentDir, "content", "", "directory of block documents (default: bundled samples)")
	cmd.Flags().StringVar(&a.templatesDir, "templates", "", "directory overriding the HTML template bundle")
	cmd.Flags().StringVar(&a.endpoint, "endpoint", "", "form backend URL")
	cmd.Flags().StringVar(&a.listen, "listen", "", "listen address (default 127.0.0.1:8080)")
	cmd.Flags().StringToStringVar(&hidden, "hidden", nil, "extra hidden input rendered in every form, as name=value")
	return cmd
}

func hiddenFlags(values map[string]string) []render.HiddenField {
	out := make([]render.HiddenField, 0, len(values))
	for name, value := range values {
		out = append(out, render.Hidden(name, value))
	}
	return out
}

// unconfiguredBackend fails every submission so the preview still renders the
// error state when no endpoint is set.
type unconfiguredBackend struct{}

func (unconfiguredBackend) Send(context.Context, string) (submission.Response, error) {
	return submission.Response{}, errors.New("no submit endpoint configured")
}
