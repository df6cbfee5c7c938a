// Package metrics exposes command and index counters for Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atomicstack/tmux-tab-rename/internal/command"
)

const namespace = "tmux_tab_rename"

type Metrics struct {
	registry      *prometheus.Registry
	commands      *prometheus.CounterVec
	rebuilds      *prometheus.CounterVec
	backendErrors *prometheus.CounterVec
	indexSize     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by name, action and outcome.",
		}, []string{"name", "action", "outcome"}),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_rebuilds_total",
			Help:      "Pane index rebuilds, by triggering snapshot kind.",
		}, []string{"trigger"}),
		backendErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_errors_total",
			Help:      "Failed tmux polls, by snapshot kind.",
		}, []string{"kind"}),
		indexSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_panes",
			Help:      "Panes in the current index.",
		}),
	}
	m.registry.MustRegister(
		m.commands,
		m.rebuilds,
		m.backendErrors,
		m.indexSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Observe implements command.Observer.
func (m *Metrics) Observe(name, action string, err error) {
	m.commands.WithLabelValues(name, action, Outcome(err)).Inc()
}

func (m *Metrics) Rebuilt(trigger string, size int) {
	m.rebuilds.WithLabelValues(trigger).Inc()
	m.indexSize.Set(float64(size))
}

func (m *Metrics) BackendError(kind string) {
	m.backendErrors.WithLabelValues(kind).Inc()
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx ends.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Outcome classifies a command result for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, command.ErrMissingPayload):
		return "missing_payload"
	case errors.Is(err, command.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, command.ErrInvalidPaneID):
		return "invalid_pane_id"
	case errors.Is(err, command.ErrUnknownPane):
		return "unknown_pane"
	case errors.Is(err, command.ErrInvalidAction):
		return "invalid_action"
	case errors.Is(err, command.ErrMissingEmoji):
		return "missing_emoji"
	default:
		return "host_error"
	}
}
