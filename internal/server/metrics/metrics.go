// Package metrics exposes Prometheus instrumentation for the server.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics owns its registry so tests and multiple servers in one process
// do not collide on the global one.
type Metrics struct {
	Registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	entries     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		rpcRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veildiary_rpc_requests_total",
				Help: "Unary RPCs handled, by method and status code",
			},
			[]string{"method", "code"},
		),
		rpcDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "veildiary_rpc_duration_seconds",
				Help:    "Unary RPC latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		entries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "veildiary_entries_created_total",
				Help: "Diary entries created, by whether anonymization was applied",
			},
			[]string{"anonymized"},
		),
	}
}

// EntryCreated records one stored entry.
func (m *Metrics) EntryCreated(anonymized bool) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues(strconv.FormatBool(anonymized)).Inc()
}

// UnaryInterceptor counts and times every unary call.
func (m *Metrics) UnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	m.rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	m.rpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()

	return resp, err
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Serve runs the /metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
