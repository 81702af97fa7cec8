// Package metrics holds the prometheus collectors for REST traffic and store
// operations. Collectors live on their own registry so tests and multiple
// dashboards in one process do not collide on the default registerer.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics is the set of collectors exported by warden.
type Metrics struct {
	Registry *prometheus.Registry

	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	operations *prometheus.CounterVec
	toasts     *prometheus.CounterVec
}

// New registers the warden collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "REST calls issued against the facility API.",
		}, []string{"resource", "op", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "warden",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latency of REST calls against the facility API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource", "op"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Entity store operations by outcome.",
		}, []string{"kind", "op", "outcome"}),
		toasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Notifications raised, by severity.",
		}, []string{"severity"}),
	}
	reg.MustRegister(m.requests, m.latency, m.operations, m.toasts)
	reg.MustRegister(collectors.NewGoCollector())
	return m
}

// ObserveRequest records one REST call. code is 0 for transport failures.
func (m *Metrics) ObserveRequest(resource, op string, code int, took time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(resource, op, strconv.Itoa(code)).Inc()
	m.latency.WithLabelValues(resource, op).Observe(took.Seconds())
}

// ObserveOperation records the outcome of a store operation.
func (m *Metrics) ObserveOperation(kind, op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(kind, op, outcome).Inc()
}

// ObserveNotification counts a raised notification.
func (m *Metrics) ObserveNotification(severity string) {
	if m == nil {
		return
	}
	m.toasts.WithLabelValues(severity).Inc()
}

// Handler exposes the registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
