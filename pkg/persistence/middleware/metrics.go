package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type storeMetrics struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

type metricsMiddleware struct {
	next    ports.SnapshotStore
	metrics *storeMetrics
}

// NewMetricsMiddleware counts store operations by result and times them. It fails if the
// metrics are already registered with reg.
func NewMetricsMiddleware(reg prometheus.Registerer) (Middleware, error) {
	m := &storeMetrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridwalk_snapshot_store_operations_total",
				Help: "Snapshot store operations, by operation and result",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridwalk_snapshot_store_duration_seconds",
				Help:    "Snapshot store operation latency",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"op"},
		),
	}
	for _, c := range []prometheus.Collector{m.ops, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &metricsMiddleware{next: next, metrics: m}
	}, nil
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.metrics.ops.WithLabelValues(op, result).Inc()
	m.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, id string, states []domain.TerminalState) error {
	start := time.Now()
	err := m.next.Save(ctx, id, states)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, id string) ([]domain.TerminalState, error) {
	start := time.Now()
	states, err := m.next.Load(ctx, id)
	m.observe("load", start, err)
	return states, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
