package observability

import (
	"context"

	"github.com/aretw0/gridwalk/pkg/traversal"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records traversal metrics.
type Collector struct {
	runs     *prometheus.CounterVec
	steps    *prometheus.CounterVec
	stops    *prometheus.CounterVec
	branches *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridwalk_traversal_runs_total",
				Help: "Finished traversal runs, by outcome",
			},
			[]string{"traversal", "outcome"},
		),
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridwalk_traversal_steps_total",
				Help: "Steps delivered to step actions",
			},
			[]string{"traversal"},
		),
		stops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gridwalk_traversal_stopped_steps_total",
				Help: "Delivered steps not expanded because a stop condition matched",
			},
			[]string{"traversal"},
		),
		branches: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridwalk_traversal_branches",
				Help:    "Branches created per run, the root branch included",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"traversal"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gridwalk_traversal_duration_seconds",
				Help:    "Duration of traversal runs",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"traversal"},
		),
	}

	for _, m := range []prometheus.Collector{c.runs, c.steps, c.stops, c.branches, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Hooks returns hooks feeding the collector.
func (c *Collector) Hooks() traversal.Hooks {
	return traversal.Hooks{
		OnStep: func(_ context.Context, e *traversal.StepEvent) {
			c.steps.WithLabelValues(e.Name).Inc()
			if e.Stopping {
				c.stops.WithLabelValues(e.Name).Inc()
			}
		},
		OnRunComplete: func(_ context.Context, e *traversal.RunEvent) {
			outcome := "completed"
			if e.Outcome.Cancelled {
				outcome = "cancelled"
			}
			c.runs.WithLabelValues(e.Name, outcome).Inc()
			c.branches.WithLabelValues(e.Name).Observe(float64(e.Outcome.Branches))
			c.duration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
		},
	}
}

// Chain combines hooks so that each event reaches every non-nil callback, in order.
func Chain(hooks ...traversal.Hooks) traversal.Hooks {
	var out traversal.Hooks
	for _, h := range hooks {
		out.OnRunStart = chain(out.OnRunStart, h.OnRunStart)
		out.OnStep = chain(out.OnStep, h.OnStep)
		out.OnRunComplete = chain(out.OnRunComplete, h.OnRunComplete)
	}
	return out
}

func chain[E any](first, second func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case first == nil:
		return second
	case second == nil:
		return first
	}
	return func(ctx context.Context, e *E) {
		first(ctx, e)
		second(ctx, e)
	}
}
