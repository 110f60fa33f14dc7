package gridwalk

import (
	"context"
	"log/slog"

	"github.com/aretw0/gridwalk/internal/logging"
	"github.com/aretw0/gridwalk/pkg/adapters/memory"
	"github.com/aretw0/gridwalk/pkg/domain"
	"github.com/aretw0/gridwalk/pkg/networktrace"
	"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	"github.com/aretw0/gridwalk/pkg/observability"
	"github.com/aretw0/gridwalk/pkg/persistence/middleware"
	"github.com/aretw0/gridwalk/pkg/ports"
	"github.com/aretw0/gridwalk/pkg/session"
	"github.com/aretw0/gridwalk/pkg/traversal"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// ErrNoNetwork is returned by New when neither a network nor a loader is configured.
var ErrNoNetwork = errors.New("no network configured")

// Engine is the high-level entry point of the library. It owns one network and hands out
// traces over it that share logging, hooks, metrics and snapshot persistence.
type Engine struct {
	network  *domain.Network
	loader   ports.NetworkLoader
	logger   *slog.Logger
	hooks    traversal.Hooks
	registry prometheus.Registerer
	store    ports.SnapshotStore
	locker   ports.DistributedLocker
	sessions *session.Manager
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithNetwork uses an already built network.
func WithNetwork(network *domain.Network) Option {
	return func(e *Engine) {
		e.network = network
	}
}

// WithLoader loads the network from l when the engine is created.
func WithLoader(l ports.NetworkLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine and its traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLogLevel logs text to stderr at level ("debug", "info", "warn" or "error").
func WithLogLevel(level string) Option {
	return func(e *Engine) {
		e.logger = logging.New(logging.ParseLevel(level))
	}
}

// WithHooks registers observability hooks on every trace.
func WithHooks(hooks traversal.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithMetrics registers Prometheus metrics for every trace and for the snapshot store with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithSnapshotStore persists traced outcomes to store. The default keeps them in memory.
func WithSnapshotStore(store ports.SnapshotStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes scenario runs across processes sharing the locker.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithName labels the engine. It prefixes lock keys and names traces.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New initializes an Engine. Either WithNetwork or WithLoader is required.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{
		logger: logging.NewNop(),
		Name:   "gridwalk",
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.network == nil {
		if eng.loader == nil {
			return nil, ErrNoNetwork
		}
		network, err := eng.loader.Load(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "loading network")
		}
		eng.network = network
	}

	if eng.registry != nil {
		collector, err := observability.NewCollector(eng.registry)
		if err != nil {
			return nil, errors.Wrap(err, "registering metrics")
		}
		eng.hooks = observability.Chain(eng.hooks, collector.Hooks())
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.registry != nil {
		mw, err := middleware.NewMetricsMiddleware(eng.registry)
		if err != nil {
			return nil, errors.Wrap(err, "registering store metrics")
		}
		eng.store = middleware.Apply(eng.store, mw)
	}
	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	eng.logger.Debug("engine ready", "name", eng.Name, "equipment", eng.network.Len())
	return eng, nil
}

// Network returns the network the engine traces.
func (e *Engine) Network() *domain.Network { return e.network }

// Sessions returns the manager that serializes scenario runs and stores snapshots.
func (e *Engine) Sessions() *session.Manager { return e.sessions }

func (e *Engine) traversalOptions(name string) []traversal.Option {
	return []traversal.Option{
		traversal.WithName(name),
		traversal.WithLogger(e.logger),
		traversal.WithHooks(e.hooks),
	}
}

// ScenarioFunc is run once per scenario by RunScenarios.
type ScenarioFunc func(ctx context.Context, ops operators.NetworkStateOperators) error

// RunScenarios runs fn for each scenario concurrently, normal and current when none are given.
// Each run holds the scenario's lock, so runs of the same scenario never overlap. The first
// error cancels the context of the other runs and is returned.
func (e *Engine) RunScenarios(ctx context.Context, fn ScenarioFunc, scenarios ...operators.Scenario) error {
	if len(scenarios) == 0 {
		scenarios = []operators.Scenario{operators.ScenarioNormal, operators.ScenarioCurrent}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scenarios {
		ops := operators.ForScenario(s)
		g.Go(func() error {
			return e.sessions.WithLock(ctx, e.lockKey(ops.Scenario()), func(ctx context.Context) error {
				if err := fn(ctx, ops); err != nil {
					return errors.Wrapf(err, "%s scenario", ops.Scenario())
				}
				return nil
			})
		})
	}
	return g.Wait()
}

func (e *Engine) lockKey(s operators.Scenario) string {
	return e.Name + ":" + string(s)
}

// Save stores the traced state of the network under id.
func (e *Engine) Save(ctx context.Context, id string) error {
	return e.sessions.Save(ctx, id, e.network)
}

// Restore applies the snapshot stored under id to the network.
func (e *Engine) Restore(ctx context.Context, id string) error {
	return e.sessions.Restore(ctx, id, e.network)
}

// RestoreOrRun restores the snapshot stored under id or, when there is none, runs fn for every
// scenario and stores the outcome. It reports whether fn ran.
func (e *Engine) RestoreOrRun(ctx context.Context, id string, fn ScenarioFunc) (bool, error) {
	return e.sessions.RestoreOrTrace(ctx, id, e.network, func(ctx context.Context) error {
		return e.RunScenarios(ctx, fn)
	})
}

// TraceOption configures a trace created by NewTrace.
type TraceOption[D any] func(*traceConfig[D])

type traceConfig[D any] struct {
	name        string
	branching   bool
	actionType  networktrace.ActionType
	computeData networktrace.ComputeData[D]
}

// WithTraceName labels the trace in logs, hooks and metrics.
func WithTraceName[D any](name string) TraceOption[D] {
	return func(c *traceConfig[D]) {
		c.name = name
	}
}

// WithBranching makes the trace track visited hops per branch.
func WithBranching[D any](enabled bool) TraceOption[D] {
	return func(c *traceConfig[D]) {
		c.branching = enabled
	}
}

// WithActionType filters which steps reach the step actions.
func WithActionType[D any](at networktrace.ActionType) TraceOption[D] {
	return func(c *traceConfig[D]) {
		c.actionType = at
	}
}

// WithComputeData sets how step payloads propagate.
func WithComputeData[D any](fn networktrace.ComputeData[D]) TraceOption[D] {
	return func(c *traceConfig[D]) {
		c.computeData = fn
	}
}

// NewTrace creates a trace over the engine's network in the scenario of ops.
func NewTrace[D any](e *Engine, ops operators.NetworkStateOperators, opts ...TraceOption[D]) *networktrace.NetworkTrace[D] {
	cfg := traceConfig[D]{name: e.Name + "/" + string(ops.Scenario())}
	for _, opt := range opts {
		opt(&cfg)
	}

	topts := append(e.traversalOptions(cfg.name), traversal.WithBranching(cfg.branching))
	return networktrace.New[D](ops, topts...).
		WithActionType(cfg.actionType).
		WithComputeData(cfg.computeData)
}

// NewBranchingTrace is NewTrace with branching enabled.
func NewBranchingTrace[D any](e *Engine, ops operators.NetworkStateOperators, opts ...TraceOption[D]) *networktrace.NetworkTrace[D] {
	return NewTrace(e, ops, append(opts, WithBranching[D](true))...)
}
