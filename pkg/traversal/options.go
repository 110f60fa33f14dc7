package traversal

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/gridwalk/internal/logging"
)

// RunEvent describes the start or the end of a run. Outcome and Duration are only set on
// completion.
type RunEvent struct {
	RunID      string
	Name       string
	StartItems int
	Outcome    Outcome
	Duration   time.Duration
}

// StepEvent describes one delivered step.
type StepEvent struct {
	RunID      string
	Name       string
	StepNumber int
	BranchID   int
	Stopping   bool
	// Queued is the number of candidates accepted from this step.
	Queued int
}

// Hooks are optional observability callbacks. A nil field is skipped.
type Hooks struct {
	OnRunStart    func(context.Context, *RunEvent)
	OnStep        func(context.Context, *StepEvent)
	OnRunComplete func(context.Context, *RunEvent)
}

type config struct {
	name               string
	logger             *slog.Logger
	hooks              Hooks
	branching          bool
	canStopOnStartItem bool
}

func defaultConfig() config {
	return config{
		name:               "traversal",
		logger:             logging.NewNop(),
		canStopOnStartItem: true,
	}
}

// Option configures a Traversal.
type Option func(*config)

// WithName labels the traversal in logs and hook events.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the structured logger. Runs log at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithBranching enables branching mode from construction.
func WithBranching(enabled bool) Option {
	return func(c *config) {
		c.branching = enabled
	}
}

// WithCanStopOnStartItem controls whether stop conditions apply to start items (default true).
func WithCanStopOnStartItem(enabled bool) Option {
	return func(c *config) {
		c.canStopOnStartItem = enabled
	}
}
