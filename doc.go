/*
Package gridwalk traces electrical networks: it walks terminals, equipment and connectivity nodes
under composable conditions, and carries the derived per-terminal state (phases, feeder
directions) for the normal and current scenarios.

# Concept

A network is a graph of conducting equipment whose terminals meet at connectivity nodes. A trace
walks that graph one hop at a time. The engine does not know what a trace is for: callers steer
it with queue conditions, end it with stop conditions and act on each step with step actions.
Higher-level algorithms such as feeder direction or phase assignment are condition sets plus a
step action that writes through the scenario's state operators.

# Key Features

  - Scenario-aware: every trace reads and writes through operators.Normal or operators.Current.
  - Topology rules: busbars, line-segment clamps and cuts are handled by the step path provider.
  - Branching traces: per-branch visited sets without recursion or copying.
  - Persistence: traced outcomes are saved as snapshots (memory or Redis) and restored later.
  - Observability: structured logging with log/slog and Prometheus metrics through hooks.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/gridwalk"
		"github.com/aretw0/gridwalk/pkg/adapters/yamlnet"
		"github.com/aretw0/gridwalk/pkg/networktrace"
		"github.com/aretw0/gridwalk/pkg/networktrace/conditions"
		"github.com/aretw0/gridwalk/pkg/networktrace/operators"
	)

	func main() {
		ctx := context.Background()
		loader, err := yamlnet.NewFileLoader("feeder.yaml")
		if err != nil {
			log.Fatal(err)
		}
		eng, err := gridwalk.New(ctx, gridwalk.WithLoader(loader))
		if err != nil {
			log.Fatal(err)
		}

		head, err := eng.Network().Terminal("cb-t2")
		if err != nil {
			log.Fatal(err)
		}

		err = eng.RunScenarios(ctx, func(ctx context.Context, ops operators.NetworkStateOperators) error {
			trace := gridwalk.NewTrace[struct{}](eng, ops)
			trace.AddQueueCondition(conditions.Downstream[struct{}](ops))
			trace.AddQueueCondition(conditions.StopAtOpen[struct{}](ops))
			trace.AddStartTerminal(head, struct{}{})
			for _, eq := range trace.Equipment(ctx) {
				log.Println(ops.Scenario(), eq)
			}
			return nil
		})
		if err != nil {
			log.Fatal(err)
		}
	}
*/
package gridwalk
