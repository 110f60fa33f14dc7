/*
Package traversal implements a generic breadth-first graph walker with composable conditions.

A Traversal is built from two functions: one that enumerates the candidate items reachable from
an item, and one that derives the comparable visited key of an item. Everything else is plugged
in:

  - QueueCondition gates whether a candidate enters the frontier. All queue conditions must pass.
  - StopCondition gates whether a delivered item is expanded. Any stop condition halts expansion.
  - ContextValueComputer derives a per-step value (a counter, a cached computation) that the
    engine computes exactly once per step, before any condition reads it.
  - StepAction is the visitor, invoked once for every delivered item.

Runs are single threaded. The frontier is FIFO in insertion order. Cancellation is checked once
per dequeued item and ends the run with Outcome.Cancelled set; it is never reported as an error.

# Branching

In branching mode, an item that expands into more than one accepted candidate forks one child
branch per candidate. Each branch sees the visited keys of its ancestors as they were at the
moment of the fork, plus its own. Branches live in an arena and are drained from an explicit
work-list, so deep fan-out never recurses and never copies visited sets.

# Lifecycle

	Idle --AddStartItem--> Seeded --Run/All--> Running --> Completed

Run and All restart from the seeded items every time they are called. Registering conditions or
start items, or starting a run, while a run is in flight is a programming error and panics.
*/
package traversal
