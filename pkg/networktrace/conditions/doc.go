// Package conditions holds the built-in queue and stop conditions of network traces.
//
// Every condition reads network state through the operators it was built with, so the same
// condition answers for the normal or the current scenario.
package conditions
