/*
Package session coordinates traces that mutate network state.

A Manager serializes work per key, optionally across replicas through a distributed locker, and
persists traced outcomes as snapshots so later processes restore them instead of tracing again.
*/
package session
