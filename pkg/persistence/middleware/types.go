// Package middleware decorates snapshot stores with caching and instrumentation.
package middleware

import "github.com/aretw0/gridwalk/pkg/ports"

// Middleware allows wrapping a SnapshotStore to add behavior.
type Middleware func(ports.SnapshotStore) ports.SnapshotStore

// Apply wraps store with mws. The first middleware is the outermost.
func Apply(store ports.SnapshotStore, mws ...Middleware) ports.SnapshotStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
