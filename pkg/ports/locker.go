package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes mutating traces of the same scenario across processes.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx ends. The lock expires after ttl if it
	// is never released. The returned UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
