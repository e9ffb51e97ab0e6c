package fsutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// LockSuffix is appended to a file's path to name its lock file.
const LockSuffix = ".lock"

// DefaultLockTimeout is how long Lock waits when no deadline is set.
const DefaultLockTimeout = 5 * time.Second

const lockRetryDelay = 50 * time.Millisecond

// ErrLockTimeout is returned when a lock cannot be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for file lock")

// Lock takes an exclusive cross-process lock guarding path. The lock file
// lives next to path with LockSuffix appended. The caller must Unlock the
// returned lock.
func Lock(ctx context.Context, path string) (*flock.Flock, error) {
	lockPath := path + LockSuffix
	if err := EnsureDir(lockPath); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultLockTimeout)
		defer cancel()
	}

	lock := flock.New(lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
		}
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
	}
	return lock, nil
}
