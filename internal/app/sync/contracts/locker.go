package contracts

import (
	"context"

	"github.com/light-bringer/sapsync-service/internal/app/sync/domain"
)

// SyncLocker is the distributed mutual-exclusion capability, one lock per
// (salesOrg, customerID). Locks carry a TTL and expire lazily: an expired
// record is treated as absent by the next Acquire or IsLocked call.
//
// Contention is not an error: Acquire returns false when the lock is held.
// Store failures (lock backend unreachable) propagate instead of silently
// granting the lock.
type SyncLocker interface {
	// Acquire takes the lock, returning true on success and false when an
	// unexpired record for the same key already exists.
	Acquire(ctx context.Context, id domain.SyncLockID) (bool, error)

	// Release drops the lock. Releasing a lock that is not held is a no-op,
	// and release is derived purely from the key so any process may release.
	Release(ctx context.Context, id domain.SyncLockID) error

	// IsLocked reports whether an unexpired lock record exists.
	IsLocked(ctx context.Context, id domain.SyncLockID) (bool, error)
}
