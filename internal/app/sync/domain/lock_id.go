package domain

import (
	"fmt"
	"strings"
)

const lockKeyPrefix = "sync_lock_"

// SyncLockID identifies the mutual-exclusion scope of a sync run: one lock
// per (salesOrg, customerID) pair. It is not persisted as an entity; it only
// exists as the key format understood by the lock store.
type SyncLockID struct {
	salesOrg   string
	customerID string
}

// NewSyncLockID builds a lock id from its two components.
func NewSyncLockID(salesOrg, customerID string) (SyncLockID, error) {
	if strings.TrimSpace(salesOrg) == "" {
		return SyncLockID{}, ErrEmptySalesOrg
	}
	if strings.TrimSpace(customerID) == "" {
		return SyncLockID{}, ErrEmptyCustomerID
	}
	return SyncLockID{salesOrg: salesOrg, customerID: customerID}, nil
}

// ParseLockKey reverses Key, e.g. "sync_lock_100_CUST1".
func ParseLockKey(key string) (SyncLockID, error) {
	rest, ok := strings.CutPrefix(key, lockKeyPrefix)
	if !ok {
		return SyncLockID{}, fmt.Errorf("%w: %q", ErrInvalidLockKey, key)
	}
	salesOrg, customerID, ok := strings.Cut(rest, "_")
	if !ok || salesOrg == "" || customerID == "" {
		return SyncLockID{}, fmt.Errorf("%w: %q", ErrInvalidLockKey, key)
	}
	return SyncLockID{salesOrg: salesOrg, customerID: customerID}, nil
}

func (id SyncLockID) SalesOrg() string   { return id.salesOrg }
func (id SyncLockID) CustomerID() string { return id.customerID }

// Key returns the lock-store key, "sync_lock_{salesOrg}_{customerId}".
func (id SyncLockID) Key() string {
	return lockKeyPrefix + id.salesOrg + "_" + id.customerID
}

func (id SyncLockID) String() string { return id.Key() }

// Equals reports whether two lock ids cover the same scope.
func (id SyncLockID) Equals(other SyncLockID) bool {
	return id.salesOrg == other.salesOrg && id.customerID == other.customerID
}
