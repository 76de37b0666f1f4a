package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("storage: record not found")

// RecordStore persists named JSON blobs scoped by tenant. Every key lives in
// the tenant's namespace, so concurrent tenants never contend on the same
// record. Implementations must be safe for concurrent use.
type RecordStore interface {
	Get(ctx context.Context, tenantID, key string) ([]byte, error)
	Set(ctx context.Context, tenantID, key string, value []byte) error
	Remove(ctx context.Context, tenantID, key string) error
}
