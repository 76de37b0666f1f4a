package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotAvailable = errors.New("cache: not available")
	ErrNotFound     = errors.New("cache: key not found")
)

// Helper wraps a redis client with JSON marshalling and a key prefix. A nil
// client degrades gracefully: reads miss and writes are no-ops, so the engine
// works unchanged without redis configured.
type Helper struct {
	client *redis.Client
	prefix string
}

func NewHelper(client *redis.Client, prefix string) *Helper {
	return &Helper{client: client, prefix: prefix}
}

// TTLs per data class. Stats are cheap to recompute but read on every
// dashboard render; query pages churn faster.
const (
	StatsTTL = 5 * time.Minute
	QueryTTL = 2 * time.Minute
)

func (h *Helper) key(key string) string {
	return h.prefix + key
}

// Get retrieves and unmarshals a cached value into dest.
func (h *Helper) Get(ctx context.Context, key string, dest any) error {
	if h.client == nil {
		return ErrNotAvailable
	}

	data, err := h.client.Get(ctx, h.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal: %w", err)
	}
	return nil
}

// Set marshals and stores a value under key for the given TTL.
func (h *Helper) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if h.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return h.client.Set(ctx, h.key(key), data, ttl).Err()
}

// Delete removes the given keys.
func (h *Helper) Delete(ctx context.Context, keys ...string) error {
	if h.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = h.key(k)
	}
	return h.client.Del(ctx, full...).Err()
}

// InvalidatePattern removes every key matching the pattern, using SCAN rather
// than KEYS so large keyspaces do not block redis.
func (h *Helper) InvalidatePattern(ctx context.Context, pattern string) error {
	if h.client == nil {
		return nil
	}

	fullPattern := h.key(pattern)
	var cursor uint64
	var keys []string
	for {
		scanned, next, err := h.client.Scan(ctx, cursor, fullPattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan %q: %w", pattern, err)
		}
		keys = append(keys, scanned...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return h.client.Del(ctx, keys...).Err()
}

// GetOrCompute implements cache-aside: return the cached value if present,
// otherwise compute, store and return it. Cache failures fall through to the
// compute function; they never fail the read.
func (h *Helper) GetOrCompute(ctx context.Context, key string, dest any, ttl time.Duration, compute func() (any, error)) error {
	err := h.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNotAvailable) {
		slog.WarnContext(ctx, "Cache read failed, falling through", "error", err, "key", key)
	}

	value, err := compute()
	if err != nil {
		return err
	}
	if err := h.Set(ctx, key, value, ttl); err != nil {
		slog.WarnContext(ctx, "Cache write failed", "error", err, "key", key)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal result: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Manager holds the cache helpers used by the question repository.
type Manager struct {
	Stats *Helper
	Query *Helper
}

// NewManager builds the helpers. client may be nil when redis is not
// configured.
func NewManager(client *redis.Client) *Manager {
	return &Manager{
		Stats: NewHelper(client, "qb:stats:"),
		Query: NewHelper(client, "qb:query:"),
	}
}

// StatsKey names the single stats entry for a tenant.
func StatsKey(tenantID string) string {
	return tenantID + ":current"
}

// InvalidateTenant drops every cached value belonging to the tenant. Called
// after each collection write so readers never see a stale aggregate. The
// stats entry has a known key and is deleted directly; query pages are
// hash-keyed and need the pattern scan.
func (m *Manager) InvalidateTenant(ctx context.Context, tenantID string) {
	if err := m.Stats.Delete(ctx, StatsKey(tenantID)); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate tenant stats cache",
			"error", err,
			"tenant_id", tenantID)
	}
	if err := m.Query.InvalidatePattern(ctx, tenantID+":*"); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate tenant query cache",
			"error", err,
			"tenant_id", tenantID)
	}
}

// HealthCheck verifies redis connectivity.
func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.Stats.client == nil {
		return ErrNotAvailable
	}
	if _, err := m.Stats.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("cache health check: %w", err)
	}
	return nil
}
