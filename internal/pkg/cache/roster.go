package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timeqr/timeqr-backend-go/internal/domain/employee"
)

const rosterVersionKey = "roster:version"

// RosterCache keeps filtered employee listings in Redis with a TTL.
// Invalidation bumps a version counter instead of scanning keys, so
// stale entries simply age out. A nil client disables the cache and
// every method becomes a no-op miss.
type RosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	return &RosterCache{client: client, ttl: ttl}
}

func (c *RosterCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached roster for the filter, reporting whether the
// entry was present.
func (c *RosterCache) Get(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	key, err := c.rosterKey(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var employees []employee.Employee
	if err := json.Unmarshal([]byte(value), &employees); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return employees, true, nil
}

// Set stores the roster for the filter under the current version.
func (c *RosterCache) Set(ctx context.Context, filter employee.ListFilter, employees []employee.Employee) error {
	if !c.Enabled() {
		return nil
	}

	key, err := c.rosterKey(ctx, filter)
	if err != nil {
		return err
	}

	value, err := json.Marshal(employees)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate bumps the roster version so every existing entry is
// orphaned. Called after any employee write.
func (c *RosterCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.client.Incr(ctx, rosterVersionKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *RosterCache) rosterKey(ctx context.Context, filter employee.ListFilter) (string, error) {
	version, err := c.client.Get(ctx, rosterVersionKey).Int64()
	if err == redis.Nil {
		version = 0
	} else if err != nil {
		return "", fmt.Errorf("cache version: %w", err)
	}
	return fmt.Sprintf("roster:v%d:%s:%s:%t", version, filter.Branch, filter.Position, filter.ActiveOnly), nil
}
