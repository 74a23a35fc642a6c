package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	symbolsKey = "market:symbols"
	symbolsTTL = time.Minute
)

// SymbolsCache is a short-lived Redis cache for the available-symbols
// listing, which is both hot and expensive (a distinct scan over the
// snapshot collection). Misses and Redis failures are equivalent: the
// caller falls through to the store.
type SymbolsCache struct {
	client *redis.Client
}

// NewSymbolsCache creates a SymbolsCache wrapping the given Redis client.
func NewSymbolsCache(client *redis.Client) *SymbolsCache {
	return &SymbolsCache{client: client}
}

// Get returns the cached symbol list, or ok=false on miss or failure.
func (c *SymbolsCache) Get(ctx context.Context) ([]string, bool) {
	raw, err := c.client.Get(ctx, symbolsKey).Bytes()
	if err != nil {
		return nil, false
	}
	var symbols []string
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, false
	}
	return symbols, true
}

// Set stores the symbol list (expires after symbolsTTL). Failures are
// silently dropped; the cache is purely an optimisation.
func (c *SymbolsCache) Set(ctx context.Context, symbols []string) {
	raw, err := json.Marshal(symbols)
	if err != nil {
		return
	}
	c.client.Set(ctx, symbolsKey, raw, symbolsTTL)
}
