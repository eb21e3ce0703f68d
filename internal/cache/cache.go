// Package cache stores rendered analysis JSON so repeated requests for the
// same symbol and trading day skip fetching and analysis.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-value store with expiry.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Key builds the cache key for one symbol's analysis on one trading day.
func Key(symbol string, day time.Time) string {
	return fmt.Sprintf("signal:%s:%s", symbol, day.Format("20060102"))
}

// NoopCache never stores anything; used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NoopCache) Close() error                                             { return nil }
