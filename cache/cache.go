package cache

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache: key not found")

// DocumentTTL matches the max-age advertised to HTTP clients, so a cached
// document never outlives what a downstream cache may already hold.
const DocumentTTL = 300 * time.Second

// Store is a TTL-based byte cache.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DocumentKey namespaces a document identifier inside a shared keyspace.
func DocumentKey(id string) string { return "docserve:doc:" + id }
