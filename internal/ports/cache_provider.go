package ports

import (
	"context"
	"time"
)

// CacheProvider defines the contract for caching operations. A zero TTL never expires.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
}

// CacheMetrics defines the contract for cache performance tracking
type CacheMetrics interface {
	GetStats() CacheStats
	RecordHit()
	RecordMiss()
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	TotalOps    int64     `json:"total_ops"`
	HitRatio    float64   `json:"hit_ratio"`
	LastUpdated time.Time `json:"last_updated"`
}

// SnapshotCache stores typed service responses. Load reports false on a miss.
type SnapshotCache interface {
	Load(ctx context.Context, key string, target interface{}) (bool, error)
	Store(ctx context.Context, key string, value interface{}) error
}
