package external

import (
	"context"
	"encoding/json"
	"time"

	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const snapshotKeyPrefix = "snapshot:"

// SnapshotCacheAdapter bridges the byte-level CacheProvider to typed JSON snapshots
type SnapshotCacheAdapter struct {
	cacheProvider ports.CacheProvider
	ttl           time.Duration
}

// NewSnapshotCacheAdapter creates a snapshot cache whose entries live for ttl
func NewSnapshotCacheAdapter(cacheProvider ports.CacheProvider, ttl time.Duration) *SnapshotCacheAdapter {
	return &SnapshotCacheAdapter{
		cacheProvider: cacheProvider,
		ttl:           ttl,
	}
}

// Load decodes the snapshot stored under key into target. It reports false on a miss.
func (s *SnapshotCacheAdapter) Load(ctx context.Context, key string, target interface{}) (bool, error) {
	data, err := s.cacheProvider.Get(ctx, snapshotKeyPrefix+key)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, target); err != nil {
		// undecodable snapshots are dropped
		_ = s.cacheProvider.Delete(ctx, snapshotKeyPrefix+key)
		return false, errors.NewPersistenceError("failed to deserialize snapshot", err)
	}
	return true, nil
}

// Store serialises value as JSON under key
func (s *SnapshotCacheAdapter) Store(ctx context.Context, key string, value interface{}) error {
	if value == nil {
		return errors.NewValidationError("snapshot value cannot be nil")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewPersistenceError("failed to serialize snapshot", err)
	}

	return s.cacheProvider.Set(ctx, snapshotKeyPrefix+key, data, s.ttl)
}
