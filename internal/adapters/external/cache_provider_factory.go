package external

import (
	"fmt"

	"weatherview.app/internal/config"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// CacheBackend is a cache provider that also tracks its hit ratio
type CacheBackend interface {
	ports.CacheProvider
	ports.CacheMetrics
}

// CacheProviderFactory builds the configured cache backend
type CacheProviderFactory struct{}

func NewCacheProviderFactory() *CacheProviderFactory {
	return &CacheProviderFactory{}
}

func (f *CacheProviderFactory) CreateCacheProvider(cfg *config.CacheConfig) (CacheBackend, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("cache config cannot be nil", nil)
	}

	switch cfg.Type {
	case config.CacheTypeMemory:
		return NewMemoryCacheProvider(), nil
	case config.CacheTypeRedis:
		provider, err := NewRedisCacheProviderAdapter(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, errors.NewConfigurationError(
			fmt.Sprintf("unsupported cache type: %s", cfg.Type.String()), nil)
	}
}
