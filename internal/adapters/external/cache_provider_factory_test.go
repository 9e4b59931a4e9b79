package external

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/config"
	"weatherview.app/pkg/errors"
)

func TestCacheProviderFactory_CreateCacheProvider(t *testing.T) {
	factory := NewCacheProviderFactory()

	t.Run("NilConfig", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(nil)
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("MemoryCache", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCacheProvider{}, provider)
	})

	t.Run("RedisCache", func(t *testing.T) {
		_, redisConfig := setupMockRedis(t)

		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeRedis, Redis: *redisConfig})
		require.NoError(t, err)
		assert.IsType(t, &RedisCacheProviderAdapter{}, provider)
	})

	t.Run("UnknownCacheType", func(t *testing.T) {
		provider, err := factory.CreateCacheProvider(&config.CacheConfig{Type: config.CacheTypeUnknown})
		assert.Nil(t, provider)
		assert.True(t, errors.IsConfigurationError(err))
	})
}
