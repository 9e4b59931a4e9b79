package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// PreferenceStore is a mock of ports.PreferenceStore
type PreferenceStore struct {
	mock.Mock
}

func (m *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *PreferenceStore) Put(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// MetricsCollector is a mock of ports.MetricsCollector
type MetricsCollector struct {
	mock.Mock
}

func (m *MetricsCollector) RecordCacheHit(kind string) {
	m.Called(kind)
}

func (m *MetricsCollector) RecordCacheMiss(kind string) {
	m.Called(kind)
}

func (m *MetricsCollector) RecordServiceCall(operation, provider string, success bool, duration time.Duration) {
	m.Called(operation, provider, success, duration)
}
