package ports

import (
	"context"
	"time"
)

// RepositoryConfig represents weather repository configuration
type RepositoryConfig struct {
	DefaultForecastSite string
	FetchTimeout        time.Duration
}

// DisplayConfig represents presentation settings shared by the views
type DisplayConfig struct {
	Location            *time.Location
	ZeroFillUnparseable bool
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetRepositoryConfig() RepositoryConfig
	GetDisplayConfig() DisplayConfig
}

// PreferenceStore is key/value persistence rooted at an application scoped location.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordServiceCall(operation, provider string, success bool, duration time.Duration)
}
