package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherview.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxRetries         = 10
	maxTimeoutSeconds  = 300
	appDirName         = "weatherview"
)

// Config represents the application configuration structure
type Config struct {
	Bom         BomConfig         `split_words:"true"`
	Forecast    ForecastConfig    `split_words:"true"`
	HTTP        HTTPConfig        `split_words:"true"`
	Cache       CacheConfig       `split_words:"true"`
	Preferences PreferencesConfig `split_words:"true"`
	Display     DisplayConfig     `split_words:"true"`
	Log         LogConfig         `split_words:"true"`
	Diagnostics DiagnosticsConfig `split_words:"true"`
	Refresh     RefreshConfig     `split_words:"true"`
}

type BomConfig struct {
	BaseURL     string `envconfig:"BOM_BASE_URL" default:"http://www.bom.gov.au"`
	StationsURL string `envconfig:"BOM_STATIONS_URL"`
	UserAgent   string `envconfig:"BOM_USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) weatherview/1.0"`
}

type ForecastConfig struct {
	Site                  string `envconfig:"FORECAST_SITE" default:"openweathermap"`
	OpenWeatherMapKey     string `envconfig:"OPENWEATHERMAP_API_KEY"`
	OpenWeatherMapBaseURL string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	ForecastIOKey         string `envconfig:"FORECASTIO_API_KEY"`
	ForecastIOBaseURL     string `envconfig:"FORECASTIO_API_BASE_URL" default:"https://api.forecast.io"`
}

type HTTPConfig struct {
	TimeoutSeconds        int `envconfig:"HTTP_TIMEOUT_SECONDS" default:"10"`
	MaxRetries            int `envconfig:"HTTP_MAX_RETRIES" default:"2"`
	BreakerTimeoutSeconds int `envconfig:"HTTP_BREAKER_TIMEOUT_SECONDS" default:"60"`
}

// Timeout returns the per-request timeout
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// BreakerTimeout returns how long an open circuit stays open
func (h HTTPConfig) BreakerTimeout() time.Duration {
	return time.Duration(h.BreakerTimeoutSeconds) * time.Second
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type            CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	SnapshotEnabled bool        `envconfig:"CACHE_SNAPSHOT_ENABLED" default:"true"`
	TTLMinutes      int         `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	Redis           RedisConfig `split_words:"true"`
}

// TTL returns the snapshot lifetime
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type PreferencesConfig struct {
	Driver string `envconfig:"PREFERENCES_DRIVER" default:"sqlite"`
	Path   string `envconfig:"PREFERENCES_PATH"`
	DSN    string `envconfig:"PREFERENCES_DSN"`
}

// SQLitePath returns the configured database file, defaulting to the user config directory.
func (p PreferencesConfig) SQLitePath() (string, error) {
	if p.Path != "" {
		return p.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.NewConfigurationError("cannot resolve user config directory", err)
	}
	return filepath.Join(dir, appDirName, "preferences.db"), nil
}

type DisplayConfig struct {
	TimeZone            string `envconfig:"DISPLAY_TIMEZONE" default:"GMT"`
	ZeroFillUnparseable bool   `envconfig:"DISPLAY_ZERO_FILL_UNPARSEABLE" default:"false"`
}

// Location loads the configured time zone
func (d DisplayConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(d.TimeZone)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("invalid DISPLAY_TIMEZONE %q", d.TimeZone), err)
	}
	return loc, nil
}

type LogConfig struct {
	Level    string `envconfig:"LOG_LEVEL" default:"info"`
	Format   string `envconfig:"LOG_FORMAT" default:"text"`
	FilePath string `envconfig:"LOG_FILE_PATH"`
}

type DiagnosticsConfig struct {
	Addr string `envconfig:"DIAGNOSTICS_ADDR"`
}

type RefreshConfig struct {
	IntervalMinutes int `envconfig:"REFRESH_INTERVAL_MINUTES" default:"0"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	validators := []func() error{
		c.Bom.Validate,
		c.Forecast.Validate,
		c.HTTP.Validate,
		c.Cache.Validate,
		c.Preferences.Validate,
		c.Display.Validate,
		c.Log.Validate,
		c.Refresh.Validate,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (b *BomConfig) Validate() error {
	if err := validateURL("BOM_BASE_URL", b.BaseURL); err != nil {
		return err
	}
	if b.StationsURL != "" {
		if err := validateURL("BOM_STATIONS_URL", b.StationsURL); err != nil {
			return err
		}
	}
	return nil
}

func (f *ForecastConfig) Validate() error {
	switch f.Site {
	case "openweathermap", "forecastio":
	default:
		return errors.NewConfigurationError(fmt.Sprintf("FORECAST_SITE must be one of: openweathermap, forecastio (got %q)", f.Site), nil)
	}

	if err := validateURL("OPENWEATHERMAP_API_BASE_URL", f.OpenWeatherMapBaseURL); err != nil {
		return err
	}
	return validateURL("FORECASTIO_API_BASE_URL", f.ForecastIOBaseURL)
}

func (h *HTTPConfig) Validate() error {
	if h.TimeoutSeconds < 1 || h.TimeoutSeconds > maxTimeoutSeconds {
		return errors.NewConfigurationError("HTTP_TIMEOUT_SECONDS must be between 1 and 300", nil)
	}
	if h.MaxRetries < 0 || h.MaxRetries > maxRetries {
		return errors.NewConfigurationError("HTTP_MAX_RETRIES must be between 0 and 10", nil)
	}
	if h.BreakerTimeoutSeconds < 1 {
		return errors.NewConfigurationError("HTTP_BREAKER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}
	if c.TTLMinutes < 1 || c.TTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (p *PreferencesConfig) Validate() error {
	switch p.Driver {
	case "sqlite":
		return nil
	case "postgres":
		if p.DSN == "" {
			return errors.NewConfigurationError("PREFERENCES_DSN cannot be empty when PREFERENCES_DRIVER is postgres", nil)
		}
		return nil
	default:
		return errors.NewConfigurationError("PREFERENCES_DRIVER must be one of: sqlite, postgres", nil)
	}
}

func (d *DisplayConfig) Validate() error {
	_, err := d.Location()
	return err
}

func (l *LogConfig) Validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	default:
		return errors.NewConfigurationError("LOG_FORMAT must be one of: json, text", nil)
	}
}

func (r *RefreshConfig) Validate() error {
	if r.IntervalMinutes < 0 || r.IntervalMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("REFRESH_INTERVAL_MINUTES must be between 0 and 1440", nil)
	}
	return nil
}
