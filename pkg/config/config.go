package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// referenceWeekLayout is the date format of AVAILABILITY_REFERENCE_WEEK.
const referenceWeekLayout = "2006-01-02"

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	CORS         CORSConfig
	Log          LogConfig
	Availability AvailabilityConfig
	Cache        CacheConfig
	Metrics      MetricsConfig
	Exports      ExportsConfig
	Invalidation InvalidationConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AvailabilityConfig tunes schedule evaluation.
type AvailabilityConfig struct {
	// ReferenceWeek pins weekday conversions to the week containing this date.
	// Zero means the week of the current clock reading.
	ReferenceWeek time.Time
	// DefaultTimezone is used for presentation when the caller sends no zone.
	DefaultTimezone string
	// PreloadZones are resolved at startup so a broken tz database fails fast.
	PreloadZones  []string
	FilterWorkers int
}

// CacheConfig controls the Redis listing cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// ExportsConfig gates the opening-hours export endpoint.
type ExportsConfig struct {
	Enabled bool
}

// InvalidationConfig sizes the asynchronous cache invalidation queue.
type InvalidationConfig struct {
	Workers int
	Retries int
	Buffer  int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	referenceWeek, err := parseDate(v.GetString("AVAILABILITY_REFERENCE_WEEK"))
	if err != nil {
		return nil, err
	}
	workers := v.GetInt("AVAILABILITY_FILTER_WORKERS")
	if workers <= 0 {
		workers = 4
	}
	cfg.Availability = AvailabilityConfig{
		ReferenceWeek:   referenceWeek,
		DefaultTimezone: v.GetString("AVAILABILITY_DEFAULT_TIMEZONE"),
		PreloadZones:    splitAndTrim(v.GetString("AVAILABILITY_PRELOAD_ZONES")),
		FilterWorkers:   workers,
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 2*time.Minute),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.Exports = ExportsConfig{Enabled: v.GetBool("ENABLE_EXPORTS")}

	cfg.Invalidation = InvalidationConfig{
		Workers: v.GetInt("INVALIDATION_WORKERS"),
		Retries: v.GetInt("INVALIDATION_RETRIES"),
		Buffer:  v.GetInt("INVALIDATION_BUFFER"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "shops")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("AVAILABILITY_REFERENCE_WEEK", "")
	v.SetDefault("AVAILABILITY_DEFAULT_TIMEZONE", "UTC")
	v.SetDefault("AVAILABILITY_PRELOAD_ZONES", "")
	v.SetDefault("AVAILABILITY_FILTER_WORKERS", 4)

	v.SetDefault("ENABLE_CACHE", true)
	v.SetDefault("CACHE_TTL", "2m")
	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("ENABLE_EXPORTS", true)

	v.SetDefault("INVALIDATION_WORKERS", 1)
	v.SetDefault("INVALIDATION_RETRIES", 3)
	v.SetDefault("INVALIDATION_BUFFER", 64)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(referenceWeekLayout, raw)
	if err != nil {
		return time.Time{}, errors.New("AVAILABILITY_REFERENCE_WEEK must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
