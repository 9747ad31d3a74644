package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	BLS       BLSConfig
	ONet      ONetConfig
	Typesense TypesenseConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Data      DataConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type BLSConfig struct {
	APIKey              string
	BaseURL             string
	BulkDownloadBaseURL string
	RequestsPerSecond   float64
	MaxSeriesPerRequest int
	Timeout             time.Duration
}

type ONetConfig struct {
	Username          string
	AppKey            string
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

type TypesenseConfig struct {
	Host      string
	Port      string
	Protocol  string
	APIKey    string
	Timeout   time.Duration
	BatchSize int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type DataConfig struct {
	Year     int
	CacheDir string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobtracker"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    opt("HTTP_PORT", "8080"),
	}

	cfg.BLS = BLSConfig{
		APIKey:              opt("BLS_API_KEY", ""),
		BaseURL:             opt("BLS_BASE_URL", "https://api.bls.gov/publicAPI/v2/"),
		BulkDownloadBaseURL: opt("BLS_BULK_BASE_URL", "https://www.bls.gov/oes/special-requests/"),
		RequestsPerSecond:   optFloat("BLS_RPS", 2),
		MaxSeriesPerRequest: optInt("BLS_MAX_SERIES", 50),
		Timeout:             optSeconds("BLS_TIMEOUT_SECONDS", 30),
	}

	cfg.ONet = ONetConfig{
		Username:          opt("ONET_USERNAME", ""),
		AppKey:            opt("ONET_APP_KEY", ""),
		BaseURL:           opt("ONET_BASE_URL", "https://services.onetcenter.org/ws/"),
		RequestsPerSecond: optFloat("ONET_RPS", 5),
		Timeout:           optSeconds("ONET_TIMEOUT_SECONDS", 30),
	}

	cfg.Typesense = TypesenseConfig{
		Host:      opt("TYPESENSE_HOST", "localhost"),
		Port:      opt("TYPESENSE_PORT", "8108"),
		Protocol:  opt("TYPESENSE_PROTOCOL", "http"),
		APIKey:    req("TYPESENSE_API_KEY"),
		Timeout:   optSeconds("TYPESENSE_TIMEOUT_SECONDS", 10),
		BatchSize: optInt("TYPESENSE_BATCH_SIZE", 100),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", "jobtracker"),
		DBUser:     opt("DB_USER", "jobtracker"),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT_SECONDS", 5),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 1800),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_SECONDS", 300),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_SECONDS", 60),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      optSeconds("REDIS_TTL", 600),
	}

	// DATA_YEAR pins the OEWS data year; 0 probes for the latest
	// published year at refresh time.
	cfg.Data = DataConfig{
		Year:     optInt("DATA_YEAR", 0),
		CacheDir: opt("CACHE_DIR", "./cache"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func optFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func optSeconds(key string, fallback int) time.Duration {
	return time.Duration(optInt(key, fallback)) * time.Second
}
