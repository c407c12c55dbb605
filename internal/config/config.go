package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Kafka      KafkaConfig
	Telemetry  TelemetryConfig
	Pagination PaginationConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BodyLimit   int
	// WSAllowedOrigins limits /ws/jobs upgrades; empty allows any origin.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	ListingTTL time.Duration
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignTTL    time.Duration
	MaxUploadSize int64
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := time.ParseDuration(raw)
		if err != nil || v <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "jobboard"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
		BodyLimit:   optInt("HTTP_BODY_LIMIT", 10*1024*1024),

		WSAllowedOrigins: splitList(opt("WS_ALLOWED_ORIGINS", "")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              req("DB_HOST"),
		DBPort:              opt("DB_PORT", "5432"),
		DBName:              req("DB_NAME"),
		DBUser:              req("DB_USER"),
		DBPassword:          opt("DB_PASSWORD", ""),
		DBSSLMode:           opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:      optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:        int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:        int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime: optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime: optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 5*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Addr:       opt("REDIS_ADDR", "localhost:6379"),
		Password:   opt("REDIS_PASSWORD", ""),
		DB:         optInt("REDIS_DB", 0),
		ListingTTL: optDuration("REDIS_LISTING_TTL", time.Minute),
	}

	cfg.Storage = StorageConfig{
		Endpoint:      opt("S3_ENDPOINT", ""),
		AccessKey:     opt("S3_ACCESS_KEY", ""),
		SecretKey:     opt("S3_SECRET_KEY", ""),
		Bucket:        opt("S3_BUCKET", "jobboard"),
		UseSSL:        strings.EqualFold(opt("S3_USE_SSL", "false"), "true"),
		PresignTTL:    optDuration("S3_PRESIGN_TTL", time.Hour),
		MaxUploadSize: int64(optInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
	}

	cfg.Kafka = KafkaConfig{
		Brokers: splitList(opt("KAFKA_BROKERS", "")),
		Topic:   opt("KAFKA_JOB_TOPIC", "jobboard.jobs"),
	}

	cfg.Telemetry = TelemetryConfig{
		OTLPEndpoint: opt("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  opt("OTEL_SERVICE_NAME", cfg.App.AppName),
	}

	cfg.Pagination = PaginationConfig{
		DefaultPageSize: optInt("PAGE_SIZE", 10),
		MaxPageSize:     optInt("MAX_PAGE_SIZE", 100),
	}
	if cfg.Pagination.DefaultPageSize <= 0 {
		invalid = append(invalid, "PAGE_SIZE")
	}
	if cfg.Pagination.MaxPageSize < cfg.Pagination.DefaultPageSize {
		invalid = append(invalid, "MAX_PAGE_SIZE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
