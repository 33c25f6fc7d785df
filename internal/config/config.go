package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Источники коллекции записей
const (
	SourceGenerator = "generator"
	SourceHTTP      = "http"
	SourcePostgres  = "postgres"
	SourceRedis     = "redis"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Record Source Config
	RecordSource  string        `env:"RECORD_SOURCE" envDefault:"generator"`
	RemoteAPIURL  string        `env:"REMOTE_API_URL" envDefault:"http://localhost:8000/api"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" envDefault:"10s"`
	RemoteLimit   int           `env:"REMOTE_LIMIT" envDefault:"10000"`
	SampleSize    int           `env:"SAMPLE_SIZE" envDefault:"2000"`
	SampleSeed    uint64        `env:"SAMPLE_SEED" envDefault:"0"`

	// Postgres Config
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis Config
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass       string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	RedisRecordsKey string `env:"REDIS_RECORDS_KEY" envDefault:"incident_records"`
	RedisSeedSample bool   `env:"REDIS_SEED_SAMPLE" envDefault:"false"`

	// Dashboard Config
	TopN        int `env:"TOP_N" envDefault:"10"`
	RecentLimit int `env:"RECENT_LIMIT" envDefault:"10"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RecordSource:    strings.ToLower(getEnv("RECORD_SOURCE", SourceGenerator)),
		RemoteAPIURL:    getEnv("REMOTE_API_URL", "http://localhost:8000/api"),
		RemoteTimeout:   getEnvAsDuration("REMOTE_TIMEOUT", 10*time.Second),
		RemoteLimit:     getEnvAsInt("REMOTE_LIMIT", 10000),
		SampleSize:      getEnvAsInt("SAMPLE_SIZE", 2000),
		SampleSeed:      getEnvAsUint64("SAMPLE_SEED", 0),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		RedisRecordsKey: getEnv("REDIS_RECORDS_KEY", "incident_records"),
		RedisSeedSample: getEnvAsBool("REDIS_SEED_SAMPLE", false),
		TopN:            getEnvAsInt("TOP_N", 10),
		RecentLimit:     getEnvAsInt("RECENT_LIMIT", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.RecordSource {
	case SourceGenerator, SourceRedis:
	case SourceHTTP:
		if c.RemoteLimit <= 0 {
			return fmt.Errorf("REMOTE_LIMIT must be positive, got %d", c.RemoteLimit)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for RECORD_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown RECORD_SOURCE %q", c.RecordSource)
	}
	if c.SampleSize <= 0 {
		return fmt.Errorf("SAMPLE_SIZE must be positive, got %d", c.SampleSize)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseUint(value, 10, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
