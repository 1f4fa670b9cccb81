// Package config loads service settings from an optional YAML file plus
// EARNBASE_-prefixed environment overrides, with documented defaults for
// every field.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings aggregates the configuration consumed by earnbase services.
type Settings struct {
	Service  ServiceSettings  `mapstructure:"service"`
	HTTP     HTTPSettings     `mapstructure:"http"`
	Logging  LoggingSettings  `mapstructure:"logging"`
	MongoDB  MongoDBSettings  `mapstructure:"mongodb"`
	Postgres PostgresSettings `mapstructure:"postgres"`
	Redis    RedisSettings    `mapstructure:"redis"`
	Kafka    KafkaSettings    `mapstructure:"kafka"`
	Metrics  MetricsSettings  `mapstructure:"metrics"`
	JWT      JWTSettings      `mapstructure:"jwt"`
}

type ServiceSettings struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
	Env         string `mapstructure:"env"`
	Debug       bool   `mapstructure:"debug"`
	EnableDocs  bool   `mapstructure:"enable_docs"`
}

type HTTPSettings struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Workers   int    `mapstructure:"workers"`
	APIPrefix string `mapstructure:"api_prefix"`
}

type LoggingSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type MongoDBSettings struct {
	URL         string `mapstructure:"url"`
	DBName      string `mapstructure:"db_name"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
}

// PostgresSettings configures the optional pgx pool for services backed by
// Postgres instead of MongoDB.
type PostgresSettings struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	User              string        `mapstructure:"user"`
	Password          string        `mapstructure:"password"`
	Database          string        `mapstructure:"database"`
	SSLMode           string        `mapstructure:"ssl_mode"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

type RedisSettings struct {
	URL    string        `mapstructure:"url"`
	DB     int           `mapstructure:"db"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

type MetricsSettings struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type JWTSettings struct {
	SecretKey       string        `mapstructure:"secret_key"`
	Algorithm       string        `mapstructure:"algorithm"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// Load reads settings from the given YAML file (may be empty to rely on
// defaults and environment only) and environment variables prefixed with
// EARNBASE_.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("EARNBASE")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"service.name",
		"service.description",
		"service.version",
		"service.env",
		"service.debug",
		"service.enable_docs",
		"http.host",
		"http.port",
		"http.workers",
		"http.api_prefix",
		"logging.level",
		"logging.file",
		"mongodb.url",
		"mongodb.db_name",
		"mongodb.min_pool_size",
		"mongodb.max_pool_size",
		"postgres.host",
		"postgres.port",
		"postgres.user",
		"postgres.password",
		"postgres.database",
		"postgres.ssl_mode",
		"postgres.max_conns",
		"postgres.min_conns",
		"postgres.max_conn_lifetime",
		"postgres.max_conn_idle_time",
		"postgres.health_check_period",
		"redis.url",
		"redis.db",
		"redis.prefix",
		"redis.ttl",
		"kafka.brokers",
		"kafka.topic_prefix",
		"kafka.async",
		"metrics.enabled",
		"metrics.port",
		"jwt.secret_key",
		"jwt.algorithm",
		"jwt.access_token_ttl",
		"jwt.refresh_token_ttl",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "earnbase-service")
	v.SetDefault("service.description", "")
	v.SetDefault("service.version", "0.1.0")
	v.SetDefault("service.env", "development")
	v.SetDefault("service.debug", false)
	v.SetDefault("service.enable_docs", true)

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.workers", 1)
	v.SetDefault("http.api_prefix", "/api/v1")

	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.file", "")

	v.SetDefault("mongodb.url", "mongodb://localhost:27017")
	v.SetDefault("mongodb.db_name", "earnbase")
	v.SetDefault("mongodb.min_pool_size", 10)
	v.SetDefault("mongodb.max_pool_size", 100)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "earnbase")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "earnbase")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)
	v.SetDefault("postgres.max_conn_lifetime", "60m")
	v.SetDefault("postgres.max_conn_idle_time", "15m")
	v.SetDefault("postgres.health_check_period", "30s")

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "")
	v.SetDefault("redis.ttl", "1h")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic_prefix", "earnbase")
	v.SetDefault("kafka.async", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.access_token_ttl", "30m")
	v.SetDefault("jwt.refresh_token_ttl", "168h")
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "EARNBASE_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
