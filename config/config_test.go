package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if settings.Service.Name != "earnbase-service" {
		t.Errorf("Service.Name = %q", settings.Service.Name)
	}
	if settings.Service.Env != "development" {
		t.Errorf("Service.Env = %q", settings.Service.Env)
	}
	if settings.HTTP.Port != 8000 {
		t.Errorf("HTTP.Port = %d", settings.HTTP.Port)
	}
	if settings.HTTP.APIPrefix != "/api/v1" {
		t.Errorf("HTTP.APIPrefix = %q", settings.HTTP.APIPrefix)
	}
	if settings.MongoDB.URL != "mongodb://localhost:27017" {
		t.Errorf("MongoDB.URL = %q", settings.MongoDB.URL)
	}
	if settings.MongoDB.MaxPoolSize != 100 {
		t.Errorf("MongoDB.MaxPoolSize = %d", settings.MongoDB.MaxPoolSize)
	}
	if settings.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d", settings.Postgres.Port)
	}
	if settings.Redis.TTL != time.Hour {
		t.Errorf("Redis.TTL = %v", settings.Redis.TTL)
	}
	if len(settings.Kafka.Brokers) != 1 || settings.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("Kafka.Brokers = %v", settings.Kafka.Brokers)
	}
	if settings.Kafka.TopicPrefix != "earnbase" {
		t.Errorf("Kafka.TopicPrefix = %q", settings.Kafka.TopicPrefix)
	}
	if !settings.Metrics.Enabled || settings.Metrics.Port != 9090 {
		t.Errorf("Metrics = %+v", settings.Metrics)
	}
	if settings.JWT.Algorithm != "HS256" {
		t.Errorf("JWT.Algorithm = %q", settings.JWT.Algorithm)
	}
	if settings.JWT.AccessTokenTTL != 30*time.Minute {
		t.Errorf("JWT.AccessTokenTTL = %v", settings.JWT.AccessTokenTTL)
	}
	if settings.JWT.RefreshTokenTTL != 168*time.Hour {
		t.Errorf("JWT.RefreshTokenTTL = %v", settings.JWT.RefreshTokenTTL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
service:
  name: billing
  env: production
http:
  port: 9000
jwt:
  secret_key: file-secret
  access_token_ttl: 15m
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if settings.Service.Name != "billing" {
		t.Errorf("Service.Name = %q, want billing", settings.Service.Name)
	}
	if settings.Service.Env != "production" {
		t.Errorf("Service.Env = %q", settings.Service.Env)
	}
	if settings.HTTP.Port != 9000 {
		t.Errorf("HTTP.Port = %d, want 9000", settings.HTTP.Port)
	}
	if settings.JWT.SecretKey != "file-secret" {
		t.Errorf("JWT.SecretKey = %q", settings.JWT.SecretKey)
	}
	if settings.JWT.AccessTokenTTL != 15*time.Minute {
		t.Errorf("JWT.AccessTokenTTL = %v", settings.JWT.AccessTokenTTL)
	}

	if settings.HTTP.APIPrefix != "/api/v1" {
		t.Errorf("HTTP.APIPrefix = %q, defaults not preserved", settings.HTTP.APIPrefix)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("EARNBASE_SERVICE_NAME", "from-env")
	t.Setenv("EARNBASE_HTTP_PORT", "8080")
	t.Setenv("EARNBASE_JWT_SECRET_KEY", "env-secret")

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if settings.Service.Name != "from-env" {
		t.Errorf("Service.Name = %q, want from-env", settings.Service.Name)
	}
	if settings.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", settings.HTTP.Port)
	}
	if settings.JWT.SecretKey != "env-secret" {
		t.Errorf("JWT.SecretKey = %q, want env-secret", settings.JWT.SecretKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load succeeded for a missing file")
	}
}
