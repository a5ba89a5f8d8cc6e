package config

import (
	"os"
	"strings"
	"time"
)

// Config captures everything main needs to wire the service.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    RedisConfig
	Kafka    Kafka
	Registry Registry
	Email    Email
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	IsProduction  bool
}

// Postgres holds the database connection settings. An empty URL selects the
// in-memory stores (dev and test mode).
type Postgres struct {
	URL string
}

// RedisConfig holds connection settings for the registry-state cache.
// An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka holds audit publishing settings. Empty brokers disable the publisher.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Registry holds settings for the external domain registry client.
type Registry struct {
	// Mock latency applied by the stub client, to keep dev behavior honest
	// about the cost of out-of-process calls.
	Latency time.Duration
}

// Email holds notification dispatch settings.
type Email struct {
	FromAddress string
}

// RegistryCacheTTL enforces retention for cached registry state. Registry
// state can change out-of-band, so cached answers must age out quickly.
var RegistryCacheTTL = 5 * time.Minute

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("REGISTRAR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	from := os.Getenv("REGISTRAR_FROM_EMAIL")
	if from == "" {
		from = "help@get.gov"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "registrar.audit"
	}

	return Config{
		Server: Server{
			Addr:          addr,
			JWTSigningKey: jwtSigningKey,
			IsProduction:  os.Getenv("REGISTRAR_ENV") == "production",
		},
		Postgres: Postgres{URL: os.Getenv("DATABASE_URL")},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka:    Kafka{Brokers: brokers, Topic: topic},
		Registry: Registry{Latency: 50 * time.Millisecond},
		Email:    Email{FromAddress: from},
	}
}
