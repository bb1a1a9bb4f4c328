// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local '.env' file is
loaded first when present so development setups need no exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Komik API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL   string `env:"DATABASE_URL,required,notEmpty"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) for auth and reader sessions
	RedisURL         string        `env:"REDIS_URL,required,notEmpty"`
	RedisPoolSize    int           `env:"REDIS_POOL_SIZE"    envDefault:"10"`
	ReaderSessionTTL time.Duration `env:"READER_SESSION_TTL" envDefault:"2h"`

	// Signing keys for access tokens
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required,notEmpty"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required,notEmpty"`

	// Object Storage (S3-compatible)
	S3Endpoint    string `env:"S3_ENDPOINT"     envDefault:"localhost:9000"`
	S3Region      string `env:"S3_REGION"       envDefault:"auto"`
	S3AccessKey   string `env:"S3_ACCESS_KEY"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`
	S3UseSSL      bool   `env:"S3_USE_SSL"      envDefault:"false"`
	S3PublicURL   string `env:"S3_PUBLIC_URL"`
	S3CoverBucket string `env:"S3_COVER_BUCKET" envDefault:"comic-covers"`
	S3PageBucket  string `env:"S3_PAGE_BUCKET"  envDefault:"comic-pages"`

	// Event bus; empty keeps catalog events in-process
	NATSURL string `env:"NATS_URL"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string   `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"komik.app"`
	ExtraOrigins        []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsOriginAllowed reports whether a browser origin may call the API outside development.
func (c *Config) IsOriginAllowed(origin string) bool {
	if c.AllowedOriginSuffix != "" && strings.HasSuffix(origin, c.AllowedOriginSuffix) {
		return true
	}
	for _, extra := range c.ExtraOrigins {
		if strings.TrimSpace(extra) == origin {
			return true
		}
	}
	return false
}

// EventsEnabled reports whether catalog events go through NATS.
func (c *Config) EventsEnabled() bool {
	return c.NATSURL != ""
}
