// Copyright (c) 2026 Manabase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. Local '.env' files are
merged into the process environment first via 'joho/godotenv'.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Scryfall) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envFiles are loaded in order. Variables already present in the process
// environment always win.
var envFiles = []string{".env", ".env.local"}

// # Configuration Schema

// Config holds all runtime configuration for the Manabase API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional; import receipts are disabled when empty.
	RedisURL         string        `env:"REDIS_URL"`
	ImportReceiptTTL time.Duration `env:"IMPORT_RECEIPT_TTL" envDefault:"24h"`

	// External card database (Scryfall)
	Scryfall ScryfallConfig `envPrefix:"SCRYFALL_"`

	// ImportConcurrency bounds the number of parallel card lookups per import.
	ImportConcurrency int `env:"IMPORT_CONCURRENCY" envDefault:"8"`

	// Log file rotation. Stdout logging is always on.
	Log LogConfig `envPrefix:"LOG_"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// ScryfallConfig tunes the outbound client.
type ScryfallConfig struct {
	BaseURL    string        `env:"BASE_URL"    envDefault:"https://api.scryfall.com"`
	UserAgent  string        `env:"USER_AGENT"  envDefault:"Manabase/1.0"`
	Timeout    time.Duration `env:"TIMEOUT"     envDefault:"10s"`
	MaxRetries int           `env:"MAX_RETRIES" envDefault:"3"`
	RPS        float64       `env:"RPS"         envDefault:"10"`
}

// LogConfig controls the optional rotating file sink.
type LogConfig struct {
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB"    envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS"    envDefault:"3"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS"   envDefault:"28"`
	Compress   bool   `env:"COMPRESS"       envDefault:"true"`
}

// # Configuration Loading

// Load merges optional .env files into the environment and parses it into a [Config].
func Load() (*Config, error) {

	// Missing .env files are normal outside local development
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.ImportConcurrency < 1 {
		return nil, fmt.Errorf("config: IMPORT_CONCURRENCY must be positive, got %d", cfg.ImportConcurrency)
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

// AllowedOrigins splits EXTRA_ORIGINS into individual origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
