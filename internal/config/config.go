// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package config defines the xbrld configuration model and loads it through
// Koanf v2 with layered sources: built-in defaults, an optional YAML file,
// and environment variables (highest priority).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mverhaert/xbrld/internal/validation"
)

// Config is the root configuration for the service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Cache   CacheConfig   `koanf:"cache"`
	Engine  EngineConfig  `koanf:"engine"`
	Staging StagingConfig `koanf:"staging"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// Timeout bounds a whole request. Validation is synchronous and slow;
	// this is the only in-process cancellation applied to a run.
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CacheConfig locates the pre-populated taxonomy cache.
type CacheConfig struct {
	// Dir is the cache root, laid out as {scheme}/{host}/{path}.
	Dir string `koanf:"dir" validate:"required"`

	// Offline forbids any network access during validation. Defaults to
	// true and should stay true: cache misses must surface as validation
	// errors, not remote fetches.
	Offline bool `koanf:"offline"`
}

// EngineConfig configures the external validation engine subprocess.
type EngineConfig struct {
	Command string        `koanf:"command" validate:"required"`
	Timeout time.Duration `koanf:"timeout"`
	Plugins string        `koanf:"plugins"`
}

// StagingConfig configures where request bodies are staged.
type StagingConfig struct {
	// Dir is the temp staging directory; empty means os.TempDir().
	Dir string `koanf:"dir"`
}

// APIConfig holds HTTP surface limits.
type APIConfig struct {
	MaxBodyBytes      int64         `koanf:"max_body_bytes" validate:"min=1"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration. A missing cache directory is reported
// by the caller as a warning, not a startup failure: absent taxonomy files
// surface later as validation errors per the offline contract.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("config: server.timeout must be positive")
	}
	if c.Engine.Timeout < 0 {
		return fmt.Errorf("config: engine.timeout must not be negative")
	}
	if !c.API.RateLimitDisabled && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("config: api.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}

// CacheDirExists reports whether the configured cache root is present.
func (c *Config) CacheDirExists() bool {
	info, err := os.Stat(c.Cache.Dir)
	return err == nil && info.IsDir()
}
