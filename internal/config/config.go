// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging defaults, an optional JSON file, environment
// variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session settings.
	App App `envPrefix:"APP_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote API connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background sync, connectivity probe and retry settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Diagnostics holds the optional diagnostics HTTP listener.
	Diagnostics Diagnostics `envPrefix:"DIAGNOSTICS_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds the session collaborator settings. The engine does not log in
// by itself: it consumes a bearer token issued elsewhere.
type App struct {
	// Token is a bearer token used verbatim.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// TokenFile is a file containing the bearer token. It is re-read on
	// every access so an external login flow can rotate it.
	// Env: APP_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// Storage groups the configuration of the local storage backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the sqlite connection settings.
type DB struct {
	// DSN is the sqlite database path or DSN (e.g. "bizsync.db",
	// "file:bizsync.db?_busy_timeout=5000").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the remote API settings.
type Adapter struct {
	// HTTPAddress is the base URL of the business API
	// (e.g. "https://api.example.com/v1" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background processing settings.
type Workers struct {
	// SyncInterval is the period of the background drain-and-load job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is the period of the connectivity probe.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// RetryBase is the first load retry delay; later delays double.
	// Env: WORKERS_RETRY_BASE
	RetryBase time.Duration `env:"RETRY_BASE"`

	// RetryMax caps the load retry delay.
	// Env: WORKERS_RETRY_MAX
	RetryMax time.Duration `env:"RETRY_MAX"`

	// MaxRetries is the number of load retries scheduled after a failure.
	// Env: WORKERS_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Diagnostics holds the diagnostics HTTP API settings.
type Diagnostics struct {
	// HTTPAddress is the listen address in "host:port" form. Empty disables
	// the listener.
	// Env: DIAGNOSTICS_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Log holds log output settings.
type Log struct {
	// File is the log file of interactive binaries.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// defaultConfig is the lowest-priority source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "bizsync.db"}},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SyncInterval:  5 * time.Minute,
			ProbeInterval: 10 * time.Second,
			RetryBase:     2 * time.Second,
			RetryMax:      30 * time.Second,
			MaxRetries:    3,
		},
	}
}

// GetStructuredConfig loads and merges the configuration from all sources.
// args are the command-line arguments without the program name.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		build()
}
