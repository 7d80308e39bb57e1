// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is
// populated by merging values from environment variables, command-line
// flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the application identity and locale.
	App App `envPrefix:"APP_"`

	// Adapter holds the FHIR server connection settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local resource store and offline asset settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds the background sync settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration.
type App struct {
	// ID is the application id used to look up the manifest Composition
	// (e.g. "quest" or "quest/debug").
	// Env: APP_ID
	ID string `env:"ID"`

	// Locale is the active language used for {{ }} placeholder
	// substitution in configuration documents.
	// Env: APP_LOCALE
	Locale string `env:"LOCALE" envDefault:"en"`

	// FHIRBaseURL is the base used to derive canonical URLs of merged
	// metadata resources. Defaults to Adapter.Address.
	// Env: APP_FHIR_BASE_URL
	FHIRBaseURL string `env:"FHIR_BASE_URL"`

	// Version is the semantic version of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the optional file the JSON log is appended to instead of
	// stdout.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds configuration of the outbound FHIR transport.
type Adapter struct {
	// Address is the FHIR server (or gateway) base URL.
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// RetryCount is the number of retries of transient failures.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT" envDefault:"3"`

	// ProxyMode selects the gateway-header request shape instead of batch
	// bundles.
	// Env: ADAPTER_PROXY_MODE
	ProxyMode bool `env:"PROXY_MODE"`

	// Token is the bearer token supplied by the authentication layer.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Storage groups local persistence settings.
type Storage struct {
	// DB holds the SQLite connection settings.
	DB DB `envPrefix:"DB_"`

	// AssetsDir is the base directory of the offline configuration assets.
	// Env: STORAGE_ASSETS_DIR
	AssetsDir string `env:"ASSETS_DIR"`
}

// DB holds connection settings for the local SQLite store.
type DB struct {
	// DSN is the SQLite file path or ":memory:".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds configuration for background sync.
type Workers struct {
	// SyncInterval is the period of the background configuration sync.
	// Zero runs a single sync and exits.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// Concurrency bounds the number of resource types fetched in parallel
	// within one stage.
	// Env: WORKERS_CONCURRENCY
	Concurrency int `env:"CONCURRENCY" envDefault:"4"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
