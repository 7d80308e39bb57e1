// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// SyncApp holds the application identity used by the sync pipeline.
type SyncApp struct {
	// AppID is the manifest identifier, possibly with a "/debug" suffix.
	AppID string
	// Locale is the active language tag.
	Locale string
	// FHIRBaseURL is the canonical URL base for metadata resources.
	FHIRBaseURL string
	// Version is the application version.
	Version string
	// LogFile is the log destination; empty means stdout.
	LogFile string
}

// SyncAdapter holds the outbound FHIR transport settings.
type SyncAdapter struct {
	// Address is the FHIR server or gateway base URL.
	Address string
	// RequestTimeout is the timeout of a single request.
	RequestTimeout time.Duration
	// RetryCount is the number of retries of transient failures.
	RetryCount int
	// ProxyMode selects the gateway-header request shape.
	ProxyMode bool
	// Token is the bearer token.
	Token string
}

// SyncStorage contains local persistence settings.
type SyncStorage struct {
	// DSN is the SQLite connection string.
	DSN string
	// AssetsDir is the offline asset base directory.
	AssetsDir string
}

// SyncWorkers contains background job settings.
type SyncWorkers struct {
	// SyncInterval defines how often the configuration sync runs.
	SyncInterval time.Duration
	// Concurrency bounds per-stage parallelism.
	Concurrency int
}

// SyncConfig is the configuration view consumed by the sync pipeline,
// assembled from [StructuredConfig].
type SyncConfig struct {
	App     SyncApp
	Adapter SyncAdapter
	Storage SyncStorage
	Workers SyncWorkers
}

// GetSyncConfig builds and validates the sync configuration view from the
// merged structured configuration.
func GetSyncConfig() (*SyncConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	syncCfg := newSyncConfig(cfg)
	return syncCfg, syncCfg.validate()
}

func newSyncConfig(cfg *StructuredConfig) *SyncConfig {
	baseURL := cfg.App.FHIRBaseURL
	if baseURL == "" {
		baseURL = cfg.Adapter.Address
	}

	return &SyncConfig{
		App: SyncApp{
			AppID:       strings.TrimSpace(cfg.App.ID),
			Locale:      cfg.App.Locale,
			FHIRBaseURL: baseURL,
			Version:     cfg.App.Version,
			LogFile:     cfg.App.LogFile,
		},
		Adapter: SyncAdapter{
			Address:        cfg.Adapter.Address,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
			ProxyMode:      cfg.Adapter.ProxyMode,
			Token:          cfg.Adapter.Token,
		},
		Storage: SyncStorage{
			DSN:       cfg.Storage.DB.DSN,
			AssetsDir: cfg.Storage.AssetsDir,
		},
		Workers: SyncWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
			Concurrency:  cfg.Workers.Concurrency,
		},
	}
}
