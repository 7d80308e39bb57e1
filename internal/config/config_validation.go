// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks invariants of the merged [StructuredConfig] that hold
// regardless of which view is built from it.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RetryCount < 0 {
		return fmt.Errorf("%w: negative retry count", ErrInvalidAdapterConfigs)
	}
	if cfg.Workers.Concurrency < 0 {
		return fmt.Errorf("%w: negative concurrency", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *SyncConfig) validate() error {
	if cfg.App.AppID == "" || cfg.App.Locale == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RetryCount < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval < 0 || cfg.Workers.Concurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
