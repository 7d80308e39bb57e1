// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/metrics"
	"github.com/opensrp/fhircore-configsync/internal/registry"
	"github.com/opensrp/fhircore-configsync/internal/store"
)

type Services struct {
	Registry    *registry.ConfigRegistry
	SyncService ConfigSyncService
	SyncJob     ConfigSyncJob
}

func NewServices(source adapter.FHIRDataSource, storages *store.Storages, cfg config.SyncConfig, m *metrics.SyncMetrics, logger *logger.Logger) *Services {
	reg := registry.NewConfigRegistry(cfg.App.Locale, logger)
	syncSvc := NewConfigSyncService(source, storages, reg, cfg, m, logger)

	return &Services{
		Registry:    reg,
		SyncService: syncSvc,
		SyncJob:     NewConfigSyncJob(syncSvc, logger),
	}
}
