// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/service"
)

type configSyncWorker struct {
	ctx      context.Context
	job      service.ConfigSyncJob
	appID    string
	interval time.Duration
	logger   *logger.Logger
}

// NewConfigSyncWorker returns a Worker that re-fetches the configuration of
// appID every interval until ctx is done or Stop is called.
func NewConfigSyncWorker(ctx context.Context, job service.ConfigSyncJob, appID string, interval time.Duration, logger *logger.Logger) Worker {
	return &configSyncWorker{
		ctx:      ctx,
		job:      job,
		appID:    appID,
		interval: interval,
		logger:   logger,
	}
}

func (w *configSyncWorker) Run() {
	w.logger.Info().
		Str("func", "configSyncWorker.Run").
		Str("app_id", w.appID).
		Dur("interval", w.interval).
		Msg("starting configuration sync worker")

	w.job.Start(w.ctx, w.appID, w.interval)
}

func (w *configSyncWorker) Stop() {
	w.job.Stop()
	w.logger.Info().
		Str("func", "configSyncWorker.Stop").
		Str("app_id", w.appID).
		Msg("configuration sync worker stopped")
}
