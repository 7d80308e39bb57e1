// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/opensrp/fhircore-configsync/internal/logger"
)

// DefaultSyncInterval is used when the job is started without an interval.
const DefaultSyncInterval = 15 * time.Minute

type configSyncJob struct {
	syncService ConfigSyncService
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConfigSyncJob creates a configSyncJob that calls
// syncService.FetchRemoteConfigurations on a ticker. The job is idle until
// Start is called.
func NewConfigSyncJob(syncService ConfigSyncService, logger *logger.Logger) ConfigSyncJob {
	return &configSyncJob{syncService: syncService, logger: logger}
}

// Start implements ConfigSyncJob. It stops any previously running job, then
// launches a background goroutine that syncs every interval. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *configSyncJob) Start(ctx context.Context, appID string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.syncService.FetchRemoteConfigurations(jobCtx, appID, nil); err != nil {
					j.logger.Err(err).
						Str("func", "configSyncJob.Start").
						Str("app_id", appID).
						Msg("periodic configuration sync failed")
				}
			}
		}
	}()
}

// Stop implements ConfigSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *configSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
