// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensrp/fhircore-configsync/internal/logger"
)

type spyJob struct {
	mu       sync.Mutex
	ctx      context.Context
	appID    string
	interval time.Duration
	starts   int
	stops    int
}

func (j *spyJob) Start(ctx context.Context, appID string, interval time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ctx = ctx
	j.appID = appID
	j.interval = interval
	j.starts++
}

func (j *spyJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stops++
}

func TestConfigSyncWorker_RunStartsJob(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "run")
	job := &spyJob{}

	w := NewConfigSyncWorker(ctx, job, "quest/debug", 5*time.Minute, logger.Nop())
	w.Run()

	require.Equal(t, 1, job.starts)
	assert.Equal(t, "quest/debug", job.appID)
	assert.Equal(t, 5*time.Minute, job.interval)
	// контекст воркера передаётся в job без изменений
	assert.Equal(t, "run", job.ctx.Value(ctxKey{}))
	assert.Zero(t, job.stops)
}

func TestConfigSyncWorker_StopStopsJob(t *testing.T) {
	job := &spyJob{}

	w := NewConfigSyncWorker(context.Background(), job, "quest", time.Minute, logger.Nop())
	w.Run()
	w.Stop()

	assert.Equal(t, 1, job.starts)
	assert.Equal(t, 1, job.stops)
}

func TestConfigSyncWorker_InWorkers(t *testing.T) {
	job := &spyJob{}

	ws := NewWorkers(NewConfigSyncWorker(context.Background(), job, "quest", 0, logger.Nop()))
	ws.Run()
	ws.Stop()

	assert.Equal(t, 1, job.starts)
	assert.Equal(t, 1, job.stops)
	assert.Zero(t, job.interval)
}
