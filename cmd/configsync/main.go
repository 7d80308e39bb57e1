// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/metrics"
	"github.com/opensrp/fhircore-configsync/internal/service"
	"github.com/opensrp/fhircore-configsync/internal/store"
	"github.com/opensrp/fhircore-configsync/internal/workers"
	"github.com/opensrp/fhircore-configsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("configsync")
	cfg, err := config.GetSyncConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.LogFile != "" {
		log = logger.NewFileLogger("configsync", cfg.App.LogFile)
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	source, err := adapter.NewFHIRDataSource(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating FHIR data source")
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() {
		logMetrics(context.Background(), reader, log)
		_ = provider.Shutdown(context.Background())
	}()

	syncMetrics, err := metrics.NewSyncMetrics(provider)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating metrics")
	}

	services := service.NewServices(source, storages, *cfg, syncMetrics, log)

	if err = loadConfigurations(ctx, services.SyncService, cfg.App.AppID, log); err != nil {
		log.Error().Err(err).Str("app_id", cfg.App.AppID).Msg("no configuration could be loaded")
		if cfg.Workers.SyncInterval <= 0 {
			return
		}
	}

	if cfg.Workers.SyncInterval <= 0 {
		return
	}

	ws := workers.NewWorkers(
		workers.NewConfigSyncWorker(ctx, services.SyncJob, cfg.App.AppID, cfg.Workers.SyncInterval, log),
	)
	ws.Run()
	<-ctx.Done()
	ws.Stop()

	log.Info().Msg("configsync stopped")
}

// loadConfigurations tries the remote server first, then the local store,
// then the offline assets.
func loadConfigurations(ctx context.Context, svc service.ConfigSyncService, appID string, log *logger.Logger) error {
	progress := func(p models.Progress) {
		log.Debug().Stringer("stage", p.Stage).
			Int("completed", p.Completed).
			Int("total", p.Total).
			Msg("sync progress")
	}

	loaded, remoteErr := svc.FetchRemoteConfigurations(ctx, appID, progress)
	if loaded {
		return nil
	}
	log.Warn().Err(remoteErr).Str("app_id", appID).Msg("remote sync failed, falling back to local storage")

	loaded, localErr := svc.LoadConfigurations(ctx, appID)
	if loaded {
		return nil
	}
	log.Warn().Err(localErr).Str("app_id", appID).Msg("local storage has no configuration, falling back to assets")

	if _, err := svc.LoadLocalConfigurations(ctx, appID); err != nil {
		return fmt.Errorf("remote: %w; local: %w; assets: %w", remoteErr, localErr, err)
	}
	return nil
}

func logMetrics(ctx context.Context, reader *sdkmetric.ManualReader, log *logger.Logger) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		log.Err(err).Msg("error collecting metrics")
		return
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			event := log.Info().Str("metric", m.Name)
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var total int64
				for _, dp := range data.DataPoints {
					total += dp.Value
				}
				event = event.Int64("total", total)
			case metricdata.Histogram[float64]:
				var count uint64
				var sum float64
				for _, dp := range data.DataPoints {
					count += dp.Count
					sum += dp.Sum
				}
				event = event.Uint64("count", count).Float64("sum", sum)
			}
			event.Msg("run metrics")
		}
	}
}
