// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/internal/config"
	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/metrics"
	"github.com/opensrp/fhircore-configsync/internal/registry"
	"github.com/opensrp/fhircore-configsync/internal/store"
	"github.com/opensrp/fhircore-configsync/internal/utils"
	"github.com/opensrp/fhircore-configsync/models"
)

// Sources reported in run duration metrics.
const (
	sourceRemote = "remote"
	sourceLocal  = "local"
	sourceAssets = "assets"
)

// shapeSearch labels plain searches issued outside of a RequestShaper.
const shapeSearch = "search"

type configSyncService struct {
	source    adapter.FHIRDataSource
	resources store.ResourceRepository
	syncScope store.SyncScopeRepository
	sink      MergeSink
	shaper    RequestShaper
	walker    *paginationWalker
	registry  *registry.ConfigRegistry
	assets    fs.FS

	concurrency int
	ids         *utils.UUIDGenerator

	metrics *metrics.SyncMetrics
	logger  *logger.Logger
}

// NewConfigSyncService wires the orchestrator. The request shape follows
// cfg.Adapter.ProxyMode; offline assets are read from cfg.Storage.AssetsDir.
func NewConfigSyncService(
	source adapter.FHIRDataSource,
	storages *store.Storages,
	reg *registry.ConfigRegistry,
	cfg config.SyncConfig,
	m *metrics.SyncMetrics,
	logger *logger.Logger,
) ConfigSyncService {
	var assets fs.FS
	if cfg.Storage.AssetsDir != "" {
		assets = os.DirFS(cfg.Storage.AssetsDir)
	}

	return &configSyncService{
		source:      source,
		resources:   storages.Resources,
		syncScope:   storages.SyncScope,
		sink:        NewLocalMergeSink(storages, cfg.App.FHIRBaseURL, m, logger),
		shaper:      NewRequestShaper(cfg.Adapter.ProxyMode),
		walker:      newPaginationWalker(source, logger),
		registry:    reg,
		assets:      assets,
		concurrency: max(cfg.Workers.Concurrency, 1),
		ids:         utils.NewUUIDGenerator(),
		metrics:     m,
		logger:      logger,
	}
}

// ParseAppID drops a "/debug"-style suffix from appID.
func ParseAppID(appID string) string {
	id, _, _ := strings.Cut(strings.TrimSpace(appID), "/")
	return strings.TrimSpace(id)
}

// FetchRemoteConfigurations implements ConfigSyncService.
func (s *configSyncService) FetchRemoteConfigurations(ctx context.Context, appID string, progress models.ProgressFunc) (loaded bool, err error) {
	id := ParseAppID(appID)
	if id == "" {
		return false, ErrEmptyAppID
	}

	run := newSyncRun(s.ids.Generate(), progress)
	log := s.logger.GetChildLogger()
	log.Logger = log.With().Str("run_id", run.id).Str("app_id", id).Logger()
	ctx = log.WithContext(utils.WithRunID(ctx, run.id))

	started := time.Now()
	defer func() {
		s.metrics.RecordRunDuration(ctx, sourceRemote, time.Since(started), loaded)
	}()

	log.Info().Str("func", "configSyncService.FetchRemoteConfigurations").
		Str("shape", s.shaper.Name()).
		Msg("configuration sync started")

	// decoded objects are rebuilt on every pass
	s.registry.Clear()

	composition, raw, err := s.fetchComposition(ctx, id)
	if err != nil {
		log.Err(err).Str("func", "configSyncService.FetchRemoteConfigurations").
			Msg("failed to fetch application manifest")
		return false, err
	}

	run.plan(ClassifyManifest(composition))

	for _, stage := range models.Stages {
		if ctx.Err() != nil {
			return false, fmt.Errorf("%w: before stage %s: %w", ErrSyncCancelled, stage, ctx.Err())
		}

		s.drainStage(ctx, run, stage)

		if stage == models.StageManifest {
			if failed := run.degraded[stage]; failed > 0 {
				return false, fmt.Errorf("%w: %d manifest chunk(s) failed", ErrManifestUnavailable, failed)
			}
			s.fetchIcons(ctx, run)
		}
	}

	// a stage cut short by cancellation leaves the run incomplete
	if ctx.Err() != nil {
		return false, fmt.Errorf("%w: during stage %s: %w", ErrSyncCancelled, models.Stages[len(models.Stages)-1], ctx.Err())
	}

	configs, bundles := s.carrierDocuments(ctx, run)
	if len(configs) == 0 {
		return false, fmt.Errorf("%w: manifest %s yielded no configuration", ErrConfigsNotLoaded, id)
	}

	// from here on the run is complete; its closing writes ignore cancellation
	writeCtx := context.WithoutCancel(ctx)

	// the manifest itself goes in last, once everything it references is
	// stored; a write failure is logged by the sink like any other merge
	_ = s.sink.AddOrUpdate(writeCtx, raw)

	s.registry.Replace(configs, bundles)

	scope := run.syncScope()
	if err = s.syncScope.SaveSyncScope(writeCtx, scope); err != nil {
		log.Err(err).Str("func", "configSyncService.FetchRemoteConfigurations").
			Msg("failed to persist sync scope")
	}

	log.Info().Str("func", "configSyncService.FetchRemoteConfigurations").
		Int("configs", len(configs)).
		Int("locale_bundles", len(bundles)).
		Strs("sync_scope", scope).
		Interface("degraded_chunks", run.degraded).
		Msg("configuration sync finished")

	return true, nil
}

// fetchComposition searches the Composition of appID by identifier.
func (s *configSyncService) fetchComposition(ctx context.Context, appID string) (models.Composition, models.Resource, error) {
	path := models.ResourceTypeComposition + "?identifier=" + url.QueryEscape(appID) +
		"&_count=" + strconv.Itoa(DefaultPageSize)

	s.metrics.RecordRequest(ctx, models.StageManifest.String(), shapeSearch)
	bundle, err := s.source.Search(ctx, path)
	if err != nil {
		return models.Composition{}, nil, fmt.Errorf("%w: %w", ErrManifestUnavailable, err)
	}

	for _, entry := range bundle.Entry {
		resource, err := models.ParseResource(entry.Resource)
		if err != nil || resource.ResourceType() != models.ResourceTypeComposition {
			continue
		}

		var composition models.Composition
		if err = resource.Decode(&composition); err != nil {
			return models.Composition{}, nil, fmt.Errorf("%w: %w", ErrManifestUnavailable, err)
		}
		return composition, resource, nil
	}

	return models.Composition{}, nil, fmt.Errorf("%w: no Composition with identifier %s", ErrManifestUnavailable, appID)
}

// drainStage fetches stage until its queue stays empty. Resource types are
// fetched concurrently; chunks of one type run in order.
func (s *configSyncService) drainStage(ctx context.Context, run *syncRun, stage models.QueueStage) {
	log := logger.FromContext(ctx)

	for run.queue.Len(stage) > 0 {
		if ctx.Err() != nil {
			return
		}

		run.progress.begin(stage, run.queue.Len(stage))
		groups := run.queue.Drain(stage)
		results := make([]chunkResult, len(groups))

		var g errgroup.Group
		g.SetLimit(s.concurrency)
		for i, batches := range groups {
			g.Go(func() error {
				results[i] = s.fetchBatches(ctx, run, batches)
				return nil
			})
		}
		_ = g.Wait()

		run.applyWave(stage, results)

		log.Debug().Str("func", "configSyncService.drainStage").
			Str("stage", stage.String()).
			Int("resource_types", len(groups)).
			Int("pending", run.queue.Len(stage)).
			Msg("stage wave finished")
	}
}

// fetchBatches fetches the chunks of one resource type in order. A failed
// chunk is abandoned; later chunks still run. Cancellation skips the chunks
// not yet started.
func (s *configSyncService) fetchBatches(ctx context.Context, run *syncRun, batches []models.RequestBatch) chunkResult {
	var res chunkResult
	processor := &entryProcessor{sink: s.sink, carriers: run.carriers, result: &res}

	for _, batch := range batches {
		if ctx.Err() != nil {
			return res
		}
		if err := s.fetchBatch(ctx, run, batch, processor); err != nil {
			res.failedChunks++
			s.metrics.RecordChunkFailure(ctx, batch.Stage.String(), batch.ResourceType)
			logger.FromContext(ctx).Err(err).
				Str("func", "configSyncService.fetchBatches").
				Str("stage", batch.Stage.String()).
				Str("resource_type", batch.ResourceType).
				Strs("ids", batch.IDs).
				Msg("chunk fetch failed, skipping")
		}
	}

	return res
}

func (s *configSyncService) fetchBatch(ctx context.Context, run *syncRun, batch models.RequestBatch, processor *entryProcessor) error {
	// requests already issued complete even when the run is cancelled
	reqCtx := context.WithoutCancel(ctx)

	for _, req := range s.shaper.Shape(batch) {
		s.metrics.RecordRequest(ctx, batch.Stage.String(), s.shaper.Name())

		_, err := s.walker.Walk(reqCtx, req, batch.Stage, run.progress.walk(), processor.handlePage)
		if errors.Is(err, adapter.ErrNotFound) {
			logger.FromContext(ctx).Warn().
				Str("func", "configSyncService.fetchBatch").
				Str("resource_type", batch.ResourceType).
				Strs("ids", req.IDs).
				Msg("resource not found, skipping")
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// fetchIcons bulk-fetches the icon Binaries named by the manifest, one _id
// search per chunk. Failures are logged and never fail the run.
func (s *configSyncService) fetchIcons(ctx context.Context, run *syncRun) {
	if len(run.icons) == 0 {
		return
	}

	icons := newRequestQueue()
	for _, key := range run.icons {
		icons.Enqueue(models.StageManifest, key)
	}

	var res chunkResult
	processor := &entryProcessor{sink: s.sink, carriers: run.carriers, result: &res}
	reqCtx := context.WithoutCancel(ctx)

	for _, batches := range icons.Drain(models.StageManifest) {
		for _, batch := range batches {
			if ctx.Err() != nil {
				return
			}

			req := models.ShapedRequest{
				Method:       http.MethodGet,
				Path:         searchPath(batch.ResourceType, batch.IDs),
				ResourceType: batch.ResourceType,
				IDs:          batch.IDs,
			}
			s.metrics.RecordRequest(ctx, batch.Stage.String(), shapeSearch)

			if _, err := s.walker.Walk(reqCtx, req, batch.Stage, nil, processor.handlePage); err != nil {
				s.metrics.RecordChunkFailure(ctx, batch.Stage.String(), batch.ResourceType)
				logger.FromContext(ctx).Err(err).
					Str("func", "configSyncService.fetchIcons").
					Strs("ids", batch.IDs).
					Msg("icon fetch failed, skipping")
			}
		}
	}

	run.applyWave(models.StageManifest, []chunkResult{res})
}

// carrierDocuments turns the fetched config carriers into registry
// documents, in manifest order so that a repeated key keeps the last one.
func (s *configSyncService) carrierDocuments(ctx context.Context, run *syncRun) (map[string]string, map[string]map[string]string) {
	configs := make(map[string]string)
	bundles := make(map[string]map[string]string)

	for _, key := range run.carrierOrder {
		resource, ok := run.carrierDocs[key]
		if !ok {
			logger.FromContext(ctx).Warn().
				Str("func", "configSyncService.carrierDocuments").
				Str("resource_type", key.Type).
				Str("id", key.ID).
				Msg("configuration carrier was not fetched")
			continue
		}
		s.addDocument(ctx, run.carriers[key], resource, configs, bundles)
	}

	return configs, bundles
}

// addDocument stores the payload of one carrier: Binary data decoded from
// base64, Parameters as JSON. Identifiers naming a locale bundle are parsed
// as properties and keep their raw name; others are camelCased.
func (s *configSyncService) addDocument(ctx context.Context, identifier string, resource models.Resource, configs map[string]string, bundles map[string]map[string]string) {
	log := logger.FromContext(ctx)

	payload, err := carrierPayload(resource)
	if err != nil {
		log.Err(err).Str("func", "configSyncService.addDocument").
			Str("identifier", identifier).
			Msg("failed to read configuration carrier")
		return
	}

	if registry.IsLocaleBundle(identifier) {
		bundle, err := registry.ParseLocaleBundle(payload)
		if err != nil {
			log.Err(err).Str("func", "configSyncService.addDocument").
				Str("identifier", identifier).
				Msg("failed to parse locale bundle")
			return
		}
		bundles[identifier] = bundle
		return
	}

	configs[utils.CamelCase(identifier)] = string(payload)
}

func carrierPayload(resource models.Resource) ([]byte, error) {
	if resource.ResourceType() == models.ResourceTypeParameters {
		return resource.JSON()
	}

	var binary models.Binary
	if err := resource.Decode(&binary); err != nil {
		return nil, err
	}
	return binary.DecodedData()
}

// LoadConfigurations implements ConfigSyncService.
func (s *configSyncService) LoadConfigurations(ctx context.Context, appID string) (loaded bool, err error) {
	id := ParseAppID(appID)
	if id == "" {
		return false, ErrEmptyAppID
	}

	started := time.Now()
	defer func() {
		s.metrics.RecordRunDuration(ctx, sourceLocal, time.Since(started), loaded)
	}()

	log := s.logger.GetChildLogger()
	log.Logger = log.With().Str("app_id", id).Logger()
	ctx = log.WithContext(ctx)

	s.registry.Clear()

	found, err := s.resources.Search(ctx, models.SearchQuery{
		ResourceType: models.ResourceTypeComposition,
		Filters:      []models.SearchFilter{{Path: "$.identifier.value", Value: id}},
		Limit:        1,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrConfigsNotLoaded, err)
	}
	if len(found) == 0 {
		return false, fmt.Errorf("%w: no local Composition with identifier %s", ErrConfigsNotLoaded, id)
	}

	var composition models.Composition
	if err = found[0].Decode(&composition); err != nil {
		return false, fmt.Errorf("%w: %w", ErrConfigsNotLoaded, err)
	}

	configs := make(map[string]string)
	bundles := make(map[string]map[string]string)
	for _, focus := range ClassifyManifest(composition) {
		if focus.Kind != models.FocusConfig {
			continue
		}

		resource, err := s.resources.Get(ctx, focus.ResourceType, focus.ID)
		if err != nil {
			log.Warn().Err(err).Str("func", "configSyncService.LoadConfigurations").
				Str("resource_type", focus.ResourceType).
				Str("id", focus.ID).
				Msg("configuration carrier missing from local storage")
			continue
		}
		s.addDocument(ctx, focus.IdentifierValue, resource, configs, bundles)
	}

	if len(configs) == 0 {
		return false, fmt.Errorf("%w: local manifest %s yielded no configuration", ErrConfigsNotLoaded, id)
	}

	s.registry.Replace(configs, bundles)

	log.Info().Str("func", "configSyncService.LoadConfigurations").
		Int("configs", len(configs)).
		Msg("configurations loaded from local storage")

	return true, nil
}

// LoadLocalConfigurations implements ConfigSyncService.
func (s *configSyncService) LoadLocalConfigurations(ctx context.Context, appID string) (loaded bool, err error) {
	id := ParseAppID(appID)
	if id == "" {
		return false, ErrEmptyAppID
	}
	if s.assets == nil {
		return false, fmt.Errorf("%w: no assets directory configured", ErrConfigsNotLoaded)
	}

	started := time.Now()
	defer func() {
		s.metrics.RecordRunDuration(ctx, sourceAssets, time.Since(started), loaded)
	}()

	s.registry.Clear()

	assets, err := registry.LoadAssets(s.assets, id)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrConfigsNotLoaded, err)
	}

	manifest, err := models.ParseResource(assets.Composition)
	if err != nil || manifest.ResourceType() != models.ResourceTypeComposition {
		return false, fmt.Errorf("%w: %s is not a Composition", ErrConfigsNotLoaded, registry.CompositionAssetName)
	}
	if len(assets.Configs) == 0 {
		return false, fmt.Errorf("%w: asset tree %s holds no configuration", ErrConfigsNotLoaded, id)
	}

	s.registry.Replace(assets.Configs, assets.Bundles)

	s.logger.Info().Str("func", "configSyncService.LoadLocalConfigurations").
		Str("app_id", id).
		Int("configs", len(assets.Configs)).
		Int("locale_bundles", len(assets.Bundles)).
		Msg("configurations loaded from assets")

	return true, nil
}

// SetLocale implements ConfigSyncService.
func (s *configSyncService) SetLocale(locale string) {
	s.registry.SetLocale(locale)
}

// SyncScope implements ConfigSyncService.
func (s *configSyncService) SyncScope(ctx context.Context) ([]string, error) {
	return s.syncScope.SyncScope(ctx)
}
