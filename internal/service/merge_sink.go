// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/internal/metrics"
	"github.com/opensrp/fhircore-configsync/internal/store"
	"github.com/opensrp/fhircore-configsync/internal/utils"
	"github.com/opensrp/fhircore-configsync/models"
)

// localMergeSink writes fetched resources into local storage.
type localMergeSink struct {
	resources store.ResourceRepository
	canonical store.CanonicalIndexRepository

	baseURL string
	ids     *utils.UUIDGenerator
	now     func() time.Time

	metrics *metrics.SyncMetrics
	logger  *logger.Logger
}

// NewLocalMergeSink returns the MergeSink backed by the local repositories.
// baseURL is the server base used to derive missing canonical URLs.
func NewLocalMergeSink(storages *store.Storages, baseURL string, m *metrics.SyncMetrics, logger *logger.Logger) MergeSink {
	return newLocalMergeSink(storages.Resources, storages.CanonicalIndex, baseURL, m, logger)
}

func newLocalMergeSink(resources store.ResourceRepository, canonical store.CanonicalIndexRepository, baseURL string, m *metrics.SyncMetrics, logger *logger.Logger) *localMergeSink {
	return &localMergeSink{
		resources: resources,
		canonical: canonical,
		baseURL:   strings.TrimRight(baseURL, "/"),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		metrics:   m,
		logger:    logger,
	}
}

// AddOrUpdate implements MergeSink. A canonical index failure is logged and
// does not fail the merge.
func (s *localMergeSink) AddOrUpdate(ctx context.Context, resource models.Resource) error {
	if resource.ID() == "" {
		resource.SetID(s.ids.Generate())
	}
	resource.SetLastUpdated(s.now())

	metadata := resource.IsMetadata()
	if metadata && resource.URL() == "" && s.baseURL != "" {
		resource.SetURL(s.baseURL + "/" + resource.Reference())
	}

	runID, _ := utils.GetRunIDFromContext(ctx)

	if err := s.resources.Upsert(ctx, resource); err != nil {
		s.metrics.RecordMerge(ctx, resource.ResourceType(), false)
		s.logger.Err(err).
			Str("func", "localMergeSink.AddOrUpdate").
			Str("run_id", runID).
			Str("resource_type", resource.ResourceType()).
			Str("id", resource.ID()).
			Msg("failed to write resource to local storage")
		return fmt.Errorf("upsert %s: %w", resource.Reference(), err)
	}
	s.metrics.RecordMerge(ctx, resource.ResourceType(), true)

	if !metadata {
		return nil
	}

	if err := s.canonical.InstallCanonical(ctx, resource); err != nil {
		s.logger.Err(err).
			Str("func", "localMergeSink.AddOrUpdate").
			Str("run_id", runID).
			Str("resource_type", resource.ResourceType()).
			Str("id", resource.ID()).
			Str("name", resource.Name()).
			Msg("failed to install resource into canonical index")
	}

	return nil
}
