// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/models"
)

// maxBundleNesting bounds the unwrapping of bundles inside bundle entries.
const maxBundleNesting = 8

// entryProcessor classifies the entries of a fetched page and merges them.
// One processor serves one resource type of one wave and is not shared
// between goroutines.
type entryProcessor struct {
	sink     MergeSink
	carriers map[models.ResourceKey]string
	result   *chunkResult
}

// handlePage is a pageHandler.
func (p *entryProcessor) handlePage(ctx context.Context, page *models.Bundle) {
	p.processBundle(ctx, page, 0)
}

func (p *entryProcessor) processBundle(ctx context.Context, bundle *models.Bundle, depth int) {
	log := logger.FromContext(ctx)

	for _, entry := range bundle.Entry {
		if len(entry.Resource) == 0 {
			if entry.Response != nil && !strings.HasPrefix(entry.Response.Status, "2") {
				log.Warn().
					Str("func", "entryProcessor.processBundle").
					Str("status", entry.Response.Status).
					Msg("batch entry failed, skipping")
			}
			continue
		}
		p.processEntry(ctx, entry.Resource, depth)
	}
}

func (p *entryProcessor) processEntry(ctx context.Context, raw json.RawMessage, depth int) {
	log := logger.FromContext(ctx)

	if gjson.GetBytes(raw, "resourceType").String() == models.ResourceTypeBundle {
		if depth >= maxBundleNesting {
			log.Warn().
				Str("func", "entryProcessor.processEntry").
				Int("depth", depth).
				Msg("bundle nesting too deep, skipping")
			return
		}

		nested, err := models.ParseBundle(raw)
		if err != nil {
			log.Err(err).
				Str("func", "entryProcessor.processEntry").
				Msg("failed to decode nested bundle")
			return
		}
		p.processBundle(ctx, nested, depth+1)
		return
	}

	resource, err := models.ParseResource(raw)
	if err != nil {
		log.Err(err).
			Str("func", "entryProcessor.processEntry").
			Msg("failed to decode bundle entry")
		return
	}

	switch resource.ResourceType() {
	case models.ResourceTypeBinary:
		p.scanBinary(ctx, resource)
	case models.ResourceTypeList:
		p.collectListEntries(ctx, resource)
	}

	key := resource.Key()
	if _, ok := p.carriers[key]; ok {
		p.result.carriers = append(p.result.carriers, resource)
	}

	// write failures are logged by the sink and never abort the page
	_ = p.sink.AddOrUpdate(ctx, resource)

	p.result.merged = append(p.result.merged, resource.Key())
}

// scanBinary adds the dependent resource types declared by the configuration
// document a Binary carries.
func (p *entryProcessor) scanBinary(ctx context.Context, resource models.Resource) {
	var binary models.Binary
	if err := resource.Decode(&binary); err != nil {
		return
	}

	payload, err := binary.DecodedData()
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "entryProcessor.scanBinary").
			Str("id", binary.ID).
			Msg("binary payload is not base64")
		return
	}

	decoded := DecodeDependentTypes(payload)
	if decoded.Kind == DecodedUnrecognized {
		return
	}
	p.result.dependentTypes = append(p.result.dependentTypes, decoded.ResourceTypes...)
}

func (p *entryProcessor) collectListEntries(ctx context.Context, resource models.Resource) {
	var list models.ListResource
	if err := resource.Decode(&list); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "entryProcessor.collectListEntries").
			Str("id", resource.ID()).
			Msg("failed to decode List")
		return
	}

	for _, entry := range list.Entry {
		ref, err := entry.Item.Key()
		if err != nil {
			continue
		}
		p.result.listRefs = append(p.result.listRefs, ref)
	}
}
