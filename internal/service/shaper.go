// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/opensrp/fhircore-configsync/internal/adapter"
	"github.com/opensrp/fhircore-configsync/models"
)

// DefaultPageSize is the _count used by every search the pipeline issues.
const DefaultPageSize = 200

// Shape names.
const (
	ShapeBatched = "batched"
	ShapeGateway = "gateway"
)

// NewRequestShaper returns the gateway shaper when proxyMode is on and the
// batched shaper otherwise.
func NewRequestShaper(proxyMode bool) RequestShaper {
	if proxyMode {
		return gatewayShaper{}
	}
	return batchedShaper{}
}

// batchedShaper issues one POST batch bundle per chunk. List entry expansion
// uses one _id search per resource instead.
type batchedShaper struct{}

func (batchedShaper) Name() string { return ShapeBatched }

func (batchedShaper) Shape(batch models.RequestBatch) []models.ShapedRequest {
	if len(batch.IDs) == 0 {
		return nil
	}

	if batch.Stage == models.StageListItemExpansion {
		out := make([]models.ShapedRequest, 0, len(batch.IDs))
		for _, id := range batch.IDs {
			out = append(out, models.ShapedRequest{
				Method:       http.MethodGet,
				Path:         searchPath(batch.ResourceType, []string{id}),
				ResourceType: batch.ResourceType,
				IDs:          []string{id},
			})
		}
		return out
	}

	bundle := models.NewBatchBundle()
	for _, id := range batch.IDs {
		bundle.AddGet(models.ResourceKey{Type: batch.ResourceType, ID: id}.String())
	}

	return []models.ShapedRequest{{
		Method:       http.MethodPost,
		Body:         bundle,
		ResourceType: batch.ResourceType,
		IDs:          batch.IDs,
	}}
}

// gatewayShaper issues one comma-joined _id search per chunk carrying the
// list-entries gateway header.
type gatewayShaper struct{}

func (gatewayShaper) Name() string { return ShapeGateway }

func (gatewayShaper) Shape(batch models.RequestBatch) []models.ShapedRequest {
	if len(batch.IDs) == 0 {
		return nil
	}

	return []models.ShapedRequest{{
		Method:       http.MethodGet,
		Path:         searchPath(batch.ResourceType, batch.IDs),
		Headers:      map[string]string{adapter.GatewayModeHeader: adapter.GatewayModeListEntries},
		ResourceType: batch.ResourceType,
		IDs:          batch.IDs,
	}}
}

// searchPath builds "Type?_id=a,b&_count=200". Commas are kept literal.
func searchPath(resourceType string, ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.QueryEscape(id)
	}

	return resourceType + "?_id=" + strings.Join(escaped, ",") +
		"&_count=" + strconv.Itoa(DefaultPageSize)
}
