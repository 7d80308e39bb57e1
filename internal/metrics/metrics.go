// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics provides OpenTelemetry instruments for configuration sync
// runs.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SyncMetricsMeterName is the name used for the sync metrics meter
const SyncMetricsMeterName = "github.com/opensrp/fhircore-configsync/sync"

// SyncMetrics holds the OpenTelemetry instruments of the sync pipeline. A nil
// *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	requests      metric.Int64Counter
	chunkFailures metric.Int64Counter
	merged        metric.Int64Counter
	mergeFailures metric.Int64Counter
	runDuration   metric.Float64Histogram
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	requests, err := meter.Int64Counter(
		"configsync_requests_total",
		metric.WithDescription("Outbound requests issued per stage and request shape"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	chunkFailures, err := meter.Int64Counter(
		"configsync_chunk_failures_total",
		metric.WithDescription("Request chunks abandoned after a fetch failure"),
		metric.WithUnit("{chunk}"),
	)
	if err != nil {
		return nil, err
	}

	merged, err := meter.Int64Counter(
		"configsync_resources_merged_total",
		metric.WithDescription("Resources upserted into local storage"),
		metric.WithUnit("{resource}"),
	)
	if err != nil {
		return nil, err
	}

	mergeFailures, err := meter.Int64Counter(
		"configsync_merge_failures_total",
		metric.WithDescription("Resources that could not be written to local storage"),
		metric.WithUnit("{resource}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"configsync_run_duration_seconds",
		metric.WithDescription("Duration of configuration sync runs in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		requests:      requests,
		chunkFailures: chunkFailures,
		merged:        merged,
		mergeFailures: mergeFailures,
		runDuration:   runDuration,
	}, nil
}

// RecordRequest counts one outbound request of the given stage and shape.
func (m *SyncMetrics) RecordRequest(ctx context.Context, stage, shape string) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("shape", shape),
	))
}

// RecordChunkFailure counts one abandoned chunk.
func (m *SyncMetrics) RecordChunkFailure(ctx context.Context, stage, resourceType string) {
	if m == nil || m.chunkFailures == nil {
		return
	}
	m.chunkFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("resource_type", resourceType),
	))
}

// RecordMerge counts one merged resource, or one failed write when ok is
// false.
func (m *SyncMetrics) RecordMerge(ctx context.Context, resourceType string, ok bool) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("resource_type", resourceType))
	if ok {
		if m.merged != nil {
			m.merged.Add(ctx, 1, attrs)
		}
		return
	}
	if m.mergeFailures != nil {
		m.mergeFailures.Add(ctx, 1, attrs)
	}
}

// RecordRunDuration records the duration of a sync run
func (m *SyncMetrics) RecordRunDuration(ctx context.Context, source string, duration time.Duration, success bool) {
	if m == nil || m.runDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("source", source),
		attribute.Bool("success", success),
	}

	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
