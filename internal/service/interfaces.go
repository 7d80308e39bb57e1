// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the Composition-driven configuration sync
// pipeline: manifest classification, the staged request queue, request
// shaping, pagination, local merge and the orchestrator tying them together.
package service

import (
	"context"
	"time"

	"github.com/opensrp/fhircore-configsync/models"
)

// ConfigSyncService resolves the application manifest and keeps local
// storage and the configuration registry in step with it.
//
// Every Load/Fetch method reports whether the configurations were loaded.
// A false result always comes with an error; the registry is left untouched
// in that case.
type ConfigSyncService interface {
	// FetchRemoteConfigurations fetches the Composition of appID from the
	// FHIR server, syncs every resource it references stage by stage and
	// swaps the resolved configurations into the registry.
	FetchRemoteConfigurations(ctx context.Context, appID string, progress models.ProgressFunc) (bool, error)

	// LoadConfigurations resolves the manifest from resources already in
	// local storage.
	LoadConfigurations(ctx context.Context, appID string) (bool, error)

	// LoadLocalConfigurations resolves the manifest from the offline asset
	// directory.
	LoadLocalConfigurations(ctx context.Context, appID string) (bool, error)

	// SetLocale switches the language used for {{ }} substitution.
	SetLocale(locale string)

	// SyncScope returns the resource types persisted by the last successful
	// remote resolution.
	SyncScope(ctx context.Context) ([]string, error)
}

// ConfigSyncJob runs FetchRemoteConfigurations periodically in the
// background.
type ConfigSyncJob interface {
	// Start launches the job, stopping a previous one first. A non-positive
	// interval defaults to 15 minutes.
	Start(ctx context.Context, appID string, interval time.Duration)
	// Stop cancels the job and waits for it to exit.
	Stop()
}

// RequestShaper turns a RequestBatch into the outbound requests of one
// deployment mode. Every shape must lead to the same set of merged
// resources.
type RequestShaper interface {
	// Name identifies the shape in logs and metrics.
	Name() string
	// Shape builds the requests for batch, in id order.
	Shape(batch models.RequestBatch) []models.ShapedRequest
}

// MergeSink persists fetched resources.
type MergeSink interface {
	// AddOrUpdate upserts resource and, for named metadata resources,
	// installs it into the canonical index.
	AddOrUpdate(ctx context.Context, resource models.Resource) error
}
