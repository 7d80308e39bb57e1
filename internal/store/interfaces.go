// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store is the local persistence layer of the sync engine: a
// SQLite-backed document store of FHIR resources addressed by
// (resource type, logical id), the canonical index of metadata resources
// keyed by logical name, and the persisted sync scope.
package store

import (
	"context"

	"github.com/opensrp/fhircore-configsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ResourceRepository stores FHIR resources as JSON documents. Upsert is safe
// for concurrent callers; atomicity is per resource.
type ResourceRepository interface {
	// Get returns the resource or ErrResourceNotFound.
	Get(ctx context.Context, resourceType, id string) (models.Resource, error)
	// Search returns resources of query.ResourceType matching every filter,
	// in insertion order.
	Search(ctx context.Context, query models.SearchQuery) ([]models.Resource, error)
	// Upsert creates the resource or replaces the stored version.
	Upsert(ctx context.Context, resource models.Resource) error
}

// CanonicalIndexRepository keys metadata resources by logical name.
type CanonicalIndexRepository interface {
	// InstallCanonical writes or overwrites the entry for resource.Name().
	InstallCanonical(ctx context.Context, resource models.Resource) error
	// GetCanonical returns the resource installed under name or
	// ErrResourceNotFound.
	GetCanonical(ctx context.Context, name string) (models.Resource, error)
}

// SyncScopeRepository persists the resource types currently in sync scope.
type SyncScopeRepository interface {
	// SaveSyncScope replaces the stored scope with resourceTypes.
	SaveSyncScope(ctx context.Context, resourceTypes []string) error
	// SyncScope returns the stored scope sorted by name.
	SyncScope(ctx context.Context) ([]string, error)
}
