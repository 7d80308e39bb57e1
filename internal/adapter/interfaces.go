// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport to the remote FHIR server.
//
// The primary abstraction is [FHIRDataSource], which decouples the sync
// pipeline from HTTP. The package ships a resty implementation
// ([NewFHIRDataSource]) that retries transient failures with exponential
// backoff.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrHostUnreachable] when no response
// was received at all).
package adapter

import (
	"context"

	"github.com/opensrp/fhircore-configsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/fhir_data_source_mock.go -package=mock

// Gateway mode header understood by the FHIR gateway.
const (
	GatewayModeHeader      = "FHIR-Gateway-Mode"
	GatewayModeListEntries = "list-entries"
)

// FHIRDataSource reads resources from the remote FHIR server. Paths are
// relative to the configured server address; absolute URLs (pagination
// links) are used as-is.
type FHIRDataSource interface {
	// Search issues GET path and decodes the returned Bundle.
	Search(ctx context.Context, path string) (*models.Bundle, error)

	// SearchWithGatewayMode issues GET path with the gateway mode header
	// set to mode, instructing the gateway to resolve List entries
	// server-side.
	SearchWithGatewayMode(ctx context.Context, path, mode string) (*models.Bundle, error)

	// PostBundle submits a batch bundle to the server root and decodes the
	// batch-response bundle.
	PostBundle(ctx context.Context, bundle *models.Bundle) (*models.Bundle, error)
}
