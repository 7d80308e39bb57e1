// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// FHIRContentType is the media type of FHIR JSON payloads.
const FHIRContentType = "application/fhir+json"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://fhir.example.org/fhir/Composition?identifier=app")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient whose requests accept FHIR JSON.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", FHIRContentType).
		SetHeader("Content-Type", FHIRContentType)

	return &HTTPClient{Client: client}
}
