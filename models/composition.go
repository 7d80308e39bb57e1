// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/base64"
	"fmt"
)

// Identifier is a business identifier attached to a resource or reference.
type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Reference points at another resource by relative reference and,
// optionally, by business identifier.
type Reference struct {
	Reference  string      `json:"reference,omitempty"`
	Identifier *Identifier `json:"identifier,omitempty"`
}

// Key parses the relative reference into a ResourceKey.
func (r Reference) Key() (ResourceKey, error) {
	return ParseReference(r.Reference)
}

// IdentifierValue returns identifier.value or an empty string.
func (r Reference) IdentifierValue() string {
	if r.Identifier == nil {
		return ""
	}
	return r.Identifier.Value
}

// Composition is the application manifest: a tree of sections whose focus
// references name the configuration documents and reference resources the
// application needs.
type Composition struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id,omitempty"`
	Identifier   *Identifier `json:"identifier,omitempty"`
	Title        string      `json:"title,omitempty"`
	Section      []Section   `json:"section,omitempty"`
}

// Section is one node of the manifest tree.
type Section struct {
	Title   string      `json:"title,omitempty"`
	Focus   *Reference  `json:"focus,omitempty"`
	Entry   []Reference `json:"entry,omitempty"`
	Section []Section   `json:"section,omitempty"`
}

// ListResource is a FHIR List: an indirection whose entries reference the
// resources of interest.
type ListResource struct {
	ResourceType string      `json:"resourceType"`
	ID           string      `json:"id,omitempty"`
	Entry        []ListEntry `json:"entry,omitempty"`
}

// ListEntry is a single List member.
type ListEntry struct {
	Item Reference `json:"item"`
}

// Binary carries an opaque, base64-encoded payload such as a configuration
// document or an icon.
type Binary struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Data         string `json:"data,omitempty"`
}

// DecodedData returns the base64-decoded payload.
func (b Binary) DecodedData() ([]byte, error) {
	payload, err := base64.StdEncoding.DecodeString(b.Data)
	if err != nil {
		return nil, fmt.Errorf("decode binary %s data: %w", b.ID, err)
	}
	return payload, nil
}
