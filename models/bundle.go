// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// Bundle types used by the pipeline.
const (
	BundleTypeBatch         = "batch"
	BundleTypeBatchResponse = "batch-response"
	BundleTypeSearchSet     = "searchset"
)

// LinkRelationNext is the relation of the pagination link pointing at the
// following page of a searchset.
const LinkRelationNext = "next"

// Bundle is a container for a collection of resources: a search result page,
// an outbound batch request or a batch response.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

// BundleLink is a relation link of a bundle, e.g. the "next" page.
type BundleLink struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

// BundleEntry is one entry of a bundle. Resource is kept raw: in a batch
// response an entry may itself hold a searchset bundle.
type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Request  *BundleRequest  `json:"request,omitempty"`
	Response *BundleResponse `json:"response,omitempty"`
}

// BundleRequest is the sub-request carried by a batch entry.
type BundleRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// BundleResponse is the per-entry outcome in a batch response.
type BundleResponse struct {
	Status string `json:"status"`
}

// NewBatchBundle returns an empty batch bundle ready to receive GET entries.
func NewBatchBundle() *Bundle {
	return &Bundle{ResourceType: ResourceTypeBundle, Type: BundleTypeBatch}
}

// AddGet appends a GET sub-request for url to the batch.
func (b *Bundle) AddGet(url string) {
	b.Entry = append(b.Entry, BundleEntry{
		Request: &BundleRequest{Method: "GET", URL: url},
	})
}

// NextLink returns the URL of the "next" page, or an empty string when the
// bundle is the last page.
func (b *Bundle) NextLink() string {
	if b == nil {
		return ""
	}
	for _, link := range b.Link {
		if link.Relation == LinkRelationNext {
			return link.URL
		}
	}
	return ""
}

// ParseBundle decodes raw JSON into a Bundle.
func ParseBundle(raw []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
