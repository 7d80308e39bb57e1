// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Resource types the sync pipeline needs to recognise by name.
const (
	ResourceTypeBinary         = "Binary"
	ResourceTypeBundle         = "Bundle"
	ResourceTypeComposition    = "Composition"
	ResourceTypeList           = "List"
	ResourceTypeParameters     = "Parameters"
	ResourceTypeQuestionnaire  = "Questionnaire"
	ResourceTypeStructureMap   = "StructureMap"
	ResourceTypePlanDefinition = "PlanDefinition"
	ResourceTypeLibrary        = "Library"
	ResourceTypeMeasure        = "Measure"
	ResourceTypeBasic          = "Basic"
)

// ReferenceDelimiter separates the resource type from the logical id in a
// relative reference such as "Questionnaire/q-1".
const ReferenceDelimiter = "/"

// metadataResourceTypes lists the FHIR resource types that carry a logical
// name and a canonical URL (MetadataResource in the FHIR R4 class hierarchy).
var metadataResourceTypes = map[string]struct{}{
	"ActivityDefinition":        {},
	"CapabilityStatement":       {},
	"ChargeItemDefinition":      {},
	"CodeSystem":                {},
	"CompartmentDefinition":     {},
	"ConceptMap":                {},
	"EffectEvidenceSynthesis":   {},
	"EventDefinition":           {},
	"Evidence":                  {},
	"EvidenceVariable":          {},
	"ExampleScenario":           {},
	"GraphDefinition":           {},
	"ImplementationGuide":       {},
	"Library":                   {},
	"Measure":                   {},
	"MessageDefinition":         {},
	"NamingSystem":              {},
	"OperationDefinition":       {},
	"PlanDefinition":            {},
	"Questionnaire":             {},
	"ResearchDefinition":        {},
	"ResearchElementDefinition": {},
	"RiskEvidenceSynthesis":     {},
	"SearchParameter":           {},
	"StructureDefinition":       {},
	"StructureMap":              {},
	"TerminologyCapabilities":   {},
	"TestScript":                {},
	"ValueSet":                  {},
}

// IsMetadataResourceType reports whether resources of resourceType carry a
// logical name and a canonical URL.
func IsMetadataResourceType(resourceType string) bool {
	_, ok := metadataResourceTypes[resourceType]
	return ok
}

// ResourceKey addresses a resource by (resource-type, logical-id).
type ResourceKey struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// String returns the relative reference form "Type/id".
func (k ResourceKey) String() string {
	return k.Type + ReferenceDelimiter + k.ID
}

// ParseReference splits a relative reference ("Type/id", optionally followed
// by "/_history/<version>") into a ResourceKey. Absolute URLs are accepted,
// only the last type/id pair is used.
func ParseReference(reference string) (ResourceKey, error) {
	ref := strings.TrimSpace(reference)
	if idx := strings.Index(ref, "/_history"); idx >= 0 {
		ref = ref[:idx]
	}
	ref = strings.TrimRight(ref, ReferenceDelimiter)

	parts := strings.Split(ref, ReferenceDelimiter)
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return ResourceKey{}, fmt.Errorf("malformed reference %q", reference)
	}

	return ResourceKey{Type: parts[len(parts)-2], ID: parts[len(parts)-1]}, nil
}

// Resource is a FHIR resource kept in its generic JSON object form so that
// fields the pipeline does not model survive a fetch-merge round trip.
type Resource map[string]any

// NewResource converts a typed FHIR struct (Bundle, Binary, ...) into its
// generic form.
func NewResource(v any) (Resource, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode resource: %w", err)
	}

	var r Resource
	if err = json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	return r, nil
}

// ParseResource decodes raw JSON into a Resource.
func ParseResource(raw []byte) (Resource, error) {
	var r Resource
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode resource: %w", err)
	}
	if r.ResourceType() == "" {
		return nil, fmt.Errorf("decode resource: missing resourceType")
	}
	return r, nil
}

// ResourceType returns the "resourceType" discriminator.
func (r Resource) ResourceType() string {
	return r.str("resourceType")
}

// ID returns the logical id.
func (r Resource) ID() string {
	return r.str("id")
}

// SetID sets the logical id.
func (r Resource) SetID(id string) {
	r["id"] = id
}

// Name returns the logical name carried by metadata resources.
func (r Resource) Name() string {
	return r.str("name")
}

// URL returns the canonical URL carried by metadata resources.
func (r Resource) URL() string {
	return r.str("url")
}

// SetURL sets the canonical URL.
func (r Resource) SetURL(url string) {
	r["url"] = url
}

// Key returns the (type, id) address of the resource.
func (r Resource) Key() ResourceKey {
	return ResourceKey{Type: r.ResourceType(), ID: r.ID()}
}

// Reference returns the relative reference "Type/id".
func (r Resource) Reference() string {
	return r.Key().String()
}

// IsMetadata reports whether the resource is a metadata resource that has a
// logical name and is therefore eligible for the canonical index.
func (r Resource) IsMetadata() bool {
	return IsMetadataResourceType(r.ResourceType()) && r.Name() != ""
}

// LastUpdated returns meta.lastUpdated, or an empty string.
func (r Resource) LastUpdated() string {
	meta, ok := r["meta"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := meta["lastUpdated"].(string)
	return s
}

// SetLastUpdated stamps meta.lastUpdated, keeping other meta fields intact.
func (r Resource) SetLastUpdated(t time.Time) {
	meta, ok := r["meta"].(map[string]any)
	if !ok {
		meta = make(map[string]any)
		r["meta"] = meta
	}
	meta["lastUpdated"] = t.UTC().Format(time.RFC3339Nano)
}

// Decode unmarshals the resource into a typed struct.
func (r Resource) Decode(v any) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.ResourceType(), err)
	}
	if err = json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.ResourceType(), err)
	}
	return nil
}

// JSON returns the resource encoded as JSON.
func (r Resource) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Clone returns a deep copy of the resource.
func (r Resource) Clone() Resource {
	if r == nil {
		return nil
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	var c Resource
	if err = json.Unmarshal(payload, &c); err != nil {
		return nil
	}
	return c
}

func (r Resource) str(field string) string {
	s, _ := r[field].(string)
	return s
}
