// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"

	"github.com/opensrp/fhircore-configsync/models"
)

// IconPrefix marks manifest identifiers of icon Binaries.
const IconPrefix = "ic_"

// configCarrierTypes hold application configuration documents.
var configCarrierTypes = map[string]struct{}{
	models.ResourceTypeBinary:     {},
	models.ResourceTypeParameters: {},
}

// referenceResourceTypes is the fixed allow-list of reference resource
// types a manifest may pull into local storage. It is not configurable.
var referenceResourceTypes = map[string]struct{}{
	models.ResourceTypeList:           {},
	models.ResourceTypeQuestionnaire:  {},
	models.ResourceTypeStructureMap:   {},
	models.ResourceTypePlanDefinition: {},
	models.ResourceTypeLibrary:        {},
	models.ResourceTypeMeasure:        {},
	models.ResourceTypeBasic:          {},
}

// ClassifySection classifies the focus of one manifest section. Sections
// without a focus, with a malformed reference or of a type outside both
// lists come back as FocusUnrecognized.
func ClassifySection(section models.Section) models.SectionFocus {
	if section.Focus == nil {
		return models.SectionFocus{Kind: models.FocusUnrecognized}
	}

	key, err := section.Focus.Key()
	if err != nil {
		return models.SectionFocus{Kind: models.FocusUnrecognized}
	}

	focus := models.SectionFocus{
		ResourceType:    key.Type,
		ID:              key.ID,
		IdentifierValue: section.Focus.IdentifierValue(),
	}

	switch {
	case strings.HasPrefix(focus.IdentifierValue, IconPrefix):
		focus.Kind = models.FocusIcon
	case isConfigCarrier(key.Type) && focus.IdentifierValue != "":
		focus.Kind = models.FocusConfig
	case isReferenceResource(key.Type):
		focus.Kind = models.FocusReference
	default:
		focus.Kind = models.FocusUnrecognized
	}

	return focus
}

// ClassifyManifest flattens the section tree breadth-first and classifies
// every section, dropping unrecognized ones. Order is the manifest order.
func ClassifyManifest(composition models.Composition) []models.SectionFocus {
	var out []models.SectionFocus

	queue := append([]models.Section(nil), composition.Section...)
	for len(queue) > 0 {
		section := queue[0]
		queue = queue[1:]
		queue = append(queue, section.Section...)

		focus := ClassifySection(section)
		if focus.Kind == models.FocusUnrecognized {
			continue
		}
		out = append(out, focus)
	}

	return out
}

// stageFor returns the queue stage a reference focus of resourceType is
// fetched in.
func stageFor(focus models.SectionFocus) models.QueueStage {
	switch {
	case focus.Kind == models.FocusConfig:
		return models.StageManifest
	case focus.ResourceType == models.ResourceTypeList:
		return models.StageListResolution
	default:
		return models.StageConfig
	}
}

func isConfigCarrier(resourceType string) bool {
	_, ok := configCarrierTypes[resourceType]
	return ok
}

func isReferenceResource(resourceType string) bool {
	_, ok := referenceResourceTypes[resourceType]
	return ok
}
