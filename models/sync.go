// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// QueueStage orders the work of one synchronization run. A later stage only
// starts once every earlier stage has drained.
type QueueStage int

const (
	StageListResolution QueueStage = iota
	StageManifest
	StageConfig
	StageListItemExpansion
	StageDone
)

// Stages lists the drainable stages in execution order.
var Stages = []QueueStage{
	StageListResolution,
	StageManifest,
	StageConfig,
	StageListItemExpansion,
}

func (s QueueStage) String() string {
	switch s {
	case StageListResolution:
		return "list_resolution"
	case StageManifest:
		return "manifest"
	case StageConfig:
		return "config"
	case StageListItemExpansion:
		return "list_item_expansion"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Next returns the stage following s; StageDone is terminal.
func (s QueueStage) Next() QueueStage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}

// RequestBatch is a bounded group of ids of one resource type fetched
// together.
type RequestBatch struct {
	Stage        QueueStage
	ResourceType string
	IDs          []string
}

// FocusKind tags the outcome of classifying a manifest section.
type FocusKind int

const (
	FocusUnrecognized FocusKind = iota
	// FocusConfig is an application configuration carrier.
	FocusConfig
	// FocusReference is an allow-listed reference resource.
	FocusReference
	// FocusIcon is an icon Binary fetched through the bulk icon path.
	FocusIcon
)

func (k FocusKind) String() string {
	switch k {
	case FocusConfig:
		return "config"
	case FocusReference:
		return "reference"
	case FocusIcon:
		return "icon"
	default:
		return "unrecognized"
	}
}

// SectionFocus is the classified target of one manifest section.
type SectionFocus struct {
	Kind            FocusKind
	ResourceType    string
	ID              string
	IdentifierValue string
}

// Key returns the (type, id) address of the focus.
func (f SectionFocus) Key() ResourceKey {
	return ResourceKey{Type: f.ResourceType, ID: f.ID}
}

// Progress is a progress event emitted while a stage drains.
type Progress struct {
	Stage     QueueStage
	Total     int
	Completed int
}

// ProgressFunc receives progress events. It may be nil.
type ProgressFunc func(Progress)

// SearchFilter matches resources whose JSON value at Path equals Value.
type SearchFilter struct {
	Path  string
	Value string
}

// SearchQuery selects local resources of one type.
type SearchQuery struct {
	ResourceType string
	Filters      []SearchFilter
	Limit        uint64
}

// ShapedRequest is one outbound request built by a request shaper: either a
// search (GET with Path) or a batch (POST with Body).
type ShapedRequest struct {
	Method       string
	Path         string
	Headers      map[string]string
	Body         *Bundle
	ResourceType string
	IDs          []string
}
