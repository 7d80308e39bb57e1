// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"slices"

	"github.com/tidwall/gjson"

	"github.com/opensrp/fhircore-configsync/models"
)

// ConfigDecodeKind tags the outcome of decoding a configuration document
// for dependent resource types.
type ConfigDecodeKind int

const (
	DecodedUnrecognized ConfigDecodeKind = iota
	DecodedRegisterConfig
	DecodedProfileConfig
)

func (k ConfigDecodeKind) String() string {
	switch k {
	case DecodedRegisterConfig:
		return "register"
	case DecodedProfileConfig:
		return "profile"
	default:
		return "unrecognized"
	}
}

// DependentTypes is the tagged result of DecodeDependentTypes.
type DependentTypes struct {
	Kind          ConfigDecodeKind
	ResourceTypes []string
}

// maxResourceConfigDepth bounds the relatedResources walk.
const maxResourceConfigDepth = 32

// DecodeDependentTypes probes payload for a register or profile
// configuration and returns the distinct, sorted resource types declared by
// its fhirResource tree. Anything else decodes as DecodedUnrecognized with
// no types.
func DecodeDependentTypes(payload []byte) DependentTypes {
	if !gjson.ValidBytes(payload) {
		return DependentTypes{Kind: DecodedUnrecognized}
	}

	doc := gjson.ParseBytes(payload)

	var kind ConfigDecodeKind
	switch doc.Get("configType").String() {
	case models.ConfigTypeRegister.Name:
		kind = DecodedRegisterConfig
	case models.ConfigTypeProfile.Name:
		kind = DecodedProfileConfig
	default:
		return DependentTypes{Kind: DecodedUnrecognized}
	}

	fhirResource := doc.Get("fhirResource")
	if !fhirResource.IsObject() {
		return DependentTypes{Kind: DecodedUnrecognized}
	}

	types := make(map[string]struct{})
	w := resourceConfigWalker{types: types}
	w.walk(fhirResource.Get("baseResource"), nil, 0)
	for _, related := range fhirResource.Get("relatedResources").Array() {
		w.walk(related, nil, 0)
	}

	out := make([]string, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	slices.Sort(out)

	return DependentTypes{Kind: kind, ResourceTypes: out}
}

type resourceConfigWalker struct {
	types map[string]struct{}
}

// walk collects node.resource and descends into node.relatedResources. A
// node whose id repeats one of its ancestors is not descended into.
func (w resourceConfigWalker) walk(node gjson.Result, ancestors []string, depth int) {
	if !node.IsObject() || depth > maxResourceConfigDepth {
		return
	}

	if resource := node.Get("resource").String(); resource != "" {
		w.types[resource] = struct{}{}
	}

	id := node.Get("id").String()
	if id != "" {
		if slices.Contains(ancestors, id) {
			return
		}
		ancestors = append(ancestors, id)
	}

	for _, child := range node.Get("relatedResources").Array() {
		w.walk(child, ancestors[:len(ancestors):len(ancestors)], depth+1)
	}
}
