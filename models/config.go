// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConfigType names a kind of application configuration document. Multi
// config types may have several instances told apart by their configId.
type ConfigType struct {
	Name        string
	MultiConfig bool
}

// Known configuration types.
var (
	ConfigTypeApplication   = ConfigType{Name: "application"}
	ConfigTypeSync          = ConfigType{Name: "sync"}
	ConfigTypeNavigation    = ConfigType{Name: "navigation"}
	ConfigTypeMeasureReport = ConfigType{Name: "measureReport", MultiConfig: true}
	ConfigTypeRegister      = ConfigType{Name: "register", MultiConfig: true}
	ConfigTypeProfile       = ConfigType{Name: "profile", MultiConfig: true}
)

// ApplicationConfiguration is the root configuration of an application.
type ApplicationConfiguration struct {
	AppID              string   `json:"appId"`
	ConfigType         string   `json:"configType"`
	AppTitle           string   `json:"appTitle,omitempty"`
	Languages          []string `json:"languages,omitempty"`
	RemoteSyncPageSize int      `json:"remoteSyncPageSize,omitempty"`
}

// ResourceConfig describes one FHIR resource type a screen works with.
// RelatedResources form a tree.
type ResourceConfig struct {
	ID               string           `json:"id,omitempty"`
	Resource         string           `json:"resource"`
	RelatedResources []ResourceConfig `json:"relatedResources,omitempty"`
}

// FhirResourceConfig is the base resource of a register or profile together
// with the resources related to it.
type FhirResourceConfig struct {
	BaseResource     ResourceConfig   `json:"baseResource"`
	RelatedResources []ResourceConfig `json:"relatedResources,omitempty"`
}

// RegisterConfiguration configures a register (list) screen.
type RegisterConfiguration struct {
	AppID        string             `json:"appId"`
	ConfigType   string             `json:"configType"`
	ID           string             `json:"id"`
	FhirResource FhirResourceConfig `json:"fhirResource"`
}

// ProfileConfiguration configures a profile (detail) screen.
type ProfileConfiguration struct {
	AppID        string             `json:"appId"`
	ConfigType   string             `json:"configType"`
	ID           string             `json:"id"`
	FhirResource FhirResourceConfig `json:"fhirResource"`
}
