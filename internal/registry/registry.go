// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry holds the application configuration in memory: the raw
// configuration documents resolved from the manifest, the locale string
// bundles, and a cache of decoded, locale-substituted configuration objects.
package registry

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/opensrp/fhircore-configsync/internal/logger"
	"github.com/opensrp/fhircore-configsync/models"
)

// ConfigRegistry is the configuration cache. It is written by the sync
// orchestrator and read by the rest of the application.
type ConfigRegistry struct {
	mu sync.RWMutex

	configsJSON   map[string]string
	localeBundles map[string]map[string]string
	cache         map[string]any
	locale        string

	logger *logger.Logger
}

// NewConfigRegistry returns an empty registry using locale for {{ }}
// substitution.
func NewConfigRegistry(locale string, logger *logger.Logger) *ConfigRegistry {
	return &ConfigRegistry{
		configsJSON:   make(map[string]string),
		localeBundles: make(map[string]map[string]string),
		cache:         make(map[string]any),
		locale:        locale,
		logger:        logger,
	}
}

// Replace swaps in the raw documents and locale bundles of a completed
// manifest resolution and drops every decoded entry.
func (r *ConfigRegistry) Replace(configs map[string]string, bundles map[string]map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.configsJSON = maps.Clone(configs)
	if r.configsJSON == nil {
		r.configsJSON = make(map[string]string)
	}
	r.localeBundles = maps.Clone(bundles)
	if r.localeBundles == nil {
		r.localeBundles = make(map[string]map[string]string)
	}
	clear(r.cache)
}

// Clear drops every decoded entry. Raw documents are kept.
func (r *ConfigRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

// SetLocale switches the active language and drops every decoded entry,
// since decoded objects carry substituted strings.
func (r *ConfigRegistry) SetLocale(locale string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.locale == locale {
		return
	}
	r.locale = locale
	clear(r.cache)
}

// Locale returns the active language.
func (r *ConfigRegistry) Locale() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locale
}

// Keys returns the registered raw document keys, sorted.
func (r *ConfigRegistry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.configsJSON))
}

// IsLoaded reports whether any raw document is registered.
func (r *ConfigRegistry) IsLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.configsJSON) > 0
}

// RawConfig returns the raw document stored under key without any
// substitution.
func (r *ConfigRegistry) RawConfig(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.configsJSON[key]
	return raw, ok
}

// Get returns the decoded object cached under key. A non-empty params map
// always misses: parameter interpolation is never cached.
func (r *ConfigRegistry) Get(key string, params map[string]string) (any, bool) {
	if len(params) > 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.cache[key]
	return v, ok
}

// Put caches decoded under key.
func (r *ConfigRegistry) Put(key string, decoded any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = decoded
}

// RetrieveRaw returns the document stored under key with {{ }} locale
// placeholders and @{ } parameters substituted.
func (r *ConfigRegistry) RetrieveRaw(key string, params map[string]string) (string, error) {
	r.mu.RLock()
	raw, ok := r.configsJSON[key]
	bundle := r.resolveBundle(r.locale)
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrConfigNotFound, key)
	}

	return interpolateParams(interpolateLocale(raw, bundle), params), nil
}

// CacheKey returns the key under which a configuration of configType is
// stored: the type name, or configID for multi config types.
func CacheKey(configType models.ConfigType, configID string) string {
	if configType.MultiConfig && configID != "" {
		return configID
	}
	return configType.Name
}

// RetrieveConfiguration decodes the configuration of configType (and
// configID for multi config types) into T, caching the result when params
// is empty.
func RetrieveConfiguration[T any](r *ConfigRegistry, configType models.ConfigType, configID string, params map[string]string) (T, error) {
	var zero T
	key := CacheKey(configType, configID)

	if cached, ok := r.Get(key, params); ok {
		if v, ok := cached.(T); ok {
			return v, nil
		}
	}

	raw, err := r.RetrieveRaw(key, params)
	if err != nil {
		return zero, err
	}

	var decoded T
	if err = json.Unmarshal([]byte(raw), &decoded); err != nil {
		r.logger.Err(err).
			Str("func", "registry.RetrieveConfiguration").
			Str("config_key", key).
			Msg("failed to decode configuration")
		return zero, fmt.Errorf("%w: %s: %w", ErrConfigDecode, key, err)
	}

	if len(params) == 0 {
		r.Put(key, decoded)
	}

	return decoded, nil
}
