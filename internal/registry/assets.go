// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/opensrp/fhircore-configsync/internal/utils"
)

const (
	// CompositionAssetName is the file holding the manifest in an offline
	// asset tree.
	CompositionAssetName = "composition_config.json"

	configFileSuffix = "_config"
)

// Assets is the content of an offline asset tree.
type Assets struct {
	Composition []byte
	Configs     map[string]string
	Bundles     map[string]map[string]string
}

// LoadAssets walks fsys breadth-first from the appID directory and collects
// the manifest plus every "<key>_config.json" and "<key>_config.properties"
// document. Keys are camelCased; locale bundles keep their raw name.
func LoadAssets(fsys fs.FS, appID string) (*Assets, error) {
	root := path.Clean(appID)
	if _, err := fs.Stat(fsys, root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetsNotFound, appID)
		}
		return nil, fmt.Errorf("stat asset dir %s: %w", appID, err)
	}

	assets := &Assets{
		Configs: make(map[string]string),
		Bundles: make(map[string]map[string]string),
	}

	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("list asset dir %s: %w", dir, err)
		}

		for _, entry := range entries {
			name := path.Join(dir, entry.Name())
			if entry.IsDir() {
				queue = append(queue, name)
				continue
			}
			if err = assets.add(fsys, name); err != nil {
				return nil, err
			}
		}
	}

	if assets.Composition == nil {
		return nil, fmt.Errorf("%w: %s has no %s", ErrAssetsNotFound, appID, CompositionAssetName)
	}

	return assets, nil
}

func (a *Assets) add(fsys fs.FS, name string) error {
	base := path.Base(name)
	ext := path.Ext(base)
	if ext != ".json" && ext != ".properties" {
		return nil
	}

	stem := strings.TrimSuffix(base, ext)
	if !strings.HasSuffix(stem, configFileSuffix) {
		return nil
	}

	payload, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read asset %s: %w", name, err)
	}

	if base == CompositionAssetName {
		a.Composition = payload
		return nil
	}

	key := strings.TrimSuffix(stem, configFileSuffix)
	if IsLocaleBundle(key) {
		bundle, err := ParseLocaleBundle(payload)
		if err != nil {
			return fmt.Errorf("asset %s: %w", name, err)
		}
		a.Bundles[key] = bundle
		return nil
	}

	a.Configs[utils.CamelCase(key)] = string(payload)
	return nil
}
