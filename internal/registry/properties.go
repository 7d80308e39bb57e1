// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"fmt"

	"github.com/magiconair/properties"
)

// ParseLocaleBundle decodes a Java-style .properties payload into a flat
// key/value map. ${...} expansion is disabled: translations are taken
// verbatim.
func ParseLocaleBundle(payload []byte) (map[string]string, error) {
	loader := properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}

	p, err := loader.LoadBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("parse locale bundle: %w", err)
	}

	return p.Map(), nil
}
