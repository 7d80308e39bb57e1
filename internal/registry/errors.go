// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import "errors"

var (
	// ErrConfigNotFound is returned when no raw document is registered for
	// the requested key.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrConfigDecode is returned when a raw document cannot be decoded into
	// the requested type.
	ErrConfigDecode = errors.New("configuration cannot be decoded")

	// ErrAssetsNotFound is returned when the offline asset directory of an
	// application does not exist or holds no manifest.
	ErrAssetsNotFound = errors.New("configuration assets not found")
)
