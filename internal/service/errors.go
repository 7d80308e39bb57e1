// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrManifestUnavailable = errors.New("application manifest unavailable")
	ErrConfigsNotLoaded    = errors.New("configurations not loaded")
	ErrSyncCancelled       = errors.New("configuration sync cancelled")
	ErrEmptyAppID          = errors.New("application id is empty")
)
