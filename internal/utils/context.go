// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across the sync
// engine: context keys, id generation, the HTTP client wrapper, key
// normalisation and slice chunking.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// RunIDCtxKey is the key used to store the id of the current sync run.
var RunIDCtxKey = contextKey("runID")

// WithRunID returns a copy of ctx carrying runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDCtxKey, runID)
}

// GetRunIDFromContext retrieves the sync run id from the context.
//
// ok is false when the value is missing or has an unexpected type.
func GetRunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(RunIDCtxKey).(string)
	return runID, ok
}
