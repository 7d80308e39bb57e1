// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the configuration sync
// engine. It defines the Worker interface and a Workers aggregate that
// starts and stops every registered worker together.
package workers

// Worker is a background job with an explicit lifecycle.
//
// Run must not block: implementations spawn their own goroutines and
// return. Stop blocks until those goroutines have exited.
type Worker interface {
	Run()
	Stop()
}
