// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrResourceNotFound is returned when no resource matches the requested
	// (resource type, id) or canonical name.
	ErrResourceNotFound = errors.New("resource was not found")

	// ErrInvalidResource is returned when a resource lacks a resourceType or
	// a logical id and therefore cannot be addressed.
	ErrInvalidResource = errors.New("resource has no type or id")

	// ErrCanonicalNameMissing is returned when a resource without a logical
	// name is offered to the canonical index.
	ErrCanonicalNameMissing = errors.New("resource has no canonical name")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction
	// fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
