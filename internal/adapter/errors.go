// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrHostUnreachable is returned when no HTTP response was received
	// (DNS failure, refused connection, timeout).
	ErrHostUnreachable = errors.New("host unreachable")

	// ErrUnexpectedResponse is returned when the server answered 2xx with a
	// body that is not a FHIR Bundle.
	ErrUnexpectedResponse = errors.New("unexpected response")
)
