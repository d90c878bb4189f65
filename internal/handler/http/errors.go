// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoUserInContext is returned by protected handlers reached without
	// passing the auth middleware.
	ErrNoUserInContext = errors.New("no authenticated user in request context")
)

// Request level errors reported with 400, 404 or 429.
var (
	ErrInvalidJSON     = errors.New("Invalid JSON was passed")
	ErrRouteNotFound   = errors.New("Not Found")
	ErrTooManyRequests = errors.New("Too many requests")
)
