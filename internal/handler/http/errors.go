// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// session token from a request. Callers can match against them with
// [errors.Is].
var (
	// ErrNoToken is returned when neither the "Authorization" header nor
	// the session cookie carries a token.
	ErrNoToken = errors.New("you are not logged in, please log in to get access")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two
	// space-separated parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains
	// the expected scheme prefix but the token value itself is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)
