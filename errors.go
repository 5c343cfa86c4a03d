// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"github.com/go-errors/errors"
)

var (
	// ErrJoinResponseValidation is returned by FinishJoin when the issuer's
	// response does not check out, whichever check failed.
	ErrJoinResponseValidation = errors.New("join response validation failed")

	// ErrSessionKeyMismatch is returned when a join session is opened with a
	// different group public key than it was started with.
	ErrSessionKeyMismatch = errors.New("join session belongs to another group public key")
	// ErrSessionVersion is returned for join sessions of an unknown version.
	ErrSessionVersion = errors.New("unsupported join session version")
)

// ErrSecretErased is returned when a membership secret is used after
// FinishJoin has consumed it.
var ErrSecretErased = errors.New("membership secret has already been used")
