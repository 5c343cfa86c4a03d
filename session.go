// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"bytes"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/gsjoin/cbor"
	"github.com/privacybydesign/gsjoin/gskeys"
	"github.com/privacybydesign/gsjoin/internal/common"
)

// JoinSessionVersion is the current version of the JoinSession format.
const JoinSessionVersion = 1

// JoinSession holds the state a user needs to keep between StartJoin and
// FinishJoin, so that the round trip to the issuer can span process
// restarts. It contains the membership secret and must be stored as such.
type JoinSession struct {
	Version int    `cbor:"v"`
	Secret  []byte `cbor:"gsk"`
	Request []byte `cbor:"req"`
	KeyID   []byte `cbor:"pk,omitempty"` // fingerprint of the expected group public key
}

// NewJoinSession captures start. If pk is not nil, the session can only be
// opened with that key.
func NewJoinSession(start *JoinStart, pk *gskeys.PublicKey) *JoinSession {
	s := &JoinSession{
		Version: JoinSessionVersion,
		Secret:  start.Secret.Bytes(),
		Request: start.Request.Bytes(),
	}
	if pk != nil {
		s.KeyID = pk.Fingerprint()
	}
	return s
}

// ParseJoinSession decodes a CBOR encoded join session.
func ParseJoinSession(b []byte) (*JoinSession, error) {
	s := &JoinSession{}
	if err := cbor.UnmarshalStrict(b, s); err != nil {
		return nil, errors.WrapPrefix(err, "failed to decode join session", 0)
	}
	if s.Version != JoinSessionVersion {
		s.Erase()
		return nil, ErrSessionVersion
	}
	return s, nil
}

// MarshalBinary encodes the session as deterministic CBOR.
func (s *JoinSession) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(s)
}

// Open returns the membership secret and join request of the session, after
// checking that the session was started for pk. A session without key
// binding opens with any key.
func (s *JoinSession) Open(pk *gskeys.PublicKey) (*Secret, *JoinRequest, error) {
	if s.Version != JoinSessionVersion {
		return nil, nil, ErrSessionVersion
	}
	if len(s.KeyID) != 0 && !bytes.Equal(s.KeyID, pk.Fingerprint()) {
		return nil, nil, ErrSessionKeyMismatch
	}
	gsk, err := DecodeSecret(s.Secret)
	if err != nil {
		return nil, nil, err
	}
	req, err := ParseJoinRequest(s.Request)
	if err != nil {
		gsk.Erase()
		return nil, nil, err
	}
	return gsk, req, nil
}

// Erase overwrites the secret held by the session.
func (s *JoinSession) Erase() {
	common.Erase(s.Secret)
}
