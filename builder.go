// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/sirupsen/logrus"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/gskeys"
	"github.com/privacybydesign/gsjoin/internal/common"
	"github.com/privacybydesign/gsjoin/zkproof"
)

// Secret is the user's membership secret gsk. It is created by StartJoin and
// consumed by FinishJoin, which erases it.
type Secret struct {
	gsk    fr.Element
	erased bool
}

// DecodeSecret parses a secret previously encoded with Bytes.
func DecodeSecret(b []byte) (*Secret, error) {
	gsk, err := curve.DecodeScalar(b)
	if err != nil {
		return nil, err
	}
	return &Secret{gsk: gsk}, nil
}

// Bytes returns the curve.ScalarSize-byte encoding of the secret. The caller
// is responsible for erasing the returned slice.
func (s *Secret) Bytes() []byte {
	return curve.ScalarBytes(&s.gsk)
}

// Erase overwrites the secret. An erased secret can no longer finish a join.
func (s *Secret) Erase() {
	s.gsk.SetZero()
	s.erased = true
}

// Erased reports whether Erase has been called.
func (s *Secret) Erased() bool {
	return s.erased
}

// String keeps the secret out of logs and formatted errors.
func (s *Secret) String() string {
	return "gsjoin.Secret(redacted)"
}

// JoinStart holds the result of StartJoin: the secret to keep until the
// issuer answers, and the request to send to the issuer.
type JoinStart struct {
	Secret  *Secret
	Request *JoinRequest
}

// StartJoin generates a fresh membership secret gsk and a join request
// consisting of Q = gsk·G and a proof of knowledge of gsk bound to the
// issuer's challenge. Exactly two scalars are drawn from rnd.
func StartJoin(params *curve.Params, rnd io.Reader, challenge []byte) (*JoinStart, error) {
	gsk, err := curve.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	q := curve.MulG1(&params.G1, &gsk)
	m := zkproof.MessageDigest(challenge)
	proof, err := zkproof.ProveKnowledge(rnd, &params.G1, &q, &gsk, &m)
	if err != nil {
		gsk.SetZero()
		return nil, err
	}

	Logger.Trace("join request created")
	return &JoinStart{
		Secret:  &Secret{gsk: gsk},
		Request: &JoinRequest{Q: q, Proof: *proof},
	}, nil
}

// FinishJoin validates the issuer's response to the join request made with
// gsk and returns the credential. It checks the proof that log_G(B) equals
// log_Q(D) for Q = gsk·G, and the pairing equations binding the credential to
// pk. The randomness of the pairing check is derived from gsk. Any failed
// check results in ErrJoinResponseValidation. gsk is erased when FinishJoin
// returns.
func FinishJoin(params *curve.Params, pk *gskeys.PublicKey, gsk *Secret, resp *JoinResponse) (*CredentialBundle, error) {
	if gsk.erased {
		return nil, ErrSecretErased
	}
	defer gsk.Erase()

	q := curve.MulG1(&params.G1, &gsk.gsk)
	seed := gsk.Bytes()
	rnd, err := common.NewCPRNGFromBytes(seed)
	common.Erase(seed)
	if err != nil {
		return nil, err
	}

	cred := &resp.Credential
	ok := resp.Proof.VerifyEquality(&params.G1, &q, &cred.B, &cred.D)
	if ok {
		if ok, err = verifyCredentialBatch(params, cred, pk, rnd); err != nil {
			return nil, err
		}
	}
	if Logger.IsLevelEnabled(logrus.DebugLevel) {
		Logger.WithFields(logrus.Fields{
			"pk":       pk.Fingerprint().B58String(),
			"accepted": ok,
		}).Debug("join response checked")
	}
	if !ok {
		return nil, ErrJoinResponseValidation
	}

	result := *cred
	return &result, nil
}

// Manager runs join protocols with its own random number generator. A Manager
// is not safe for concurrent use; independent Managers share no state.
type Manager struct {
	params *curve.Params
	rnd    io.Reader
}

// NewManager returns a Manager seeded with common.EntropySize bytes of
// operating system randomness.
func NewManager() (*Manager, error) {
	rnd, err := common.NewEntropyCPRNG()
	if err != nil {
		return nil, err
	}
	return &Manager{params: curve.DefaultParams, rnd: rnd}, nil
}

// NewManagerWithSeed returns a Manager whose generator is deterministically
// derived from seed. Managers with equal seeds produce equal join requests.
func NewManagerWithSeed(seed []byte) (*Manager, error) {
	rnd, err := common.NewCPRNGFromBytes(seed)
	if err != nil {
		return nil, err
	}
	return &Manager{params: curve.DefaultParams, rnd: rnd}, nil
}

// Params returns the curve parameters the Manager works with.
func (m *Manager) Params() *curve.Params {
	return m.params
}

// StartJoin calls StartJoin with the Manager's parameters and generator.
func (m *Manager) StartJoin(challenge []byte) (*JoinStart, error) {
	if Logger.IsLevelEnabled(logrus.TraceLevel) {
		Logger.WithField("challengeLen", len(challenge)).Trace("starting join")
	}
	return StartJoin(m.params, m.rnd, challenge)
}

// FinishJoin calls FinishJoin with the Manager's parameters.
func (m *Manager) FinishJoin(pk *gskeys.PublicKey, gsk *Secret, resp *JoinResponse) (*CredentialBundle, error) {
	return FinishJoin(m.params, pk, gsk, resp)
}
