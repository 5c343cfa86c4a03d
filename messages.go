// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/zkproof"
)

// Encoded sizes of the join protocol messages.
const (
	JoinRequestSize      = curve.G1Size + zkproof.ProofSize
	CredentialBundleSize = 4 * curve.G1Size
	JoinResponseSize     = CredentialBundleSize + zkproof.ProofSize
)

// JoinRequest is sent by the user to the issuer in the first step of the join
// protocol: the commitment Q = gsk·G and a proof of knowledge of gsk bound to
// the issuer's challenge.
type JoinRequest struct {
	Q     bn254.G1Affine
	Proof zkproof.Proof
}

// ParseJoinRequest decodes a JoinRequestSize-byte join request.
func ParseJoinRequest(b []byte) (*JoinRequest, error) {
	req := &JoinRequest{}
	if err := req.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return req, nil
}

// Bytes returns Q followed by the proof's c and s.
func (r *JoinRequest) Bytes() []byte {
	b := make([]byte, JoinRequestSize)
	curve.EncodeG1(b, &r.Q)
	r.Proof.Encode(b[curve.G1Size:])
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *JoinRequest) MarshalBinary() ([]byte, error) {
	return r.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *JoinRequest) UnmarshalBinary(b []byte) error {
	if err := curve.CheckLength(curve.KindJoinRequest, b, JoinRequestSize); err != nil {
		return err
	}
	q, err := curve.DecodeG1(b[:curve.G1Size])
	if err != nil {
		return err
	}
	proof, err := zkproof.DecodeProof(b[curve.G1Size:])
	if err != nil {
		return err
	}
	r.Q, r.Proof = q, proof
	return nil
}

// Verify checks the proof of knowledge in the request against the challenge
// it is supposed to answer.
func (r *JoinRequest) Verify(params *curve.Params, challenge []byte) bool {
	m := zkproof.MessageDigest(challenge)
	return r.Proof.VerifyKnowledge(&params.G1, &r.Q, &m)
}

// CredentialBundle is the group membership credential (A, B, C, D) issued
// to the user.
type CredentialBundle struct {
	A, B, C, D bn254.G1Affine
}

// ParseCredentialBundle decodes a CredentialBundleSize-byte credential.
func ParseCredentialBundle(b []byte) (*CredentialBundle, error) {
	cred := &CredentialBundle{}
	if err := cred.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return cred, nil
}

func (c *CredentialBundle) points() []*bn254.G1Affine {
	return []*bn254.G1Affine{&c.A, &c.B, &c.C, &c.D}
}

// Bytes returns A, B, C and D, in that order.
func (c *CredentialBundle) Bytes() []byte {
	b := make([]byte, CredentialBundleSize)
	c.encode(b)
	return b
}

func (c *CredentialBundle) encode(dst []byte) {
	for i, p := range c.points() {
		curve.EncodeG1(dst[i*curve.G1Size:], p)
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *CredentialBundle) MarshalBinary() ([]byte, error) {
	return c.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *CredentialBundle) UnmarshalBinary(b []byte) error {
	if err := curve.CheckLength(curve.KindCredential, b, CredentialBundleSize); err != nil {
		return err
	}
	return c.decode(b)
}

func (c *CredentialBundle) decode(b []byte) error {
	var cred CredentialBundle
	for i, p := range cred.points() {
		var err error
		if *p, err = curve.DecodeG1(b[i*curve.G1Size : (i+1)*curve.G1Size]); err != nil {
			return err
		}
	}
	*c = cred
	return nil
}

// Equal reports whether both credentials consist of the same points.
func (c *CredentialBundle) Equal(other *CredentialBundle) bool {
	return c.A.Equal(&other.A) && c.B.Equal(&other.B) && c.C.Equal(&other.C) && c.D.Equal(&other.D)
}

// JoinResponse is the issuer's answer to a JoinRequest: the credential and
// a proof that log_G(B) equals log_Q(D).
type JoinResponse struct {
	Credential CredentialBundle
	Proof      zkproof.Proof
}

// ParseJoinResponse decodes a JoinResponseSize-byte join response.
func ParseJoinResponse(b []byte) (*JoinResponse, error) {
	resp := &JoinResponse{}
	if err := resp.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return resp, nil
}

// Bytes returns the credential followed by the proof's c and s.
func (r *JoinResponse) Bytes() []byte {
	b := make([]byte, JoinResponseSize)
	r.Credential.encode(b)
	r.Proof.Encode(b[CredentialBundleSize:])
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r *JoinResponse) MarshalBinary() ([]byte, error) {
	return r.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (r *JoinResponse) UnmarshalBinary(b []byte) error {
	if err := curve.CheckLength(curve.KindJoinResponse, b, JoinResponseSize); err != nil {
		return err
	}
	var resp JoinResponse
	if err := resp.Credential.decode(b[:CredentialBundleSize]); err != nil {
		return err
	}
	proof, err := zkproof.DecodeProof(b[CredentialBundleSize:])
	if err != nil {
		return err
	}
	resp.Proof = proof
	*r = resp
	return nil
}
