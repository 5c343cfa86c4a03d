// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/gskeys"
	"github.com/privacybydesign/gsjoin/internal/common"
	"github.com/privacybydesign/gsjoin/internal/testissuer"
)

var params = curve.DefaultParams

type testIssuer struct {
	issuer *testissuer.Issuer
	pk     *gskeys.PublicKey
}

func testRNG(t *testing.T, seed string) *common.CPRNG {
	rng, err := common.NewCPRNGFromBytes([]byte(seed))
	require.NoError(t, err)
	return rng
}

func newTestIssuer(t *testing.T, seed string) *testIssuer {
	is, err := testissuer.New(testRNG(t, seed))
	require.NoError(t, err)
	return &testIssuer{issuer: is, pk: is.PublicKey}
}

func (ti *testIssuer) issue(t *testing.T, rnd io.Reader, req *JoinRequest) *JoinResponse {
	r, err := ti.issuer.Issue(rnd, &req.Q)
	require.NoError(t, err)
	return &JoinResponse{
		Credential: CredentialBundle{A: r.A, B: r.B, C: r.C, D: r.D},
		Proof:      r.Proof,
	}
}

// copySecret returns an independent copy of gsk, as FinishJoin erases its argument.
func copySecret(t *testing.T, gsk *Secret) *Secret {
	b := gsk.Bytes()
	defer common.Erase(b)
	s, err := DecodeSecret(b)
	require.NoError(t, err)
	return s
}

// failingReader fails the test when read.
type failingReader struct {
	t *testing.T
}

func (r failingReader) Read([]byte) (int, error) {
	r.t.Fatal("unexpected read from random source")
	return 0, io.ErrUnexpectedEOF
}

// countingReader counts the bytes read from r.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
