// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/gskeys"
	"github.com/privacybydesign/gsjoin/zkproof"
)

var testChallenge = []byte("challenge")

func startJoin(t *testing.T, seed []byte) *JoinStart {
	m, err := NewManagerWithSeed(seed)
	require.NoError(t, err)
	start, err := m.StartJoin(testChallenge)
	require.NoError(t, err)
	return start
}

func TestJoin(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	m, err := NewManagerWithSeed([]byte{0})
	require.NoError(t, err)

	start, err := m.StartJoin(testChallenge)
	require.NoError(t, err)
	require.True(t, start.Request.Verify(params, testChallenge), "join request does not verify")

	// Send the request over the wire and back
	req, err := ParseJoinRequest(start.Request.Bytes())
	require.NoError(t, err)
	resp, err := ParseJoinResponse(issuer.issue(t, testRNG(t, "issuance"), req).Bytes())
	require.NoError(t, err)

	cred, err := m.FinishJoin(issuer.pk, start.Secret, resp)
	require.NoError(t, err)
	assert.True(t, cred.Equal(&resp.Credential))
	assert.Equal(t, resp.Credential.Bytes(), cred.Bytes())
	assert.True(t, start.Secret.Erased())
}

func TestStartJoinDeterministic(t *testing.T) {
	first := startJoin(t, []byte{0})
	second := startJoin(t, []byte{0})
	assert.Equal(t, first.Secret.Bytes(), second.Secret.Bytes())
	assert.Equal(t, first.Request.Bytes(), second.Request.Bytes())

	other := startJoin(t, []byte{1})
	assert.NotEqual(t, first.Secret.Bytes(), other.Secret.Bytes())
	assert.NotEqual(t, first.Request.Bytes(), other.Request.Bytes())
}

func TestStartJoinFreshSecrets(t *testing.T) {
	m, err := NewManagerWithSeed([]byte{0})
	require.NoError(t, err)
	first, err := m.StartJoin(testChallenge)
	require.NoError(t, err)
	second, err := m.StartJoin(testChallenge)
	require.NoError(t, err)
	assert.NotEqual(t, first.Secret.Bytes(), second.Secret.Bytes())
}

func TestStartJoinDrawsTwoScalars(t *testing.T) {
	rnd := &countingReader{r: testRNG(t, "count")}
	_, err := StartJoin(params, rnd, testChallenge)
	require.NoError(t, err)
	assert.Equal(t, 2*2*curve.ScalarSize, rnd.n)
}

func TestStartJoinCommitment(t *testing.T) {
	start := startJoin(t, []byte("commitment"))
	q := curve.MulG1(&params.G1, &start.Secret.gsk)
	assert.True(t, q.Equal(&start.Request.Q))

	m := zkproof.MessageDigest(testChallenge)
	assert.True(t, start.Request.Proof.VerifyKnowledge(&params.G1, &q, &m))
	assert.False(t, start.Request.Verify(params, []byte("another challenge")))
}

func TestNewManager(t *testing.T) {
	m1, err := NewManager()
	require.NoError(t, err)
	m2, err := NewManager()
	require.NoError(t, err)
	assert.Same(t, curve.DefaultParams, m1.Params())

	s1, err := m1.StartJoin(testChallenge)
	require.NoError(t, err)
	s2, err := m2.StartJoin(testChallenge)
	require.NoError(t, err)
	assert.NotEqual(t, s1.Secret.Bytes(), s2.Secret.Bytes())
	assert.True(t, s1.Request.Verify(params, testChallenge))
}

func TestFinishJoinErasesSecret(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("erase"))
	resp := issuer.issue(t, testRNG(t, "issuance"), start.Request)

	_, err := FinishJoin(params, issuer.pk, start.Secret, resp)
	require.NoError(t, err)
	assert.True(t, start.Secret.Erased())
	assert.Equal(t, make([]byte, curve.ScalarSize), start.Secret.Bytes())

	_, err = FinishJoin(params, issuer.pk, start.Secret, resp)
	assert.ErrorIs(t, err, ErrSecretErased)

	// A rejected response erases the secret as well
	other := startJoin(t, []byte("erase again"))
	_, err = FinishJoin(params, newTestIssuer(t, "other").pk, other.Secret, resp)
	assert.ErrorIs(t, err, ErrJoinResponseValidation)
	assert.True(t, other.Secret.Erased())
}

func TestFinishJoinTamper(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("tamper"))
	valid := issuer.issue(t, testRNG(t, "issuance"), start.Request).Bytes()
	require.Len(t, valid, JoinResponseSize)

	for i := range valid {
		tampered := append([]byte(nil), valid...)
		tampered[i] ^= 0x01

		resp, err := ParseJoinResponse(tampered)
		if err != nil {
			// Rejected while decoding
			continue
		}
		_, err = FinishJoin(params, issuer.pk, copySecret(t, start.Secret), resp)
		require.ErrorIs(t, err, ErrJoinResponseValidation, "tampered byte %d accepted", i)
	}

	_, err := FinishJoin(params, issuer.pk, copySecret(t, start.Secret), mustParseResponse(t, valid))
	require.NoError(t, err)
}

func mustParseResponse(t *testing.T, b []byte) *JoinResponse {
	resp, err := ParseJoinResponse(b)
	require.NoError(t, err)
	return resp
}

func TestFinishJoinWrongKeyOrSecret(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("wrong"))
	resp := issuer.issue(t, testRNG(t, "issuance"), start.Request)

	_, err := FinishJoin(params, newTestIssuer(t, "other issuer").pk, copySecret(t, start.Secret), resp)
	assert.ErrorIs(t, err, ErrJoinResponseValidation)

	other := startJoin(t, []byte("other user"))
	_, err = FinishJoin(params, issuer.pk, other.Secret, resp)
	assert.ErrorIs(t, err, ErrJoinResponseValidation)
}

func TestFinishJoinSingleError(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("single"))

	// Valid credential, broken equality proof
	badProof := issuer.issue(t, testRNG(t, "issuance"), start.Request)
	badProof.Proof.S.SetOne()
	_, proofErr := FinishJoin(params, issuer.pk, copySecret(t, start.Secret), badProof)

	// Valid equality proof, C does not satisfy the pairing equation
	badPairing := issuer.issue(t, testRNG(t, "issuance"), start.Request)
	badPairing.Credential.C = curve.AddG1(&badPairing.Credential.C, &params.G1)
	_, pairingErr := FinishJoin(params, issuer.pk, copySecret(t, start.Secret), badPairing)

	require.ErrorIs(t, proofErr, ErrJoinResponseValidation)
	require.ErrorIs(t, pairingErr, ErrJoinResponseValidation)
	assert.Equal(t, proofErr.Error(), pairingErr.Error())
}

func TestFinishJoinDegenerateCredential(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("degenerate"))

	// All points at infinity, with a valid equality proof for exponent zero
	var (
		inf  bn254.G1Affine
		zero fr.Element
	)
	proof, err := zkproof.ProveEquality(testRNG(t, "proof"), &params.G1, &start.Request.Q, &inf, &inf, &zero)
	require.NoError(t, err)
	resp := &JoinResponse{Proof: *proof}
	require.True(t, resp.Proof.VerifyEquality(&params.G1, &start.Request.Q, &inf, &inf))

	_, err = FinishJoin(params, issuer.pk, start.Secret, mustParseResponse(t, resp.Bytes()))
	assert.ErrorIs(t, err, ErrJoinResponseValidation)
}

func TestSecret(t *testing.T) {
	start := startJoin(t, []byte("secret"))
	enc := start.Secret.Bytes()
	require.Len(t, enc, curve.ScalarSize)

	decoded, err := DecodeSecret(enc)
	require.NoError(t, err)
	assert.Equal(t, enc, decoded.Bytes())
	assert.NotContains(t, fmt.Sprintf("%v", decoded), hex.EncodeToString(enc))

	_, err = DecodeSecret(enc[1:])
	var lerr *curve.LengthError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, curve.KindScalar, lerr.Kind)
}

// Fixed outputs for seed {0} and challenge "challenge", and for the test
// issuer seeded with "issuer" answering with randomness seeded "issuance".
const (
	vectorSecret  = "2183f3e9abcdcf083817355512481a8d40959a95dcd748bc430366312d7a80cc"
	vectorRequest = "042203f24696d6265448fc714a1979f63bdfb9a728f185f22f5ba71f6357b1cbc0190094a24ba06917e04e013c77d8c626d7acccba833f2190fc93f00f16219ead" +
		"074b3bcd991054e4dfc3c0a33b3b22dd11f155fb760782574069759cd45fb469" +
		"02d5dc6903d74ed481ec7605e780ea4c08c11ede893cb5cfe5c16e4ca8a7e2d0"
	vectorPublicKey = "261ff27c5727044a8da965f3f4c77e4cdc60ce1083dd23c2d8ca97578824d29d00e84c49bbceed79ffc78bae4485fd8bdc1a0a17c11b592926412ab72153d901" +
		"22da535b688199cb4211c34d960248a8cace7c65d0fc61c01a463b4230825b082ce6a6cadca696afe570d4751b0b914c13d5362a4e7f676c9e687ed4341ba2ce" +
		"0de6d57ca348dc165351017316532da0faa5a281e9359d631e87bb6590d7e1471e47fdc678c45ce8788ee8b342bc5e3e0333787dcedfe6c49a0ac137fc596b82" +
		"1ec0e20a686e8fdc5f9654df3a8f343ced0bb55cff79833edfc23ec417a965e31f88d948128e20e95fe161bcd47f9c20a3157c46756633dea27e21a1317d4a64" +
		"1bc0818620909e06d5e5de47227e28ffe35a3e7ea8f8d38985c7400f9fdb686b1ae546e2e32f71937b9f33428f4f4512f867da4e956a918638b7afe164feebe7" +
		"18d608d7e31b8dc478a0d38c809f806ab1a222a7a8f00b334e460e0542edcb4c02aca4d98bd2a269e56d22fb08392b63db946136c0aeb68e13dec88c7bfde346"
	vectorCredential = "040542ea788e03f2c78fd57c8a2eb13244a466332fd7ebd292f1737ee7db946ceb1deb8fdef5a8608cd8b053087f9123301dd7b9f2aea1c1781afbc8c71bfc51fd" +
		"0413f4ecdcf749492846fe0ebd41093bb52b9788539e2a53c8933783e2d26c61eb22e1a57be0bf1060b4a079dfe079f81c2f67569934dcbecf9d1e9ee4b934a3d9" +
		"04210454c1af825ea8724e91e8e26b0803ccc55fa94c2db5c6c0344c097094fc80163ce3edc578ceb8ea5b37540152da962cde54aac7216edbbab94894a91601" +
		"0e04162d483cd47424d84758ec60c67dbf14903bab88adb14daab523a97ee2ab346704d04cab5d709de0269d33749b15c215f13e1d01272814ad89205947f36b3ef4"
	vectorResponse = vectorCredential +
		"1f3e02aa158393f338a0979f3b7387c52904085beeb5907de7f1333bfc4ab0b3" +
		"19cc077e53a89b14741ea5cb92cafff8f0464e241a6c6b6e62d2fa09127dd7ff"
)

func decodeHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestStartJoinVector(t *testing.T) {
	start := startJoin(t, []byte{0})
	assert.Equal(t, vectorSecret, hex.EncodeToString(start.Secret.Bytes()))
	assert.Equal(t, vectorRequest, hex.EncodeToString(start.Request.Bytes()))
}

func TestTestIssuerVector(t *testing.T) {
	issuer := newTestIssuer(t, "issuer")
	assert.Equal(t, vectorPublicKey, hex.EncodeToString(issuer.pk.Bytes()))

	req, err := ParseJoinRequest(decodeHex(t, vectorRequest))
	require.NoError(t, err)
	resp := issuer.issue(t, testRNG(t, "issuance"), req)
	assert.Equal(t, vectorResponse, hex.EncodeToString(resp.Bytes()))
}

func TestFinishJoinVector(t *testing.T) {
	gsk, err := DecodeSecret(decodeHex(t, vectorSecret))
	require.NoError(t, err)
	pk, err := gskeys.NewPublicKeyFromBytes(decodeHex(t, vectorPublicKey))
	require.NoError(t, err)
	resp, err := ParseJoinResponse(decodeHex(t, vectorResponse))
	require.NoError(t, err)

	m, err := NewManagerWithSeed([]byte{0})
	require.NoError(t, err)
	cred, err := m.FinishJoin(pk, gsk, resp)
	require.NoError(t, err)
	assert.Equal(t, vectorCredential, hex.EncodeToString(cred.Bytes()))
}

func TestFinishJoinLogging(t *testing.T) {
	hook := logtest.NewLocal(Logger)
	level := Logger.GetLevel()
	defer Logger.SetLevel(level)

	issuer := newTestIssuer(t, "issuer")
	start := startJoin(t, []byte("logging"))
	resp := issuer.issue(t, testRNG(t, "issuance"), start.Request)

	Logger.SetLevel(logrus.InfoLevel)
	hook.Reset()
	_, err := FinishJoin(params, issuer.pk, copySecret(t, start.Secret), resp)
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())

	Logger.SetLevel(logrus.DebugLevel)
	_, err = FinishJoin(params, issuer.pk, copySecret(t, start.Secret), resp)
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, issuer.pk.Fingerprint().B58String(), entry.Data["pk"])
	assert.Equal(t, true, entry.Data["accepted"])
	assert.NotContains(t, entry.Message, hex.EncodeToString(start.Secret.Bytes()))
}
