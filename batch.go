// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gsjoin

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/gskeys"
)

// verifyCredentialBatch checks the two pairing equations
//
//	e(A, Y) = e(B, G2)
//	e(A + D, X) = e(C, G2)
//
// at once, by raising them to random exponents e1 and e2 drawn from rnd and
// multiplying the results: e(e1·A, Y)·e(-e1·B - e2·C, G2)·e(e2·(A+D), X) = 1.
// A credential with A at infinity is rejected before anything is drawn.
func verifyCredentialBatch(params *curve.Params, cred *CredentialBundle, pk *gskeys.PublicKey, rnd io.Reader) (bool, error) {
	if cred.A.IsInfinity() {
		return false, nil
	}

	e1, err := curve.RandomScalar(rnd)
	if err != nil {
		return false, err
	}
	e2, err := curve.RandomScalar(rnd)
	if err != nil {
		return false, err
	}
	var ne1, ne2 fr.Element
	ne1.Neg(&e1)
	ne2.Neg(&e2)

	aa := curve.MulG1(&cred.A, &e1)
	b1 := curve.MulG1(&cred.B, &ne1)
	c2 := curve.MulG1(&cred.C, &ne2)
	bb := curve.AddG1(&b1, &c2)
	ad := curve.AddG1(&cred.A, &cred.D)
	cc := curve.MulG1(&ad, &e2)

	ml, err := bn254.MillerLoop(
		[]bn254.G1Affine{aa, bb, cc},
		[]bn254.G2Affine{pk.Y, params.G2, pk.X},
	)
	if err != nil {
		return false, err
	}
	w := bn254.FinalExponentiation(&ml)

	var one bn254.GT
	one.SetOne()
	return w.Equal(&one), nil
}
