package zkproof

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/privacybydesign/gsjoin/curve"
)

// ProveEquality proves that y = x·a and z = x·b for the same x. The
// challenge is H(Y || Z || A || B || A' || B') with A' = r·a, B' = r·b.
func ProveEquality(rnd io.Reader, a, b, y, z *bn254.G1Affine, x *fr.Element) (*Proof, error) {
	r, err := curve.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	defer r.SetZero()

	ar := curve.MulG1(a, &r)
	br := curve.MulG1(b, &r)
	c := hashToScalar(nil, y, z, a, b, &ar, &br)
	return &Proof{C: c, S: response(&c, x, &r)}, nil
}

// VerifyEquality checks that the prover knew a single exponent x with
// y = x·a and z = x·b.
func (p *Proof) VerifyEquality(a, b, y, z *bn254.G1Affine) bool {
	ar := commitmentFromResponse(a, y, &p.S, &p.C)
	br := commitmentFromResponse(b, z, &p.S, &p.C)
	c := hashToScalar(nil, y, z, a, b, &ar, &br)
	return c.Equal(&p.C)
}
