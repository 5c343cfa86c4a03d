package zkproof

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/privacybydesign/gsjoin/curve"
)

// ProveKnowledge proves knowledge of x such that y = x·g, bound to message.
// The challenge is H(message || Y || G || T) with T = r·g.
func ProveKnowledge(rnd io.Reader, g, y *bn254.G1Affine, x *fr.Element, message *[MessageSize]byte) (*Proof, error) {
	r, err := curve.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	defer r.SetZero()

	t := curve.MulG1(g, &r)
	c := hashToScalar(message[:], y, g, &t)
	return &Proof{C: c, S: response(&c, x, &r)}, nil
}

// VerifyKnowledge checks a proof created by ProveKnowledge.
func (p *Proof) VerifyKnowledge(g, y *bn254.G1Affine, message *[MessageSize]byte) bool {
	t := commitmentFromResponse(g, y, &p.S, &p.C)
	c := hashToScalar(message[:], y, g, &t)
	return c.Equal(&p.C)
}
