package zkproof

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/internal/common"
)

const (
	// MessageSize is the length of the message a proof of knowledge is bound to.
	MessageSize = common.HashSize
	// ProofSize is the encoded size of a Proof: the challenge and the response.
	ProofSize = 2 * curve.ScalarSize
)

// Proof is a challenge/response pair (c, s).
type Proof struct {
	C fr.Element
	S fr.Element
}

// MessageDigest hashes arbitrary bytes, such as an issuer nonce, into the
// fixed-length message of a proof of knowledge.
func MessageDigest(b []byte) [MessageSize]byte {
	return common.Hash256(b)
}

// Encode writes c and s into dst[:ProofSize].
func (p *Proof) Encode(dst []byte) {
	curve.EncodeScalar(dst, &p.C)
	curve.EncodeScalar(dst[curve.ScalarSize:], &p.S)
}

// DecodeProof parses the two consecutive scalars c and s.
func DecodeProof(b []byte) (Proof, error) {
	var (
		p   Proof
		err error
	)
	split := min(len(b), curve.ScalarSize)
	if p.C, err = curve.DecodeScalar(b[:split]); err != nil {
		return p, err
	}
	if p.S, err = curve.DecodeScalar(b[split:]); err != nil {
		return p, err
	}
	return p, nil
}

// Equal reports whether p and q hold the same challenge and response.
func (p *Proof) Equal(q *Proof) bool {
	return p.C.Equal(&q.C) && p.S.Equal(&q.S)
}

// hashToScalar computes H(prefix || points...) mod n.
func hashToScalar(prefix []byte, points ...*bn254.G1Affine) fr.Element {
	parts := make([][]byte, 0, len(points)+1)
	parts = append(parts, prefix)
	for _, pt := range points {
		parts = append(parts, curve.G1Bytes(pt))
	}
	digest := common.Hash256(parts...)

	var c fr.Element
	c.SetBigInt(new(big.Int).SetBytes(digest[:]))
	return c
}

// response computes s = c·x + r mod n.
func response(c, x, r *fr.Element) fr.Element {
	var s fr.Element
	s.Mul(c, x)
	s.Add(&s, r)
	return s
}

// commitmentFromResponse computes s·base - c·value.
func commitmentFromResponse(base, value *bn254.G1Affine, s, c *fr.Element) bn254.G1Affine {
	var cn fr.Element
	cn.Neg(c)
	bs := curve.MulG1(base, s)
	vc := curve.MulG1(value, &cn)
	return curve.AddG1(&bs, &vc)
}
