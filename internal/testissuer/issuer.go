// Package testissuer issues join credentials the way an honest issuer
// would. It exists for tests; it does not check join requests and keeps its
// keys in memory.
package testissuer

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/gskeys"
	"github.com/privacybydesign/gsjoin/zkproof"
)

// Issuer holds the secret exponents x and y of a group public key.
type Issuer struct {
	x, y      fr.Element
	PublicKey *gskeys.PublicKey
}

// Response is a credential (A, B, C, D) with the equality proof for B and D.
type Response struct {
	A, B, C, D bn254.G1Affine
	Proof      zkproof.Proof
}

// New draws an issuer key pair from rnd. The self-proof fields of the public
// key are filled with random scalars.
func New(rnd io.Reader) (*Issuer, error) {
	var (
		is      Issuer
		scalars [6]fr.Element
		err     error
	)
	for i := range scalars {
		if scalars[i], err = curve.RandomScalar(rnd); err != nil {
			return nil, err
		}
	}
	g2 := &curve.DefaultParams.G2
	is.x, is.y = scalars[0], scalars[1]
	is.PublicKey = &gskeys.PublicKey{
		X:  curve.MulG2(g2, &is.x),
		Y:  curve.MulG2(g2, &is.y),
		CX: scalars[2].Bytes(),
		SX: scalars[3].Bytes(),
		CY: scalars[4].Bytes(),
		SY: scalars[5].Bytes(),
	}
	return &is, nil
}

// Issue answers the commitment q with A = a·G, B = y·A, D = (a·y)·q and
// C = x·(A + D), and proves that B and D share the exponent a·y relative to
// G and q.
func (is *Issuer) Issue(rnd io.Reader, q *bn254.G1Affine) (*Response, error) {
	g := &curve.DefaultParams.G1
	a, err := curve.RandomScalar(rnd)
	if err != nil {
		return nil, err
	}
	var ay fr.Element
	ay.Mul(&a, &is.y)

	resp := &Response{}
	resp.A = curve.MulG1(g, &a)
	resp.B = curve.MulG1(&resp.A, &is.y)
	resp.D = curve.MulG1(q, &ay)
	ad := curve.AddG1(&resp.A, &resp.D)
	resp.C = curve.MulG1(&ad, &is.x)

	proof, err := zkproof.ProveEquality(rnd, g, q, &resp.B, &resp.D, &ay)
	if err != nil {
		return nil, err
	}
	resp.Proof = *proof
	return resp, nil
}

// Bytes encodes the response in join response wire format.
func (r *Response) Bytes() []byte {
	b := make([]byte, 0, 4*curve.G1Size+zkproof.ProofSize)
	for _, p := range []*bn254.G1Affine{&r.A, &r.B, &r.C, &r.D} {
		b = append(b, curve.G1Bytes(p)...)
	}
	proof := make([]byte, zkproof.ProofSize)
	r.Proof.Encode(proof)
	return append(b, proof...)
}
