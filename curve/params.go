package curve

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// FieldSize is the byte width of a base field coordinate.
	FieldSize = fp.Bytes
	// ScalarSize is the byte width of a scalar modulo the group order.
	ScalarSize = fr.Bytes

	// G1Size is the size of an encoded G1 point.
	G1Size = 2*FieldSize + 1
	// G2Size is the size of an encoded G2 point in compatibility form.
	G2Size = 4 * FieldSize
)

// Params holds the generators and group order of the pairing groups. A Params
// value is never modified after construction; share it by pointer.
type Params struct {
	G1    bn254.G1Affine
	G2    bn254.G2Affine
	Order *big.Int
}

// DefaultParams are the BN254 parameters, computed once at initialization.
var DefaultParams = newParams()

func newParams() *Params {
	_, _, g1, g2 := bn254.Generators()
	return &Params{
		G1:    g1,
		G2:    g2,
		Order: fr.Modulus(),
	}
}
