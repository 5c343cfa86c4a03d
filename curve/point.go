package curve

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Format bytes of an encoded G1 point.
const (
	tagInfinity     byte = 0x00
	tagUncompressed byte = 0x04
)

// EncodeG1 writes p into dst[:G1Size]. The identity is written as the
// infinity tag followed by zeros.
func EncodeG1(dst []byte, p *bn254.G1Affine) {
	dst = dst[:G1Size]
	if p.IsInfinity() {
		for i := range dst {
			dst[i] = 0
		}
		dst[0] = tagInfinity
		return
	}
	dst[0] = tagUncompressed
	putFp(dst[1:], &p.X)
	putFp(dst[1+FieldSize:], &p.Y)
}

// G1Bytes returns the G1Size-byte encoding of p.
func G1Bytes(p *bn254.G1Affine) []byte {
	b := make([]byte, G1Size)
	EncodeG1(b, p)
	return b
}

// DecodeG1 parses an encoded G1 point and checks that it lies on the curve.
func DecodeG1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if err := CheckLength(KindG1, b, G1Size); err != nil {
		return p, err
	}

	switch b[0] {
	case tagInfinity:
		if !allZero(b[1:]) {
			return p, &EncodingError{Kind: KindG1, Reason: "identity with non-zero coordinates"}
		}
		return p, nil
	case tagUncompressed:
	default:
		return p, &EncodingError{Kind: KindG1, Reason: fmt.Sprintf("unsupported format byte 0x%02x", b[0])}
	}

	if err := p.X.SetBytesCanonical(b[1 : 1+FieldSize]); err != nil {
		return p, &EncodingError{Kind: KindG1, Reason: "x coordinate not reduced"}
	}
	if err := p.Y.SetBytesCanonical(b[1+FieldSize:]); err != nil {
		return p, &EncodingError{Kind: KindG1, Reason: "y coordinate not reduced"}
	}
	// (0, 0) is how gnark-crypto spells the identity; it is not a curve point.
	// G1 has cofactor one, so being on the curve is sufficient.
	if p.IsInfinity() || !p.IsOnCurve() {
		return p, &EncodingError{Kind: KindG1, Reason: "point is not on the curve"}
	}
	return p, nil
}

// EncodeG2 writes p into dst[:G2Size] in compatibility form: the four raw
// coordinate words x.A0, x.A1, y.A0, y.A1. The identity is all zeros.
func EncodeG2(dst []byte, p *bn254.G2Affine) {
	dst = dst[:G2Size]
	putFp(dst, &p.X.A0)
	putFp(dst[FieldSize:], &p.X.A1)
	putFp(dst[2*FieldSize:], &p.Y.A0)
	putFp(dst[3*FieldSize:], &p.Y.A1)
}

// G2Bytes returns the G2Size-byte compatibility encoding of p.
func G2Bytes(p *bn254.G2Affine) []byte {
	b := make([]byte, G2Size)
	EncodeG2(b, p)
	return b
}

// DecodeG2 parses a compatibility-encoded G2 point and checks that it lies in
// the prime order subgroup.
func DecodeG2(b []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if err := CheckLength(KindG2, b, G2Size); err != nil {
		return p, err
	}
	if allZero(b) {
		return p, nil
	}

	words := []*fp.Element{&p.X.A0, &p.X.A1, &p.Y.A0, &p.Y.A1}
	for i, w := range words {
		if err := w.SetBytesCanonical(b[i*FieldSize : (i+1)*FieldSize]); err != nil {
			return p, &EncodingError{Kind: KindG2, Reason: fmt.Sprintf("coordinate word %d not reduced", i)}
		}
	}
	if p.IsInfinity() || !p.IsOnCurve() {
		return p, &EncodingError{Kind: KindG2, Reason: "point is not on the twist"}
	}
	if !p.IsInSubGroup() {
		return p, &EncodingError{Kind: KindG2, Reason: "point is not in the prime order subgroup"}
	}
	return p, nil
}

// MulG1 returns s·p.
func MulG1(p *bn254.G1Affine, s *fr.Element) bn254.G1Affine {
	var (
		r bn254.G1Affine
		k big.Int
	)
	r.ScalarMultiplication(p, s.BigInt(&k))
	return r
}

// MulG2 returns s·p.
func MulG2(p *bn254.G2Affine, s *fr.Element) bn254.G2Affine {
	var (
		r bn254.G2Affine
		k big.Int
	)
	r.ScalarMultiplication(p, s.BigInt(&k))
	return r
}

// AddG1 returns a + b.
func AddG1(a, b *bn254.G1Affine) bn254.G1Affine {
	var r bn254.G1Affine
	r.Add(a, b)
	return r
}

func putFp(dst []byte, e *fp.Element) {
	b := e.Bytes()
	copy(dst[:FieldSize], b[:])
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
