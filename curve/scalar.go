package curve

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/go-errors/errors"
)

// EncodeScalar writes s into dst[:ScalarSize] as a big-endian integer.
func EncodeScalar(dst []byte, s *fr.Element) {
	b := s.Bytes()
	copy(dst[:ScalarSize], b[:])
}

// ScalarBytes returns the ScalarSize-byte encoding of s.
func ScalarBytes(s *fr.Element) []byte {
	b := s.Bytes()
	return b[:]
}

// DecodeScalar parses a ScalarSize-byte big-endian integer. Values not below
// the group order are rejected rather than reduced.
func DecodeScalar(b []byte) (fr.Element, error) {
	var s fr.Element
	if err := CheckLength(KindScalar, b, ScalarSize); err != nil {
		return s, err
	}
	if err := s.SetBytesCanonical(b); err != nil {
		return s, &EncodingError{Kind: KindScalar, Reason: "not reduced modulo the group order"}
	}
	return s, nil
}

// RandomScalar draws a scalar in [0, n) from rnd. It reads 2*ScalarSize bytes
// and reduces them modulo n, so the bias is negligible.
func RandomScalar(rnd io.Reader) (fr.Element, error) {
	var (
		s   fr.Element
		buf [2 * ScalarSize]byte
	)
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return s, errors.WrapPrefix(err, "failed to draw random scalar", 0)
	}
	s.SetBytes(buf[:])
	for i := range buf {
		buf[i] = 0
	}
	return s, nil
}
