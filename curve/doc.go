// Package curve holds the BN254 constants used by the join protocol and the
// fixed-width wire encoding of scalars and of G1 and G2 points.
//
// All elements have a statically known size derived from ScalarSize (L):
//
//	scalar          L bytes, big-endian
//	G1 point        2L+1 bytes, format byte followed by affine x and y
//	G2 point        4L bytes, x.A0 x.A1 y.A0 y.A1 without format byte
//
// Decoders never truncate or pad. A buffer of the wrong length yields a
// *LengthError, a buffer of the right length holding an invalid element an
// *EncodingError.
package curve
