// Package gskeys contains the group public key of a join issuer and its
// fixed-width wire encoding.
package gskeys

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/privacybydesign/gsjoin/curve"
	"github.com/privacybydesign/gsjoin/internal/common"
)

// PublicKeySize is the encoded size of a PublicKey: two G2 points followed
// by four scalars.
const PublicKeySize = 2*curve.G2Size + 4*curve.ScalarSize

// PublicKey represents an issuer's group public key.
//
// CX, SX, CY and SY are the issuer's proofs of knowledge of the discrete
// logarithms of X and Y. They are carried as raw bytes and not verified by
// this module, so values that are not reduced modulo the group order are
// preserved as well.
type PublicKey struct {
	X bn254.G2Affine // x·G2
	Y bn254.G2Affine // y·G2

	CX, SX SelfProofScalar
	CY, SY SelfProofScalar
}

// SelfProofScalar is a big-endian scalar of the issuer's self-proof.
type SelfProofScalar [curve.ScalarSize]byte

// NewPublicKeyFromBytes decodes a binary public key of exactly PublicKeySize bytes.
func NewPublicKeyFromBytes(bts []byte) (*PublicKey, error) {
	pubk := &PublicKey{}
	if err := pubk.UnmarshalBinary(bts); err != nil {
		return nil, err
	}
	return pubk, nil
}

// NewPublicKeyFromHex decodes a hex encoded public key. Surrounding
// whitespace is ignored.
func NewPublicKeyFromHex(s string) (*PublicKey, error) {
	bts, err := hex.DecodeString(string(bytes.TrimSpace([]byte(s))))
	if err != nil {
		return nil, errors.WrapPrefix(err, "public key is not valid hex", 0)
	}
	return NewPublicKeyFromBytes(bts)
}

// NewPublicKeyFromFile reads a hex encoded public key from a file.
func NewPublicKeyFromFile(filename string) (*PublicKey, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer common.Close(f)

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromHex(string(b))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (pubk *PublicKey) UnmarshalBinary(bts []byte) error {
	if err := curve.CheckLength(curve.KindPublicKey, bts, PublicKeySize); err != nil {
		return err
	}

	var (
		key PublicKey
		err error
	)
	if key.X, err = curve.DecodeG2(bts[:curve.G2Size]); err != nil {
		return err
	}
	if key.Y, err = curve.DecodeG2(bts[curve.G2Size : 2*curve.G2Size]); err != nil {
		return err
	}
	offset := 2 * curve.G2Size
	for _, s := range key.selfProof() {
		offset += copy(s[:], bts[offset:])
	}

	*pubk = key
	return nil
}

// Bytes returns the PublicKeySize-byte encoding of the key.
func (pubk *PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	curve.EncodeG2(b, &pubk.X)
	curve.EncodeG2(b[curve.G2Size:], &pubk.Y)
	offset := 2 * curve.G2Size
	for _, s := range pubk.selfProof() {
		offset += copy(b[offset:], s[:])
	}
	return b
}

func (pubk *PublicKey) selfProof() []*SelfProofScalar {
	return []*SelfProofScalar{&pubk.CX, &pubk.SX, &pubk.CY, &pubk.SY}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (pubk *PublicKey) MarshalBinary() ([]byte, error) {
	return pubk.Bytes(), nil
}

// Equal reports whether both keys have the same encoding.
func (pubk *PublicKey) Equal(other *PublicKey) bool {
	return bytes.Equal(pubk.Bytes(), other.Bytes())
}

// Fingerprint returns the SHA2-256 multihash of the key's encoding. It
// identifies the key in logs and in join sessions.
func (pubk *PublicKey) Fingerprint() multihash.Multihash {
	mh, err := multihash.Sum(pubk.Bytes(), multihash.SHA2_256, -1)
	if err != nil {
		panic(err) // SHA2_256 is always registered
	}
	return mh
}

// WriteTo writes the hex encoded key followed by a newline.
func (pubk *PublicKey) WriteTo(writer io.Writer) (int64, error) {
	n, err := io.WriteString(writer, hex.EncodeToString(pubk.Bytes())+"\n")
	return int64(n), err
}

// WriteToFile writes the hex encoded key to a file. Unless forceOverwrite is
// set, an existing file is left untouched and an error is returned.
func (pubk *PublicKey) WriteToFile(filename string, forceOverwrite bool) (int64, error) {
	var f *os.File
	var err error
	if forceOverwrite {
		f, err = os.Create(filename)
	} else {
		f, err = os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	}
	if err != nil {
		return 0, err
	}
	defer common.Close(f)

	return pubk.WriteTo(f)
}
