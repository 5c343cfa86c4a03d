package common

import (
	"github.com/minio/sha256-simd"
)

// HashSize is the output length of Hash256.
const HashSize = sha256.Size

// Hash256 computes the SHA-256 digest over the concatenation of its inputs.
func Hash256(data ...[]byte) [HashSize]byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	var digest [HashSize]byte
	copy(digest[:], h.Sum(nil))
	return digest
}
