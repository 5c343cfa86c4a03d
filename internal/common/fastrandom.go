package common

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"io"
	"sync/atomic"

	"github.com/go-errors/errors"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"
)

// EntropySize is the number of bytes drawn from the operating system to seed
// a generator that has no caller-supplied seed.
const EntropySize = 128

var cprngInfo = []byte("gsjoin cprng v1")

// CPRNG is a simple thread-safe cryptographically secure pseudo-random number generator.
// Implemented with AES in counter mode with the seed as key and an
// atomic uint64 as counter.
type CPRNG struct {
	block   cipher.Block
	counter uint64
}

func NewCPRNG(seed *[32]byte) (*CPRNG, error) {
	c, err := aes.NewCipher(seed[:])
	if err != nil {
		return nil, err
	}
	return &CPRNG{
		block:   c,
		counter: 0,
	}, nil
}

// NewCPRNGFromBytes derives the AES key from seed material of any length
// using HKDF-SHA256. Equal inputs yield identical output streams.
func NewCPRNGFromBytes(material []byte) (*CPRNG, error) {
	var seed [32]byte
	kdf := hkdf.New(sha256.New, material, nil, cprngInfo)
	if _, err := io.ReadFull(kdf, seed[:]); err != nil {
		return nil, errors.WrapPrefix(err, "failed to expand cprng seed", 0)
	}
	return NewCPRNG(&seed)
}

// NewEntropyCPRNG seeds a generator from EntropySize bytes of operating
// system randomness.
func NewEntropyCPRNG() (*CPRNG, error) {
	entropy := make([]byte, EntropySize)
	if _, err := io.ReadFull(rand.Reader, entropy); err != nil {
		return nil, errors.WrapPrefix(err, "failed to read system entropy", 0)
	}
	defer Erase(entropy)
	return NewCPRNGFromBytes(entropy)
}

func (c *CPRNG) Read(buf []byte) (n int, err error) {
	var pt, ct [16]byte
	n = len(buf)
	if n == 0 {
		return
	}

	// Number of blocks required
	nBlocks := uint64(((len(buf) - 1) / 16) + 1)

	// Reserve nBlocks counter values; iv is the first of them.
	iv := atomic.AddUint64(&c.counter, nBlocks) - nBlocks
	for {
		binary.LittleEndian.PutUint64(pt[:], iv)
		iv++

		if len(buf) >= 16 {
			c.block.Encrypt(buf, pt[:])
			buf = buf[16:]
			continue
		}
		if len(buf) == 0 {
			break
		}

		c.block.Encrypt(ct[:], pt[:])
		copy(buf, ct[:len(buf)])
		break
	}
	return
}

// Erase overwrites b with zeros.
func Erase(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
