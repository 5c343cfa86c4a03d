// Package cbor encodes and decodes the CBOR documents of this module, such as
// join sessions, on top of github.com/fxamacker/cbor/v2.
//
// Encoding follows the Core Deterministic Encoding of RFC 8949 section 4.2.1,
// so equal values always produce equal bytes. Decoding rejects duplicate map
// keys, indefinite lengths and tags. Strict decoding additionally rejects
// fields the destination type does not know.
package cbor

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// MaxContainerSize bounds the number of array elements and map pairs a
// decoder accepts.
const MaxContainerSize = 1024

var (
	encOptions = cbor.EncOptions{
		IndefLength:   cbor.IndefLengthForbidden,
		InfConvert:    cbor.InfConvertFloat16,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,
		TagsMd:        cbor.TagsForbidden,
	}

	decOptions = cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxContainerSize,
		MaxMapPairs:      MaxContainerSize,
		TagsMd:           cbor.TagsForbidden,
		TimeTag:          cbor.DecTagIgnored,
	}

	encMode       cbor.EncMode
	decMode       cbor.DecMode
	strictDecMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
	strict := decOptions
	strict.ExtraReturnErrors = cbor.ExtraDecErrorUnknownField
	if strictDecMode, err = strict.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal encodes src deterministically.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes data into dst, ignoring unknown fields.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}

// UnmarshalStrict decodes data into dst and fails on unknown fields.
func UnmarshalStrict(data []byte, dst interface{}) error {
	return strictDecMode.Unmarshal(data, dst)
}

// NewEncoder returns an encoder writing deterministic CBOR to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a strict decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return strictDecMode.NewDecoder(r)
}
