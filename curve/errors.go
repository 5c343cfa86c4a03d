package curve

import "fmt"

// Kind identifies a wire type in decoding errors.
type Kind int

const (
	KindScalar Kind = iota
	KindG1
	KindG2
	KindJoinRequest
	KindCredential
	KindJoinResponse
	KindPublicKey
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindG1:
		return "G1 point"
	case KindG2:
		return "G2 point"
	case KindJoinRequest:
		return "join request"
	case KindCredential:
		return "credential bundle"
	case KindJoinResponse:
		return "join response"
	case KindPublicKey:
		return "group public key"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// LengthError is returned when an input buffer does not have the exact size
// of the wire type it is decoded into.
type LengthError struct {
	Kind     Kind
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s should be %d bytes, got %d", e.Kind, e.Expected, e.Actual)
}

// CheckLength returns a *LengthError if len(b) differs from expected.
func CheckLength(kind Kind, b []byte, expected int) error {
	if len(b) != expected {
		return &LengthError{Kind: kind, Expected: expected, Actual: len(b)}
	}
	return nil
}

// EncodingError is returned when a correctly sized buffer does not hold a
// valid element.
type EncodingError struct {
	Kind   Kind
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}
