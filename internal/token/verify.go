package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Result is the outcome of Verify. When Valid is false only Reason is set.
type Result struct {
	Valid   bool
	Header  Value
	Payload Value
	Reason  ErrorKind
}

// Verify checks the token's signature against secret using the algorithm
// named in its header.
//
// Structural problems and unsupported algorithms are returned as errors.
// A token whose signature does not match yields an invalid Result with
// Reason KindSignatureMismatch and a nil error.
//
// The signature covers the encoded segments, so it is checked before the
// payload is decoded: any edit to the payload segment is a mismatch. A
// signature segment that is not base64url is malformed, not a mismatch.
func Verify(tokenString string, secret []byte) (*Result, error) {
	segments, err := split(tokenString)
	if err != nil {
		return nil, err
	}

	header, err := decodeObject(segments[0], "header")
	if err != nil {
		return nil, err
	}
	method, err := headerAlgorithm(header)
	if err != nil {
		return nil, err
	}

	signature, err := DecodeSegment(segments[2])
	if err != nil {
		return nil, malformed("signature is not valid base64url", err)
	}

	// constant-time compare happens inside the method
	if err := method.Verify(segments[0]+"."+segments[1], signature, secret); err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return &Result{Reason: KindSignatureMismatch}, nil
		}
		return nil, &Error{Kind: KindUnsupportedAlgorithm, Msg: "cannot verify with " + method.Alg(), Err: err}
	}

	payload, err := decodeObject(segments[1], "payload")
	if err != nil {
		return nil, err
	}

	return &Result{
		Valid:   true,
		Header:  header,
		Payload: payload,
	}, nil
}

// Err returns an ErrSignatureMismatch-kind error for an invalid result and nil otherwise
func (r *Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Kind: r.Reason}
}
