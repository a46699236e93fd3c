package token

import (
	"fmt"
	"strings"
)

// Parsed is a token split into its parts. Nothing in it has been verified.
type Parsed struct {
	Header       Value
	Payload      Value
	SigningInput string // first two segments joined by "."
	Signature    string // third segment, still encoded
}

// Encode serializes header and payload, signs them with secret under the
// header's "alg" and returns the compact token.
//
// Key order of both objects is kept as given; changing it changes the token.
func Encode(header, payload Value, secret []byte) (string, error) {
	if header.Kind() != KindObject {
		return "", &Error{Kind: KindInvalidHeader, Msg: "header must be a JSON object, got " + header.Kind().String()}
	}
	method, err := headerAlgorithm(header)
	if err != nil {
		return "", err
	}
	if _, ok := header.Get("typ"); !ok {
		return "", &Error{Kind: KindInvalidHeader, Msg: `header has no "typ"`}
	}
	if payload.Kind() != KindObject {
		return "", &Error{Kind: KindInvalidPayload, Msg: "payload must be a JSON object, got " + payload.Kind().String()}
	}

	headerJSON, err := header.MarshalJSON()
	if err != nil {
		return "", &Error{Kind: KindInvalidHeader, Msg: "cannot serialize header", Err: err}
	}
	payloadJSON, err := payload.MarshalJSON()
	if err != nil {
		return "", &Error{Kind: KindInvalidPayload, Msg: "cannot serialize payload", Err: err}
	}

	signingInput := EncodeSegment(headerJSON) + "." + EncodeSegment(payloadJSON)
	signature, err := method.Sign(signingInput, secret)
	if err != nil {
		return "", &Error{Kind: KindUnsupportedAlgorithm, Msg: "cannot sign with " + method.Alg(), Err: err}
	}

	return signingInput + "." + EncodeSegment(signature), nil
}

// EncodeClaims is Encode for a payload held in Go values, such as a decoded
// map[string]any. Map keys are emitted sorted. Claims with no JSON form,
// including self-referencing maps, fail with KindInvalidPayload.
func EncodeClaims(header Value, claims any, secret []byte) (string, error) {
	payload, err := FromAny(claims)
	if err != nil {
		return "", &Error{Kind: KindInvalidPayload, Msg: "claims have no JSON form", Err: err}
	}
	return Encode(header, payload, secret)
}

// Parse splits and decodes a token without checking its signature.
// The result must not be trusted; use Verify for that.
func Parse(tokenString string) (*Parsed, error) {
	segments, err := split(tokenString)
	if err != nil {
		return nil, err
	}

	header, err := decodeObject(segments[0], "header")
	if err != nil {
		return nil, err
	}
	payload, err := decodeObject(segments[1], "payload")
	if err != nil {
		return nil, err
	}

	return &Parsed{
		Header:       header,
		Payload:      payload,
		SigningInput: segments[0] + "." + segments[1],
		Signature:    segments[2],
	}, nil
}

func split(tokenString string) ([]string, error) {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return nil, malformed(fmt.Sprintf("token must have 3 segments, got %d", len(segments)), nil)
	}
	for i, seg := range segments {
		if seg == "" {
			return nil, malformed(fmt.Sprintf("segment %d is empty", i+1), nil)
		}
	}
	return segments, nil
}

func decodeObject(seg, name string) (Value, error) {
	raw, err := DecodeSegment(seg)
	if err != nil {
		return Value{}, malformed(name+" is not valid base64url", err)
	}
	v, err := ParseJSON(raw)
	if err != nil {
		return Value{}, malformed(name+" is not valid JSON", err)
	}
	if v.Kind() != KindObject {
		return Value{}, malformed(name+" must be a JSON object, got "+v.Kind().String(), nil)
	}
	return v, nil
}
