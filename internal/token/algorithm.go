package token

import (
	_ "crypto/sha256" // registers SHA-256
	_ "crypto/sha512" // registers SHA-384 and SHA-512
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported header "alg" values
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"
)

// symmetric maps the supported algorithm names to their HMAC definitions.
// Names are matched exactly; "hs256" or "none" do not resolve.
var symmetric = map[string]*jwt.SigningMethodHMAC{
	HS256: jwt.SigningMethodHS256,
	HS384: jwt.SigningMethodHS384,
	HS512: jwt.SigningMethodHS512,
}

// SupportedAlgorithms lists the algorithms Encode and Verify accept
func SupportedAlgorithms() []string {
	return []string{HS256, HS384, HS512}
}

// IsSupported reports whether alg can be signed and verified
func IsSupported(alg string) bool {
	_, ok := symmetric[alg]
	return ok
}

func lookupMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	m, ok := symmetric[alg]
	if !ok {
		return nil, &Error{Kind: KindUnsupportedAlgorithm, Msg: fmt.Sprintf("algorithm %q is not supported", alg)}
	}
	if !m.Hash.Available() {
		return nil, &Error{Kind: KindUnsupportedAlgorithm, Msg: fmt.Sprintf("hash for %s is not available", alg)}
	}
	return m, nil
}

// headerAlgorithm reads "alg" from a header object
func headerAlgorithm(header Value) (*jwt.SigningMethodHMAC, error) {
	raw, ok := header.Get("alg")
	if !ok {
		return nil, &Error{Kind: KindUnsupportedAlgorithm, Msg: `header has no "alg"`}
	}
	alg, ok := raw.Str()
	if !ok {
		return nil, &Error{Kind: KindUnsupportedAlgorithm, Msg: fmt.Sprintf(`"alg" must be a string, got %s`, raw.Kind())}
	}
	return lookupMethod(alg)
}
