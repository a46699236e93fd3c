package token

import (
	"encoding/base64"
	"fmt"
)

// segmentEncoding is unpadded base64url. Strict rejects non-zero trailing bits
// so that every segment has exactly one accepted spelling.
var segmentEncoding = base64.RawURLEncoding.Strict()

// EncodeSegment base64url-encodes b without padding
func EncodeSegment(b []byte) string {
	return segmentEncoding.EncodeToString(b)
}

// DecodeSegment decodes an unpadded base64url segment.
// The stdlib decoder skips CR and LF, so the alphabet is checked first.
func DecodeSegment(seg string) ([]byte, error) {
	for i := 0; i < len(seg); i++ {
		if !isSegmentChar(seg[i]) {
			return nil, fmt.Errorf("illegal base64url character %q at offset %d", seg[i], i)
		}
	}
	return segmentEncoding.DecodeString(seg)
}

func isSegmentChar(c byte) bool {
	return c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '_'
}
