package playground

import (
	"github.com/boddle/jwtplay/internal/token"
)

// GenerateRequest asks for a token signed over header and payload
type GenerateRequest struct {
	Header  token.Value `json:"header"`
	Payload token.Value `json:"payload"`
	Secret  string      `json:"secret"`
}

// GenerateResponse carries a freshly signed token
type GenerateResponse struct {
	Token string `json:"token"`
}

// VerifyRequest asks whether token was signed with secret
type VerifyRequest struct {
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

// VerifyResponse is either {valid:true, header, payload} or {valid:false, error}
type VerifyResponse struct {
	Valid   bool         `json:"valid"`
	Header  *token.Value `json:"header,omitempty"`
	Payload *token.Value `json:"payload,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// DecodeRequest asks for the contents of a token
type DecodeRequest struct {
	Token string `json:"token"`
}

// DecodeResponse shows a token's contents. Verified is always false:
// nothing here has been checked against a secret.
type DecodeResponse struct {
	Header    token.Value `json:"header"`
	Payload   token.Value `json:"payload"`
	Signature string      `json:"signature"`
	Verified  bool        `json:"verified"`
}

// LintRequest carries a header being edited
type LintRequest struct {
	Header token.Value `json:"header"`
}

// LintResponse lists header problems; Valid is true when there are none
type LintResponse struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ActionRequest is the combined body accepted by POST /api/jwt
type ActionRequest struct {
	Action  string      `json:"action"`
	Header  token.Value `json:"header"`
	Payload token.Value `json:"payload"`
	Secret  string      `json:"secret"`
	Token   string      `json:"token"`
}

// Actions understood by POST /api/jwt
const (
	ActionGenerate = "generate"
	ActionVerify   = "verify"
	ActionDecode   = "decode"
)
