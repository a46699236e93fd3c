package cli

import (
	"fmt"
	"strings"

	"github.com/boddle/jwtplay/internal/token"
)

// EncodeCmd signs a header and payload
type EncodeCmd struct {
	Header      string            `help:"header JSON"`
	HeaderFile  string            `help:"file with header JSON, or - for stdin"`
	Payload     string            `help:"payload JSON"`
	PayloadFile string            `help:"file with payload JSON, or - for stdin"`
	Claim       map[string]string `help:"payload claim as key=value, repeatable; a value that parses as JSON keeps its type"`
	Secret      string            `help:"HMAC secret, may be empty"`
}

// Run the command
func (a *EncodeCmd) Run(ctx *Cli) error {
	if a.HeaderFile == "-" && a.PayloadFile == "-" {
		return fmt.Errorf("only one of --header-file and --payload-file can read stdin")
	}
	if len(a.Claim) > 0 && (a.Payload != "" || a.PayloadFile != "") {
		return fmt.Errorf("--claim cannot be combined with --payload or --payload-file")
	}

	header, err := ctx.readDocument("header", a.Header, a.HeaderFile)
	if err != nil {
		return err
	}

	var tok string
	if len(a.Claim) > 0 {
		tok, err = token.EncodeClaims(header, claimValues(a.Claim), []byte(a.Secret))
	} else {
		var payload token.Value
		payload, err = ctx.readDocument("payload", a.Payload, a.PayloadFile)
		if err != nil {
			return err
		}
		tok, err = token.Encode(header, payload, []byte(a.Secret))
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.Writer(), tok)
	return err
}

// claimValues reads each flag value as JSON when it is valid JSON, and as a
// plain string otherwise: admin=true is a boolean, name=John is a string.
func claimValues(flags map[string]string) map[string]any {
	claims := make(map[string]any, len(flags))
	for k, raw := range flags {
		if v, err := token.ParseJSON([]byte(raw)); err == nil {
			claims[k] = v
			continue
		}
		claims[k] = raw
	}
	return claims
}

// DecodeCmd prints the parts of a token without checking the signature
type DecodeCmd struct {
	Token string `kong:"arg" required:"" help:"compact token, or - for stdin"`
}

// Run the command
func (a *DecodeCmd) Run(ctx *Cli) error {
	tok, err := readToken(ctx, a.Token)
	if err != nil {
		return err
	}

	parsed, err := token.Parse(tok)
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.ErrWriter(), "signature not verified; use verify with the secret to check it")

	return ctx.WriteValue(token.Object(
		token.M("header", parsed.Header),
		token.M("payload", parsed.Payload),
		token.M("signature", token.String(parsed.Signature)),
	))
}

// VerifyCmd checks a token signature
type VerifyCmd struct {
	Token  string `kong:"arg" required:"" help:"compact token, or - for stdin"`
	Secret string `help:"HMAC secret, may be empty"`
}

// Run the command. A signature mismatch is printed and also returned as an error.
func (a *VerifyCmd) Run(ctx *Cli) error {
	tok, err := readToken(ctx, a.Token)
	if err != nil {
		return err
	}

	res, err := token.Verify(tok, []byte(a.Secret))
	if err != nil {
		return err
	}

	if !res.Valid {
		if err := ctx.WriteValue(token.Object(
			token.M("valid", token.Bool(false)),
			token.M("error", token.String(string(res.Reason))),
		)); err != nil {
			return err
		}
		return res.Err()
	}

	return ctx.WriteValue(token.Object(
		token.M("valid", token.Bool(true)),
		token.M("header", res.Header),
		token.M("payload", res.Payload),
	))
}

// AlgorithmsCmd lists the algorithms the codec signs with
type AlgorithmsCmd struct{}

// Run the command
func (a *AlgorithmsCmd) Run(ctx *Cli) error {
	return ctx.WriteJSON(token.SupportedAlgorithms())
}

func readToken(ctx *Cli, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := ctx.ReadFile("-")
	if err != nil {
		return "", fmt.Errorf("unable to read token: %w", err)
	}
	// drop the newline a shell pipe adds
	return strings.TrimRight(string(b), "\r\n "), nil
}
