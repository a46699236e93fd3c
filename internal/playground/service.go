package playground

import (
	"context"
	"time"

	"github.com/boddle/jwtplay/internal/middleware"
	"github.com/boddle/jwtplay/internal/token"
	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"go.uber.org/zap"
)

// Operation names used in logs and metrics
const (
	opGenerate = "generate"
	opVerify   = "verify"
	opDecode   = "decode"
	opLint     = "lint"
)

// Service exposes the token codec to request handlers. It holds no state
// between calls; secrets are used for the single call and never logged.
type Service struct {
	logger *zap.Logger
}

// NewService creates a new playground service
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Generate signs the request's header and payload
func (s *Service) Generate(_ context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	tok, err := token.Encode(req.Header, req.Payload, []byte(req.Secret))
	if err != nil {
		return nil, s.fail(opGenerate, start, err)
	}

	s.done(opGenerate, "ok", start)
	return &GenerateResponse{Token: tok}, nil
}

// Verify checks a token against a secret. A signature mismatch is a
// normal result, not an error.
func (s *Service) Verify(_ context.Context, req VerifyRequest) (*VerifyResponse, error) {
	start := time.Now()

	res, err := token.Verify(req.Token, []byte(req.Secret))
	if err != nil {
		return nil, s.fail(opVerify, start, err)
	}

	if !res.Valid {
		s.done(opVerify, string(res.Reason), start)
		return &VerifyResponse{Valid: false, Error: string(res.Reason)}, nil
	}

	s.done(opVerify, "valid", start)
	return &VerifyResponse{
		Valid:   true,
		Header:  &res.Header,
		Payload: &res.Payload,
	}, nil
}

// Decode returns a token's contents without verifying it
func (s *Service) Decode(_ context.Context, req DecodeRequest) (*DecodeResponse, error) {
	start := time.Now()

	parsed, err := token.Parse(req.Token)
	if err != nil {
		return nil, s.fail(opDecode, start, err)
	}

	s.done(opDecode, "ok", start)
	return &DecodeResponse{
		Header:    parsed.Header,
		Payload:   parsed.Payload,
		Signature: parsed.Signature,
		Verified:  false,
	}, nil
}

// Lint validates a header being edited
func (s *Service) Lint(_ context.Context, req LintRequest) *LintResponse {
	start := time.Now()

	errs, warnings := LintHeader(req.Header)
	outcome := "ok"
	if len(errs) > 0 {
		outcome = "invalid"
	}
	s.done(opLint, outcome, start)

	return &LintResponse{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

func (s *Service) done(op, outcome string, start time.Time) {
	middleware.RecordTokenOperation(op, outcome, time.Since(start))
}

// fail records a failed operation and converts it into the API error for its kind
func (s *Service) fail(op string, start time.Time, err error) error {
	kind := token.KindOf(err)
	outcome := string(kind)
	if outcome == "" {
		outcome = "error"
	}
	s.done(op, outcome, start)

	s.logger.Debug("token operation failed",
		zap.String("operation", op),
		zap.String("kind", outcome),
		zap.Error(err),
	)

	return ToAppError(err)
}

// ToAppError maps a codec error onto the API error for its kind.
// Unknown errors are returned unchanged and render as internal errors.
func ToAppError(err error) error {
	switch token.KindOf(err) {
	case token.KindMalformedToken:
		return apperrors.ErrMalformedToken
	case token.KindUnsupportedAlgorithm:
		return apperrors.ErrUnsupportedAlgorithm
	case token.KindInvalidHeader:
		return apperrors.ErrInvalidHeader
	case token.KindInvalidPayload:
		return apperrors.ErrInvalidPayload
	default:
		return err
	}
}
