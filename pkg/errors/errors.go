package errors

import "fmt"

// AppError represents a custom application error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Common error codes
const (
	ErrCodeMalformedToken       = "MALFORMED_TOKEN"
	ErrCodeUnsupportedAlgorithm = "UNSUPPORTED_ALGORITHM"
	ErrCodeInvalidHeader        = "INVALID_HEADER"
	ErrCodeInvalidPayload       = "INVALID_PAYLOAD"
	ErrCodeInvalidAction        = "INVALID_ACTION"
	ErrCodeRateLimitExceeded    = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge      = "REQUEST_TOO_LARGE"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeNotFound             = "NOT_FOUND"
)

// NewAppError creates a new application error
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// Common errors
var (
	ErrMalformedToken       = NewAppError(ErrCodeMalformedToken, "Token is not a well-formed compact JWT", 400)
	ErrUnsupportedAlgorithm = NewAppError(ErrCodeUnsupportedAlgorithm, "Algorithm is not supported; use HS256, HS384 or HS512", 422)
	ErrInvalidHeader        = NewAppError(ErrCodeInvalidHeader, "Header must be a JSON object with \"alg\" and \"typ\"", 422)
	ErrInvalidPayload       = NewAppError(ErrCodeInvalidPayload, "Payload must be a JSON object", 422)
	ErrInvalidAction        = NewAppError(ErrCodeInvalidAction, "Invalid action", 400)
	ErrRateLimitExceeded    = NewAppError(ErrCodeRateLimitExceeded, "Too many requests", 429)
	ErrRequestTooLarge      = NewAppError(ErrCodeRequestTooLarge, "Request body too large", 413)
	ErrNotFound             = NewAppError(ErrCodeNotFound, "Not found", 404)
)
