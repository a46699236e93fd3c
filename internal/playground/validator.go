package playground

import (
	"fmt"
	"strings"

	"github.com/boddle/jwtplay/internal/token"
)

// recognizedAlgorithms is what the header editor accepts as syntax. Only the
// HS family can actually be signed; the rest lint clean with a warning.
var recognizedAlgorithms = []string{
	"HS256", "HS384", "HS512",
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LintHeader checks a header the way the editor does before generating
func LintHeader(header token.Value) ([]ValidationError, []string) {
	errors := make([]ValidationError, 0)
	warnings := make([]string, 0)

	if header.Kind() != token.KindObject {
		errors = append(errors, ValidationError{
			Field:   "header",
			Message: "Invalid JSON format in header",
		})
		return errors, warnings
	}

	alg, hasAlg := header.Get("alg")
	if !hasAlg {
		errors = append(errors, ValidationError{
			Field:   "alg",
			Message: `Header must include "alg" field`,
		})
	}

	if _, hasTyp := header.Get("typ"); !hasTyp {
		errors = append(errors, ValidationError{
			Field:   "typ",
			Message: `Header must include "typ" field`,
		})
	}

	if hasAlg {
		name, _ := alg.Str()
		switch {
		case !isRecognized(name):
			errors = append(errors, ValidationError{
				Field:   "alg",
				Message: fmt.Sprintf("Invalid algorithm. Must be one of: %s", strings.Join(recognizedAlgorithms, ", ")),
			})
		case !token.IsSupported(name):
			warnings = append(warnings, fmt.Sprintf("%s needs an asymmetric key; only %s can be signed here",
				name, strings.Join(token.SupportedAlgorithms(), ", ")))
		}
	}

	return errors, warnings
}

func isRecognized(alg string) bool {
	for _, a := range recognizedAlgorithms {
		if a == alg {
			return true
		}
	}
	return false
}
