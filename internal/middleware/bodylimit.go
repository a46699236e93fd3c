package middleware

import (
	"net/http"

	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"github.com/boddle/jwtplay/pkg/response"
	"github.com/gin-gonic/gin"
)

// BodyLimit caps request bodies at maxBytes. Bodies with a declared length
// over the cap are refused up front; others fail while being read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Abort(c, apperrors.ErrRequestTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

		c.Next()
	}
}
