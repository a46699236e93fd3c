package middleware

import (
	"fmt"

	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"github.com/boddle/jwtplay/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInternal = apperrors.NewAppError(apperrors.ErrCodeInternalError, "Internal server error", 500)

// Recovery turns a panic in a handler into a 500 envelope and logs it with
// the stack. The panic value is logged; the client only sees the generic error.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			logger.Error("panic recovered",
				zap.Error(err),
				zap.String("request_id", GetRequestID(c)),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
				zap.Stack("stack"),
			)

			if c.Writer.Written() {
				// headers are gone; all we can do is stop the chain
				c.Abort()
				return
			}
			response.Abort(c, errInternal)
		}()

		c.Next()
	}
}
