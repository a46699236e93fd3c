package playground

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"github.com/boddle/jwtplay/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// Handler handles playground HTTP requests
type Handler struct {
	service *Service
	checks  map[string]HealthCheck
}

// NewHandler creates a new playground handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, checks: make(map[string]HealthCheck)}
}

// WithHealthCheck adds a named dependency to the /health report
func (h *Handler) WithHealthCheck(name string, check HealthCheck) *Handler {
	h.checks[name] = check
	return h
}

// Register mounts the playground routes on r
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api/jwt")
	{
		api.POST("", h.Action)
		api.POST("/generate", h.Generate)
		api.POST("/verify", h.Verify)
		api.POST("/decode", h.Decode)
		api.POST("/header/lint", h.LintHeader)
	}
}

// Action dispatches on the "action" field
// POST /api/jwt
func (h *Handler) Action(c *gin.Context) {
	var req ActionRequest
	if !bind(c, &req) {
		return
	}

	switch req.Action {
	case ActionGenerate:
		h.generate(c, GenerateRequest{Header: req.Header, Payload: req.Payload, Secret: req.Secret})
	case ActionVerify:
		h.verify(c, VerifyRequest{Token: req.Token, Secret: req.Secret})
	case ActionDecode:
		h.decode(c, DecodeRequest{Token: req.Token})
	default:
		response.Error(c, apperrors.ErrInvalidAction)
	}
}

// Generate signs a header and payload
// POST /api/jwt/generate
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if !bind(c, &req) {
		return
	}
	h.generate(c, req)
}

// Verify checks a token's signature
// POST /api/jwt/verify
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if !bind(c, &req) {
		return
	}
	h.verify(c, req)
}

// Decode shows a token's contents without verifying it
// POST /api/jwt/decode
func (h *Handler) Decode(c *gin.Context) {
	var req DecodeRequest
	if !bind(c, &req) {
		return
	}
	h.decode(c, req)
}

// LintHeader reports problems with a header being edited
// POST /api/jwt/header/lint
func (h *Handler) LintHeader(c *gin.Context) {
	var req LintRequest
	if !bind(c, &req) {
		return
	}
	response.Success(c, http.StatusOK, h.service.Lint(c.Request.Context(), req))
}

// Health returns health status. Failing dependencies mark the service as
// degraded but keep the status 200: the codec works without them.
// GET /health
func (h *Handler) Health(c *gin.Context) {
	if len(h.checks) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	results := make(gin.H, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			// the cause can name internal hosts; it goes to the log only
			h.service.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			status = "degraded"
			results[name] = "unavailable"
			continue
		}
		results[name] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": results,
	})
}

func (h *Handler) generate(c *gin.Context, req GenerateRequest) {
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) verify(c *gin.Context, req VerifyRequest) {
	result, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) decode(c *gin.Context, req DecodeRequest) {
	result, err := h.service.Decode(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// bind decodes the JSON body into dst, writing the error response itself on failure
func bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperrors.ErrRequestTooLarge)
			return false
		}
		response.ValidationError(c, "Request body must be a JSON object")
		return false
	}
	return true
}
