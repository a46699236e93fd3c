package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/boddle/jwtplay/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const scenarioToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" +
	".eyJzdWIiOiIxMjM0NTY3ODkwIiwibmFtZSI6IkpvaG4gRG9lIn0" +
	".sF6jL5EM_X_ssY1GLcxXPxgK9LU8YPSOrCTZtDDJFgg"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.BodyLimit(4096))
	NewHandler(NewService(zap.NewNop())).Register(r)
	return r
}

func post(t *testing.T, r *gin.Engine, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func TestHandler_Generate(t *testing.T) {
	r := newTestRouter()

	code, env := post(t, r, "/api/jwt/generate",
		`{"header":{"alg":"HS256","typ":"JWT"},"payload":{"sub":"1234567890","name":"John Doe"},"secret":"your-secret-key"}`)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"token":"`+scenarioToken+`"}`, string(env.Data))
}

func TestHandler_GenerateKeepsKeyOrder(t *testing.T) {
	r := newTestRouter()

	_, env := post(t, r, "/api/jwt/generate",
		`{"header":{"typ":"JWT","alg":"HS256"},"payload":{"name":"John Doe","sub":"1234567890"},"secret":"k"}`)
	var gen GenerateResponse
	require.NoError(t, json.Unmarshal(env.Data, &gen))

	_, env = post(t, r, "/api/jwt/decode", `{"token":"`+gen.Token+`"}`)
	assert.Contains(t, string(env.Data), `"header":{"typ":"JWT","alg":"HS256"}`)
	assert.Contains(t, string(env.Data), `"payload":{"name":"John Doe","sub":"1234567890"}`)
}

func TestHandler_GenerateErrors(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"RS256", `{"header":{"alg":"RS256","typ":"JWT"},"payload":{},"secret":"k"}`, http.StatusUnprocessableEntity, "UNSUPPORTED_ALGORITHM"},
		{"missing header", `{"payload":{},"secret":"k"}`, http.StatusUnprocessableEntity, "INVALID_HEADER"},
		{"missing typ", `{"header":{"alg":"HS256"},"payload":{},"secret":"k"}`, http.StatusUnprocessableEntity, "INVALID_HEADER"},
		{"payload array", `{"header":{"alg":"HS256","typ":"JWT"},"payload":[],"secret":"k"}`, http.StatusUnprocessableEntity, "INVALID_PAYLOAD"},
		{"not json", `{"header":`, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"too large", `{"secret":"` + strings.Repeat("a", 5000) + `"}`, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := post(t, r, "/api/jwt/generate", tt.body)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantErr, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestHandler_Verify(t *testing.T) {
	r := newTestRouter()

	code, env := post(t, r, "/api/jwt/verify", `{"token":"`+scenarioToken+`","secret":"your-secret-key"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"valid":true,"header":{"alg":"HS256","typ":"JWT"},"payload":{"sub":"1234567890","name":"John Doe"}}`, string(env.Data))

	code, env = post(t, r, "/api/jwt/verify", `{"token":"`+scenarioToken+`","secret":""}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"valid":false,"error":"SignatureMismatch"}`, string(env.Data))

	code, env = post(t, r, "/api/jwt/verify", `{"token":"a!b.c.d","secret":"k"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MALFORMED_TOKEN", env.Error.Code)
}

func TestHandler_Decode(t *testing.T) {
	r := newTestRouter()

	code, env := post(t, r, "/api/jwt/decode", `{"token":"`+scenarioToken+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"header":{"alg":"HS256","typ":"JWT"},
		"payload":{"sub":"1234567890","name":"John Doe"},
		"signature":"sF6jL5EM_X_ssY1GLcxXPxgK9LU8YPSOrCTZtDDJFgg",
		"verified":false
	}`, string(env.Data))

	code, env = post(t, r, "/api/jwt/decode", `{"token":"only.two"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "MALFORMED_TOKEN", env.Error.Code)
}

func TestHandler_Action(t *testing.T) {
	r := newTestRouter()

	code, env := post(t, r, "/api/jwt",
		`{"action":"generate","header":{"alg":"HS256","typ":"JWT"},"payload":{"sub":"1234567890","name":"John Doe"},"secret":"your-secret-key"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"token":"`+scenarioToken+`"}`, string(env.Data))

	code, env = post(t, r, "/api/jwt", `{"action":"verify","token":"`+scenarioToken+`","secret":"your-secret-key"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"valid":true`)

	code, env = post(t, r, "/api/jwt", `{"action":"decode","token":"`+scenarioToken+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"verified":false`)

	code, env = post(t, r, "/api/jwt", `{"action":"refresh"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ACTION", env.Error.Code)
	assert.Equal(t, "Invalid action", env.Error.Message)
}

func TestHandler_LintHeader(t *testing.T) {
	r := newTestRouter()

	code, env := post(t, r, "/api/jwt/header/lint", `{"header":{"alg":"RS256"}}`)
	require.Equal(t, http.StatusOK, code)

	var lint LintResponse
	require.NoError(t, json.Unmarshal(env.Data, &lint))
	assert.False(t, lint.Valid)
	require.Len(t, lint.Errors, 1)
	assert.Equal(t, "typ", lint.Errors[0].Field)
	assert.Len(t, lint.Warnings, 1)
}

func TestHandler_Health(t *testing.T) {
	r := gin.New()
	h := NewHandler(NewService(zap.NewNop()))
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestHandler_HealthChecks(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := gin.New()
	h := NewHandler(NewService(zap.New(core))).
		WithHealthCheck("redis", func(context.Context) error { return errors.New("dial tcp 10.0.0.7:6379: connection refused") }).
		WithHealthCheck("clock", func(context.Context) error { return nil })
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"redis":"unavailable","clock":"ok"}}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "10.0.0.7")

	entries := logs.FilterMessage("health check failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "redis", entries[0].ContextMap()["check"])
}
