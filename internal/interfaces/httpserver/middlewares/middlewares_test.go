package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	engine := gin.New()
	engine.Use(RequestID(), LoggingMiddleware(zerolog.New(&logs)))
	engine.GET("/v1/companies/:companyId", func(c *gin.Context) {
		err := platformerrors.NewError(c.Request.Context(), platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "missing", errors.New("x"), "")
		c.JSON(http.StatusOK, gin.H{"request_id": err.RequestID, "gin": RequestIDFromContext(c)})
	})

	tests := []struct {
		name   string
		header string
	}{
		{"generated", ""},
		{"forwarded", "req-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			req := httptest.NewRequest(http.MethodGet, "/v1/companies/cmp_1?code=secret", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			requestID := rec.Header().Get("X-Request-Id")
			require.NotEmpty(t, requestID)
			if tt.header != "" {
				assert.Equal(t, tt.header, requestID)
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, requestID, body["request_id"])
			assert.Equal(t, requestID, body["gin"])

			assert.Contains(t, logs.String(), requestID)
			assert.NotContains(t, logs.String(), "secret")
		})
	}
}

func TestRequestIDContextKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), platformerrors.RequestIDKey{}, "abc")
	err := platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "x", nil, "")
	assert.Equal(t, "abc", err.RequestID)
}
