package platformerrors

import (
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
)

func TestAsErrorKeepsType(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey{}, "req-1")
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "document not found", ErrNotFound, "uuid-1")

	wrapped := AsError(ctx, LayerDomain, inner, "company c1")
	assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	assert.Equal(t, "company c1: document not found", wrapped.Message)
	assert.Equal(t, "uuid-1", wrapped.UUID)
	assert.Equal(t, "req-1", wrapped.RequestID)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	plain := AsError(ctx, LayerDomain, errors.New("boom"), "load")
	assert.Equal(t, ErrorTypeInternal, plain.Type)
	assert.Nil(t, AsError(ctx, LayerDomain, nil, "noop"))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := map[ErrorType]int{
		ErrorTypeNotFound:       http.StatusNotFound,
		ErrorTypeValidation:     http.StatusBadRequest,
		ErrorTypeForbidden:      http.StatusForbidden,
		ErrorTypeUnauthorized:   http.StatusUnauthorized,
		ErrorTypeNotImplemented: http.StatusNotImplemented,
		ErrorTypeExternal:       http.StatusBadGateway,
		ErrorTypeTimeout:        http.StatusGatewayTimeout,
		ErrorTypeInternal:       http.StatusInternalServerError,
		ErrorType("other"):      http.StatusInternalServerError,
	}
	for errorType, status := range tests {
		assert.Equal(t, status, ErrorTypeToHTTPStatus(errorType), string(errorType))
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		wantType string
	}{
		{
			name:     "platform error",
			err:      NewError(context.Background(), LayerDomain, ErrorTypeForbidden, "company belongs to another user", nil, "uuid-2"),
			status:   http.StatusForbidden,
			wantType: "forbidden_error",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			status:   http.StatusInternalServerError,
			wantType: "internal_error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(c, tt.err, zerolog.Nop())

			assert.Equal(t, tt.status, rec.Code)
			var body HTTPErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantType, body.Error.Type)
		})
	}
}

func TestIsStaleReference(t *testing.T) {
	err := NewError(context.Background(), LayerInfrastructure, ErrorTypeNotFound, "folder gone", ErrStaleReference, "")
	assert.True(t, IsStaleReference(err))
	assert.False(t, IsStaleReference(ErrRemoteAuth))
}
