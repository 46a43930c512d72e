package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(v *Validator, req *http.Request) *httptest.ResponseRecorder {
	engine := gin.New()
	engine.GET("/me", v.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestDisabledMode(t *testing.T) {
	v, err := NewValidator(context.Background(), &config.Config{AuthMode: config.AuthModeDisabled}, nil, zerolog.Nop())
	require.NoError(t, err)

	rec := serve(v, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev-user", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(DevUserHeader, "alice")
	rec = serve(v, req)
	assert.Equal(t, "alice", rec.Body.String())
}

type fakeVerifier struct {
	cookies map[string]string
	tokens  map[string]string
}

func (f *fakeVerifier) VerifySessionCookie(_ context.Context, cookie string) (string, error) {
	if uid, ok := f.cookies[cookie]; ok {
		return uid, nil
	}
	return "", errors.New("session cookie revoked")
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, token string) (string, error) {
	if uid, ok := f.tokens[token]; ok {
		return uid, nil
	}
	return "", errors.New("id token expired")
}

func TestFirebaseMode(t *testing.T) {
	cfg := &config.Config{AuthMode: config.AuthModeFirebase, SessionCookieName: "session"}
	v := NewSessionValidator(cfg, &fakeVerifier{
		cookies: map[string]string{"good-cookie": "uid-cookie"},
		tokens:  map[string]string{"good-token": "uid-token"},
	}, zerolog.Nop())

	tests := []struct {
		name   string
		cookie string
		bearer string
		status int
		user   string
	}{
		{name: "session cookie", cookie: "good-cookie", status: http.StatusOK, user: "uid-cookie"},
		{name: "id token", bearer: "good-token", status: http.StatusOK, user: "uid-token"},
		{name: "revoked cookie", cookie: "stale", status: http.StatusUnauthorized},
		{name: "nothing", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rec := serve(v, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.user, rec.Body.String())
			}
		})
	}
}

func TestJWKSMode(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{AuthMode: config.AuthModeJWKS, AuthIssuer: "https://issuer.test", AuthAudience: "socialflow"}
	v := &Validator{
		cfg: cfg,
		log: zerolog.Nop(),
		jwks: keyfunc.NewGiven(map[string]keyfunc.GivenKey{
			"kid-1": keyfunc.NewGivenRSA(&key.PublicKey, keyfunc.GivenKeyOptions{Algorithm: "RS256"}),
		}),
	}

	sign := func(claims jwt.RegisteredClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
		token.Header["kid"] = "kid-1"
		s, err := token.SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "https://issuer.test",
		Audience:  jwt.ClaimStrings{"socialflow"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(valid))
	rec := serve(v, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", rec.Body.String())

	wrongIssuer := valid
	wrongIssuer.Issuer = "https://evil.test"
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+sign(wrongIssuer))
	assert.Equal(t, http.StatusUnauthorized, serve(v, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(v, req).Code)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}
