package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

const (
	userIDKey = "user_id"
	// DevUserHeader selects the caller when auth is disabled.
	DevUserHeader = "X-User-Id"
	devUserID     = "dev-user"
)

// SessionVerifier resolves a Firebase session cookie or ID token to a user id.
type SessionVerifier interface {
	VerifySessionCookie(ctx context.Context, cookie string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// Validator authenticates dashboard requests in the configured AUTH_MODE.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	jwks    *keyfunc.JWKS
	session SessionVerifier
}

// NewValidator initializes JWKS fetching or Firebase verification for the configured mode.
// app may be nil unless AUTH_MODE=firebase.
func NewValidator(ctx context.Context, cfg *config.Config, app *firebase.App, log zerolog.Logger) (*Validator, error) {
	v := &Validator{cfg: cfg, log: log.With().Str("component", "auth").Logger()}

	switch cfg.AuthMode {
	case config.AuthModeJWKS:
		options := keyfunc.Options{
			Ctx:               ctx,
			RefreshInterval:   time.Hour,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				log.Error().Err(err).Msg("jwks refresh error")
			},
		}
		jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
		if err != nil {
			return nil, err
		}
		v.jwks = jwks
	case config.AuthModeFirebase:
		if app == nil {
			return nil, errors.New("firebase app is required when AUTH_MODE=firebase")
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, err
		}
		v.session = &firebaseVerifier{client: client}
	}
	return v, nil
}

// NewSessionValidator builds a firebase-mode validator around verifier.
func NewSessionValidator(cfg *config.Config, verifier SessionVerifier, log zerolog.Logger) *Validator {
	return &Validator{cfg: cfg, log: log, session: verifier}
}

// Middleware rejects unauthenticated requests and stores the caller's user id.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := v.authenticate(c)
		if err != nil || userID == "" {
			v.log.Debug().Err(err).Str("path", c.FullPath()).Msg("request rejected")
			platformerrors.WriteUnauthorized(c, "Unauthorized")
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (v *Validator) authenticate(c *gin.Context) (string, error) {
	ctx := c.Request.Context()
	switch v.cfg.AuthMode {
	case config.AuthModeJWKS:
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			return "", errors.New("missing bearer token")
		}
		opts := []jwt.ParserOption{
			jwt.WithIssuer(v.cfg.AuthIssuer),
			jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		}
		if v.cfg.AuthAudience != "" {
			opts = append(opts, jwt.WithAudience(v.cfg.AuthAudience))
		}
		token, err := jwt.Parse(tokenString, v.jwks.Keyfunc, opts...)
		if err != nil || !token.Valid {
			return "", errors.New("invalid token")
		}
		return token.Claims.GetSubject()
	case config.AuthModeFirebase:
		if cookie, err := c.Cookie(v.cfg.SessionCookieName); err == nil && cookie != "" {
			return v.session.VerifySessionCookie(ctx, cookie)
		}
		if tokenString := bearerToken(c.GetHeader("Authorization")); tokenString != "" {
			return v.session.VerifyIDToken(ctx, tokenString)
		}
		return "", errors.New("missing session")
	default:
		if id := strings.TrimSpace(c.GetHeader(DevUserHeader)); id != "" {
			return id, nil
		}
		return devUserID, nil
	}
}

// UserID returns the authenticated caller set by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
