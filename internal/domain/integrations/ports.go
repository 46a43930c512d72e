package integrations

import (
	"context"
	"time"
)

// Providers that can be connected to a company.
const (
	ProviderGoogle = "google"
	ProviderMeta   = "meta"
	ProviderTikTok = "tiktok"
)

// FacebookPage is a page the Meta user manages.
type FacebookPage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TikTokTokens is the token set returned by the TikTok OAuth endpoint.
type TikTokTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	OpenID       string `json:"open_id"`
	Scope        string `json:"scope"`
}

// DriveOAuth authorizes offline Google Drive access.
type DriveOAuth interface {
	AuthURL(state string) string
	// Exchange returns the refresh token granted for code, empty when none was issued.
	Exchange(ctx context.Context, code string) (string, error)
}

// MetaOAuth is the Meta Graph login and account discovery API.
type MetaOAuth interface {
	AuthURL(redirectURI, state string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (string, error)
	LongLivedToken(ctx context.Context, shortLivedToken string) (string, error)
	Pages(ctx context.Context, accessToken string) ([]FacebookPage, error)
	// InstagramAccountID returns the business account linked to a page, empty when none.
	InstagramAccountID(ctx context.Context, pageID, accessToken string) (string, error)
	InstagramUsername(ctx context.Context, instagramID, accessToken string) (string, error)
}

// TikTokOAuth is the TikTok login API.
type TikTokOAuth interface {
	AuthURL(redirectURI, state string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (TikTokTokens, error)
	RefreshToken(ctx context.Context, refreshToken string) (TikTokTokens, error)
	DisplayName(ctx context.Context, accessToken string) (string, error)
}

// StateStore keeps OAuth state nonces until the callback consumes them.
type StateStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns and deletes the value. Missing or expired keys report false.
	Take(ctx context.Context, key string) (string, bool, error)
}
