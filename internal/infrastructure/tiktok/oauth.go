package tiktok

import (
	"context"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/utils/httpclients"
)

// Scopes requested at login.
const Scopes = "user.info.basic,video.upload,video.publish"

const defaultDisplayName = "TikTok User"

type tokenResponse struct {
	integrations.TikTokTokens
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type userInfoResponse struct {
	Data struct {
		User struct {
			OpenID      string `json:"open_id"`
			DisplayName string `json:"display_name"`
			AvatarURL   string `json:"avatar_url"`
		} `json:"user"`
	} `json:"data"`
	Err apiErrorBody `json:"error"`
}

// OAuthClient implements the TikTok Login Kit flow.
type OAuthClient struct {
	client       *resty.Client
	apiURL       string
	authURL      string
	clientKey    string
	clientSecret string
}

// NewOAuthClient creates the TikTok login client.
func NewOAuthClient(apiURL, authURL, clientKey, clientSecret string, timeout time.Duration) *OAuthClient {
	client := httpclients.NewClient("tiktok-oauth")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &OAuthClient{
		client:       client,
		apiURL:       strings.TrimRight(apiURL, "/"),
		authURL:      authURL,
		clientKey:    clientKey,
		clientSecret: clientSecret,
	}
}

// AuthURL builds the authorization URL.
func (c *OAuthClient) AuthURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_key", c.clientKey)
	q.Set("response_type", "code")
	q.Set("scope", Scopes)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	return c.authURL + "?" + q.Encode()
}

// ExchangeCode trades an authorization code for tokens.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code, redirectURI string) (integrations.TikTokTokens, error) {
	return c.token(ctx, "exchange TikTok code", map[string]string{
		"client_key":    c.clientKey,
		"client_secret": c.clientSecret,
		"code":          code,
		"grant_type":    "authorization_code",
		"redirect_uri":  redirectURI,
	})
}

// RefreshToken renews an access token.
func (c *OAuthClient) RefreshToken(ctx context.Context, refreshToken string) (integrations.TikTokTokens, error) {
	return c.token(ctx, "refresh TikTok token", map[string]string{
		"client_key":    c.clientKey,
		"client_secret": c.clientSecret,
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	})
}

// DisplayName reads the user's display name, defaulting when TikTok omits it.
func (c *OAuthClient) DisplayName(ctx context.Context, accessToken string) (string, error) {
	var result userInfoResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("fields", "open_id,union_id,avatar_url,display_name").
		SetResult(&result).
		SetError(&errorResponse{}).
		Get(c.apiURL + "/user/info/")
	if err != nil {
		return "", transportError(ctx, "fetch TikTok user info", err)
	}
	if resp.IsError() {
		message := ""
		if e, ok := resp.Error().(*errorResponse); ok {
			message = e.Err.Message
		}
		return "", apiError(ctx, "fetch TikTok user info", message, resp.StatusCode())
	}
	if name := result.Data.User.DisplayName; name != "" {
		return name, nil
	}
	return defaultDisplayName, nil
}

func (c *OAuthClient) token(ctx context.Context, action string, form map[string]string) (integrations.TikTokTokens, error) {
	var result tokenResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetFormData(form).
		SetResult(&result).
		SetError(&tokenResponse{}).
		Post(c.apiURL + "/oauth/token/")
	if err != nil {
		return integrations.TikTokTokens{}, transportError(ctx, action, err)
	}
	if resp.IsError() {
		message := ""
		if e, ok := resp.Error().(*tokenResponse); ok {
			message = firstNonEmpty(e.ErrorDescription, e.Error)
		}
		return integrations.TikTokTokens{}, apiError(ctx, action, message, resp.StatusCode())
	}
	if result.Error != "" {
		return integrations.TikTokTokens{}, apiError(ctx, action, firstNonEmpty(result.ErrorDescription, result.Error), resp.StatusCode())
	}
	return result.TikTokTokens, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ integrations.TikTokOAuth = (*OAuthClient)(nil)
