package instagram

import (
	"context"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/utils/httpclients"
)

// Permissions requested from the Meta login dialog.
var Scopes = []string{
	"instagram_basic",
	"instagram_content_publish",
	"pages_show_list",
	"pages_read_engagement",
	"public_profile",
	"business_management",
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type pagesResponse struct {
	Data []integrations.FacebookPage `json:"data"`
}

type pageResponse struct {
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type profileResponse struct {
	Username          string `json:"username"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// OAuthClient drives the Facebook login used to connect an Instagram business account.
type OAuthClient struct {
	client       *resty.Client
	graphURL     string
	dialogURL    string
	clientID     string
	clientSecret string
}

// NewOAuthClient creates the Meta login client.
func NewOAuthClient(graphURL, dialogURL, clientID, clientSecret string, timeout time.Duration) *OAuthClient {
	client := httpclients.NewClient("meta-oauth")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &OAuthClient{
		client:       client,
		graphURL:     strings.TrimRight(graphURL, "/"),
		dialogURL:    dialogURL,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// AuthURL builds the login dialog URL.
func (c *OAuthClient) AuthURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	q.Set("scope", strings.Join(Scopes, ","))
	q.Set("response_type", "code")
	q.Set("auth_type", "reauthenticate")
	return c.dialogURL + "?" + q.Encode()
}

// ExchangeCode trades the authorization code for a short-lived user token.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	var result tokenResponse
	err := c.get(ctx, "/oauth/access_token", map[string]string{
		"client_id":     c.clientID,
		"redirect_uri":  redirectURI,
		"client_secret": c.clientSecret,
		"code":          code,
	}, &result, "exchange code")
	return result.AccessToken, err
}

// LongLivedToken extends a short-lived user token.
func (c *OAuthClient) LongLivedToken(ctx context.Context, shortLivedToken string) (string, error) {
	var result tokenResponse
	err := c.get(ctx, "/oauth/access_token", map[string]string{
		"grant_type":        "fb_exchange_token",
		"client_id":         c.clientID,
		"client_secret":     c.clientSecret,
		"fb_exchange_token": shortLivedToken,
	}, &result, "exchange long-lived token")
	return result.AccessToken, err
}

// Pages lists the pages the user manages.
func (c *OAuthClient) Pages(ctx context.Context, accessToken string) ([]integrations.FacebookPage, error) {
	var result pagesResponse
	if err := c.get(ctx, "/me/accounts", map[string]string{"access_token": accessToken}, &result, "list pages"); err != nil {
		return nil, err
	}
	return result.Data, nil
}

// InstagramAccountID returns the business account linked to pageID, empty when none.
func (c *OAuthClient) InstagramAccountID(ctx context.Context, pageID, accessToken string) (string, error) {
	var result pageResponse
	err := c.get(ctx, "/"+pageID, map[string]string{
		"fields":       "instagram_business_account",
		"access_token": accessToken,
	}, &result, "read page")
	if err != nil || result.InstagramBusinessAccount == nil {
		return "", err
	}
	return result.InstagramBusinessAccount.ID, nil
}

// InstagramUsername reads the account handle.
func (c *OAuthClient) InstagramUsername(ctx context.Context, instagramID, accessToken string) (string, error) {
	var result profileResponse
	err := c.get(ctx, "/"+instagramID, map[string]string{
		"fields":       "username,profile_picture_url",
		"access_token": accessToken,
	}, &result, "read instagram profile")
	return result.Username, err
}

func (c *OAuthClient) get(ctx context.Context, path string, params map[string]string, result any, action string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(&graphErrorResponse{}).
		Get(c.graphURL + path)
	if err != nil {
		return transportError(ctx, action, err)
	}
	if resp.IsError() {
		return apiError(ctx, resp, action)
	}
	return nil
}

var _ integrations.MetaOAuth = (*OAuthClient)(nil)
