package googledrive

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"

	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// NewOAuthConfig returns the OAuth client config for Drive access limited to
// files the app creates.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drive.DriveFileScope},
	}
}

// OAuth implements the Drive connect flow.
type OAuth struct {
	config *oauth2.Config
}

func NewOAuth(config *oauth2.Config) *OAuth {
	return &OAuth{config: config}
}

// AuthURL requests offline access with a forced consent screen so Google
// always returns a refresh token.
func (o *OAuth) AuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades code for tokens and returns the refresh token, empty when
// Google did not issue one.
func (o *OAuth) Exchange(ctx context.Context, code string) (string, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"Failed to exchange Google authorization code", err, "c5d7e9f1-3a5b-4c7d-8e2f-4b6c8d0e2a81")
	}
	return token.RefreshToken, nil
}

var _ integrations.DriveOAuth = (*OAuth)(nil)
